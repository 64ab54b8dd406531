package clientcache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateCachesPerKey(t *testing.T) {
	cache := NewCache[*int]()

	var builds atomic.Int64
	factory := func() (*int, error) {
		n := int(builds.Add(1))
		return &n, nil
	}

	first, err := cache.GetOrCreate("a", factory)
	require.NoError(t, err)
	second, err := cache.GetOrCreate("a", factory)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int64(1), builds.Load())

	_, err = cache.GetOrCreate("b", factory)
	require.NoError(t, err)
	assert.Equal(t, int64(2), builds.Load())
}

func TestGetOrCreateSingleflight(t *testing.T) {
	cache := NewCache[string]()

	var builds atomic.Int64
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := cache.GetOrCreate("shared", func() (string, error) {
				builds.Add(1)
				return "client", nil
			})
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), builds.Load())
}

func TestGetOrCreateDoesNotCacheErrors(t *testing.T) {
	cache := NewCache[string]()

	_, err := cache.GetOrCreate("k", func() (string, error) {
		return "", errors.New("boom")
	})
	require.Error(t, err)

	got, err := cache.GetOrCreate("k", func() (string, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
}
