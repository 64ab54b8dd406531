// Package clientcache keeps provider SDK clients alive across requests.
// Building a client per call would discard connection pools and redo
// TLS handshakes; keys are config fingerprints, never raw credentials.
package clientcache

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache is a typed client cache. Concurrent callers for the same key
// share one factory invocation.
type Cache[T any] struct {
	cache   sync.Map
	sfGroup singleflight.Group
}

func NewCache[T any]() *Cache[T] {
	return &Cache[T]{}
}

// GetOrCreate returns the cached client for key, building it with
// factory on first use. Factory errors are returned and not cached, so
// a later call can retry.
func (c *Cache[T]) GetOrCreate(key string, factory func() (T, error)) (T, error) {
	if cached, ok := c.cache.Load(key); ok {
		return cached.(T), nil
	}

	v, err, _ := c.sfGroup.Do(key, func() (any, error) {
		// Re-check: another flight may have stored the client between
		// the Load above and entering the group.
		if cached, ok := c.cache.Load(key); ok {
			return cached.(T), nil
		}

		client, err := factory()
		if err != nil {
			var zero T
			return zero, err
		}

		c.cache.Store(key, client)
		return client, nil
	})

	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

// Delete evicts one client, forcing a rebuild on next use.
func (c *Cache[T]) Delete(key string) {
	c.cache.Delete(key)
}

// Clear evicts every client.
func (c *Cache[T]) Clear() {
	c.cache.Range(func(key, value any) bool {
		c.cache.Delete(key)
		return true
	})
}
