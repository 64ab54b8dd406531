package cache

import (
	"context"
	"testing"

	"github.com/Egham-7/llm-router/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledCacheIsNil(t *testing.T) {
	rc, err := NewResultCache(models.CacheConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, rc)
}

func TestNilCacheIsPassThrough(t *testing.T) {
	var rc *ResultCache

	hit, found := rc.Get(context.Background(), "cust-1", models.LevelStandard, "hello", "req-1")
	assert.Nil(t, hit)
	assert.False(t, found)

	// Set on a nil cache must not panic.
	rc.Set(context.Background(), "cust-1", models.LevelStandard, "hello", models.PersonalizationResult{}, "req-1")
}

func TestRedisBackendRequiresURL(t *testing.T) {
	_, err := NewResultCache(models.CacheConfig{
		Enabled:      true,
		Backend:      models.CacheBackendRedis,
		OpenAIAPIKey: "sk-test",
	})
	require.Error(t, err)
}

func TestScopedTextSeparatesCustomersAndLevels(t *testing.T) {
	a := scopedText("cust-1", models.LevelStandard, "hello")
	b := scopedText("cust-2", models.LevelStandard, "hello")
	c := scopedText("cust-1", models.LevelPremium, "hello")
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}
