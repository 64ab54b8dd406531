// Package cache holds the optional semantic cache for personalization
// results. Near-identical rendered templates for the same customer and
// level reuse an earlier enhancement instead of paying for a new call.
package cache

import (
	"context"
	"fmt"

	"github.com/botirk38/semanticcache"
	"github.com/botirk38/semanticcache/options"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/Egham-7/llm-router/internal/models"
)

const defaultSemanticThreshold = 0.99

// ResultCache caches enhanced messages keyed semantically by the
// rendered template text, scoped per customer and level. A nil
// ResultCache is valid and misses everything.
type ResultCache struct {
	semanticCache     *semanticcache.SemanticCache[string, models.PersonalizationResult]
	semanticThreshold float32
}

// NewResultCache builds the cache per config. Returns (nil, nil) when
// caching is disabled; callers treat a nil cache as a pass-through.
func NewResultCache(config models.CacheConfig) (*ResultCache, error) {
	if !config.Enabled || config.OpenAIAPIKey == "" {
		fiberlog.Info("ResultCache: semantic cache disabled")
		return nil, nil
	}

	threshold := config.SemanticThreshold
	if threshold <= 0 || threshold > 1 {
		fiberlog.Warnf("ResultCache: invalid threshold %.2f, using default %.2f", config.SemanticThreshold, defaultSemanticThreshold)
		threshold = defaultSemanticThreshold
	}

	embedModel := config.EmbeddingModel
	if embedModel == "" {
		embedModel = "text-embedding-3-small"
	}

	backend := config.Backend
	if backend == "" {
		backend = models.CacheBackendMemory
	}

	var semanticCache *semanticcache.SemanticCache[string, models.PersonalizationResult]
	var err error

	switch backend {
	case models.CacheBackendMemory:
		capacity := config.Capacity
		if capacity <= 0 {
			capacity = 1000
		}
		fiberlog.Debugf("ResultCache: using in-memory LRU backend with capacity=%d", capacity)
		semanticCache, err = semanticcache.New(
			options.WithOpenAIProvider[string, models.PersonalizationResult](config.OpenAIAPIKey, embedModel),
			options.WithLRUBackend[string, models.PersonalizationResult](capacity),
		)
	case models.CacheBackendRedis:
		if config.RedisURL == "" {
			return nil, fmt.Errorf("redis URL not set for redis cache backend")
		}
		fiberlog.Debugf("ResultCache: using Redis backend")
		semanticCache, err = semanticcache.New(
			options.WithOpenAIProvider[string, models.PersonalizationResult](config.OpenAIAPIKey, embedModel),
			options.WithRedisBackend[string, models.PersonalizationResult](config.RedisURL, 0),
		)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s (supported: redis, memory)", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create semantic cache: %w", err)
	}

	fiberlog.Info("ResultCache: semantic cache initialized")
	return &ResultCache{
		semanticCache:     semanticCache,
		semanticThreshold: float32(threshold),
	}, nil
}

// scopedText namespaces the embedded text so similarity never crosses a
// customer or level boundary.
func scopedText(customerID string, level models.PersonalizationLevel, message string) string {
	return fmt.Sprintf("%s|%s|%s", customerID, level, message)
}

// Get looks up a prior result for the rendered message, trying an exact
// key match before semantic similarity.
func (rc *ResultCache) Get(ctx context.Context, customerID string, level models.PersonalizationLevel, message, requestID string) (*models.PersonalizationResult, bool) {
	if rc == nil || rc.semanticCache == nil {
		return nil, false
	}

	text := scopedText(customerID, level, message)

	if hit, found, err := rc.semanticCache.Get(ctx, text); found && err == nil {
		fiberlog.Infof("[%s] ResultCache: exact cache hit", requestID)
		return &hit, true
	} else if err != nil {
		fiberlog.Errorf("[%s] ResultCache: error during exact lookup: %v", requestID, err)
	}

	if match, err := rc.semanticCache.Lookup(ctx, text, rc.semanticThreshold); err == nil && match != nil {
		fiberlog.Infof("[%s] ResultCache: semantic cache hit", requestID)
		return &match.Value, true
	} else if err != nil {
		fiberlog.Errorf("[%s] ResultCache: error during semantic lookup: %v", requestID, err)
	}

	fiberlog.Debugf("[%s] ResultCache: cache miss", requestID)
	return nil, false
}

// Set stores an enhanced result. Failures are logged, not returned; a
// cold cache only costs money, it never breaks a request.
func (rc *ResultCache) Set(ctx context.Context, customerID string, level models.PersonalizationLevel, message string, result models.PersonalizationResult, requestID string) {
	if rc == nil || rc.semanticCache == nil {
		return
	}

	text := scopedText(customerID, level, message)
	if err := rc.semanticCache.Set(ctx, text, text, result); err != nil {
		fiberlog.Errorf("[%s] ResultCache: failed to store result: %v", requestID, err)
		return
	}
	fiberlog.Debugf("[%s] ResultCache: stored result", requestID)
}
