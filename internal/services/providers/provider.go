// Package providers contains the chat adapters the router dispatches
// to: the hosted multi-model gateway, the direct Anthropic compliance
// path, and customer-managed custom endpoints. Every adapter normalizes
// responses to the same shape and never logs raw credentials.
package providers

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Egham-7/llm-router/internal/models"
)

// requestTimeout bounds every outbound chat call.
const requestTimeout = 60 * time.Second

// ChatProvider is the single logical operation of the adapter layer.
type ChatProvider interface {
	// Chat sends the conversation and normalizes the provider response.
	// Usage fields missing from the provider default to zero.
	Chat(ctx context.Context, messages []models.ChatMessage, opts models.ChatOptions) (*models.ChatResponse, error)

	// Name identifies the adapter in logs and errors.
	Name() string
}

// callContext derives the bounded context used for one provider call.
func callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, requestTimeout)
}

// wrapCallError maps transport failures to the error taxonomy, keeping
// timeouts distinguishable from generic provider failures.
func wrapCallError(provider, message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewTimeoutError(provider, err)
	}
	return models.NewProviderError(provider, message, err)
}

// hashProviderConfig fingerprints an adapter config for client caching.
// The credential is hashed before it enters the payload so raw keys
// never appear in cache keys or logs.
func hashProviderConfig(cfg models.ProviderConfig) (string, error) {
	apiKeyHash := sha256.Sum256([]byte(cfg.APIKey))
	payload, err := json.Marshal(struct {
		BaseURL    string
		Headers    map[string]string
		APIKeyHash string
	}{
		BaseURL:    cfg.BaseURL,
		Headers:    cfg.Headers,
		APIKeyHash: fmt.Sprintf("%x", apiKeyHash[:8]),
	})
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(payload)
	return fmt.Sprintf("%x", hash[:16]), nil
}
