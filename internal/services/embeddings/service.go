// Package embeddings produces fixed-width vectors for prospect and
// message indexing. The entry point never returns an error alongside a
// vector: failures yield an empty slice and callers skip indexing.
package embeddings

import (
	"context"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"google.golang.org/genai"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/utils/clientcache"
)

const (
	embeddingModel = "text-embedding-004"

	// Dimension is the fixed vector width every caller can rely on.
	// Provider vectors are truncated or zero-padded to this size.
	Dimension = 1536

	embedTimeout = 30 * time.Second
)

// Service wraps the Gemini embedding API.
type Service struct {
	apiKey      string
	clientCache *clientcache.Cache[*genai.Client]
}

func NewService(apiKey string) *Service {
	return &Service{
		apiKey:      apiKey,
		clientCache: clientcache.NewCache[*genai.Client](),
	}
}

func (s *Service) client(ctx context.Context) (*genai.Client, error) {
	return s.clientCache.GetOrCreate("gemini", func() (*genai.Client, error) {
		fiberlog.Debug("embeddings: creating Gemini client")
		return genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  s.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
}

// Embed returns a vector of exactly Dimension values for the text, or
// an empty slice when the text is empty, the provider fails, or the
// provider returns no values. An empty result means "skip indexing",
// never a valid zero-vector.
func (s *Service) Embed(ctx context.Context, text string) []float32 {
	if text == "" {
		return nil
	}
	if s.apiKey == "" {
		fiberlog.Debug("embeddings: API key not configured, skipping")
		return nil
	}

	client, err := s.client(ctx)
	if err != nil {
		fiberlog.Errorf("embeddings: client creation failed: %v", err)
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	start := time.Now()
	resp, err := client.Models.EmbedContent(callCtx, embeddingModel,
		genai.Text(text), nil)
	if err != nil {
		fiberlog.Errorf("embeddings: request failed after %v - model: %s: %v", time.Since(start), embeddingModel, err)
		return nil
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		fiberlog.Errorf("embeddings: %v", models.NewEmbeddingEmptyError(embeddingModel))
		return nil
	}

	fiberlog.Debugf("embeddings: completed in %v - dims: %d", time.Since(start), len(resp.Embeddings[0].Values))
	return Normalize(resp.Embeddings[0].Values)
}

// Normalize fits a vector to exactly Dimension values, truncating long
// vectors and zero-padding short ones. Empty input stays empty.
func Normalize(values []float32) []float32 {
	if len(values) == 0 {
		return nil
	}
	if len(values) >= Dimension {
		out := make([]float32, Dimension)
		copy(out, values[:Dimension])
		return out
	}
	out := make([]float32, Dimension)
	copy(out, values)
	return out
}
