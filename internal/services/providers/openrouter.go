package providers

import (
	"context"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/openai/openai-go/v2"
	openaiOption "github.com/openai/openai-go/v2/option"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/utils/clientcache"
)

const (
	openRouterName    = "openrouter"
	openRouterBaseURL = "https://openrouter.ai/api/v1"

	// Attribution headers required by the gateway for rankings.
	refererHeader = "https://app.meet-sam.com"
	titleHeader   = "Sam AI - Cost Optimized"
)

// OpenRouter is the hosted multi-model gateway adapter. It accepts any
// catalog model id and forwards it unchanged.
type OpenRouter struct {
	cfg         models.ProviderConfig
	clientCache *clientcache.Cache[*openai.Client]
}

// NewOpenRouter builds the gateway adapter. The config's APIKey may be
// the platform key or a customer-supplied key; both route identically.
func NewOpenRouter(cfg models.ProviderConfig) *OpenRouter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = openRouterBaseURL
	}
	return &OpenRouter{
		cfg:         cfg,
		clientCache: clientcache.NewCache[*openai.Client](),
	}
}

func (o *OpenRouter) Name() string { return openRouterName }

func (o *OpenRouter) client() (*openai.Client, error) {
	configHash, err := hashProviderConfig(o.cfg)
	if err != nil {
		return nil, models.NewInternalError("failed to hash provider config", err)
	}
	return o.clientCache.GetOrCreate(configHash, func() (*openai.Client, error) {
		fiberlog.Debugf("openrouter: creating client (config hash: %s)", configHash[:8])
		opts := []openaiOption.RequestOption{
			openaiOption.WithAPIKey(o.cfg.APIKey),
			openaiOption.WithBaseURL(o.cfg.BaseURL),
			openaiOption.WithHeader("HTTP-Referer", refererHeader),
			openaiOption.WithHeader("X-Title", titleHeader),
		}
		for key, value := range o.cfg.Headers {
			opts = append(opts, openaiOption.WithHeader(key, value))
		}
		client := openai.NewClient(opts...)
		return &client, nil
	})
}

func (o *OpenRouter) Chat(ctx context.Context, messages []models.ChatMessage, opts models.ChatOptions) (*models.ChatResponse, error) {
	if o.cfg.APIKey == "" {
		return nil, models.NewProviderError(openRouterName, "API key not configured", nil)
	}
	if opts.Model == "" {
		return nil, models.NewValidationError("model id is required", nil)
	}

	client, err := o.client()
	if err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(opts.Model),
		Messages: toOpenAIMessages(messages, opts.System),
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	callCtx, cancel := callContext(ctx)
	defer cancel()

	start := time.Now()
	resp, err := client.Chat.Completions.New(callCtx, params)
	if err != nil {
		fiberlog.Errorf("openrouter: request failed after %v - model: %s: %v", time.Since(start), opts.Model, err)
		return nil, wrapCallError(openRouterName, "completion request failed", err)
	}
	if len(resp.Choices) == 0 {
		return nil, models.NewProviderError(openRouterName, "response contained no choices", nil)
	}

	fiberlog.Debugf("openrouter: completed in %v - model: %s, tokens: %d", time.Since(start), resp.Model, resp.Usage.TotalTokens)

	return &models.ChatResponse{
		Content: resp.Choices[0].Message.Content,
		Usage: models.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
		Model: resp.Model,
	}, nil
}

// toOpenAIMessages converts router messages to SDK unions, prepending
// the system prompt when set.
func toOpenAIMessages(messages []models.ChatMessage, system string) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if system != "" {
		out = append(out, openai.SystemMessage(system))
	}
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case models.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
