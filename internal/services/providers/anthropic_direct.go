package providers

import (
	"context"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicOption "github.com/anthropics/anthropic-sdk-go/option"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/utils/clientcache"
)

const (
	anthropicDirectName = "anthropic_direct"

	// pinnedModel is the vendor-side model every call collapses to when
	// the catalog id has no explicit mapping. Pinning one audited
	// version is deliberate: this path exists to guarantee a fixed
	// compliance posture, so model choice narrows rather than widens.
	pinnedModel = anthropic.Model("claude-haiku-4-5")

	defaultDirectMaxTokens = 1024
)

// directModelPins maps catalog ids to vendor model versions.
var directModelPins = map[string]anthropic.Model{
	"anthropic/claude-haiku-4.5":  "claude-haiku-4-5",
	"anthropic/claude-sonnet-4.5": "claude-sonnet-4-5",
	"anthropic/claude-sonnet-4":   "claude-sonnet-4-20250514",
}

// AnthropicDirect calls the vendor API without the gateway in between.
// It is selected when a deployment must guarantee a single audited
// model version regardless of what the catalog id requests.
type AnthropicDirect struct {
	cfg         models.ProviderConfig
	clientCache *clientcache.Cache[*anthropic.Client]
}

func NewAnthropicDirect(cfg models.ProviderConfig) *AnthropicDirect {
	return &AnthropicDirect{
		cfg:         cfg,
		clientCache: clientcache.NewCache[*anthropic.Client](),
	}
}

func (a *AnthropicDirect) Name() string { return anthropicDirectName }

// PinModel resolves a catalog id to the vendor model this adapter will
// actually call.
func PinModel(catalogID string) anthropic.Model {
	if pinned, ok := directModelPins[catalogID]; ok {
		return pinned
	}
	return pinnedModel
}

func (a *AnthropicDirect) client() (*anthropic.Client, error) {
	configHash, err := hashProviderConfig(a.cfg)
	if err != nil {
		return nil, models.NewInternalError("failed to hash provider config", err)
	}
	return a.clientCache.GetOrCreate(configHash, func() (*anthropic.Client, error) {
		fiberlog.Debugf("anthropic_direct: creating client (config hash: %s)", configHash[:8])
		opts := []anthropicOption.RequestOption{
			anthropicOption.WithAPIKey(a.cfg.APIKey),
		}
		if a.cfg.BaseURL != "" {
			opts = append(opts, anthropicOption.WithBaseURL(a.cfg.BaseURL))
		}
		for key, value := range a.cfg.Headers {
			opts = append(opts, anthropicOption.WithHeader(key, value))
		}
		client := anthropic.NewClient(opts...)
		return &client, nil
	})
}

func (a *AnthropicDirect) Chat(ctx context.Context, messages []models.ChatMessage, opts models.ChatOptions) (*models.ChatResponse, error) {
	if a.cfg.APIKey == "" {
		return nil, models.NewProviderError(anthropicDirectName, "API key not configured", nil)
	}

	client, err := a.client()
	if err != nil {
		return nil, err
	}

	model := PinModel(opts.Model)
	if string(model) != opts.Model {
		fiberlog.Debugf("anthropic_direct: catalog model %q pinned to %q", opts.Model, model)
	}

	maxTokens := int64(opts.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultDirectMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  toAnthropicMessages(messages),
	}
	if opts.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: opts.System}}
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}

	callCtx, cancel := callContext(ctx)
	defer cancel()

	start := time.Now()
	message, err := client.Messages.New(callCtx, params)
	if err != nil {
		fiberlog.Errorf("anthropic_direct: request failed after %v - model: %s: %v", time.Since(start), model, err)
		return nil, wrapCallError(anthropicDirectName, "message request failed", err)
	}

	fiberlog.Debugf("anthropic_direct: completed in %v - usage: input:%d output:%d",
		time.Since(start), message.Usage.InputTokens, message.Usage.OutputTokens)

	content := firstTextBlock(message.Content)

	prompt := int(message.Usage.InputTokens)
	completion := int(message.Usage.OutputTokens)
	return &models.ChatResponse{
		Content: content,
		Usage: models.TokenUsage{
			PromptTokens:     prompt,
			CompletionTokens: completion,
			TotalTokens:      prompt + completion,
		},
		Model: string(message.Model),
	}, nil
}

// firstTextBlock extracts the first text block of a response; thinking
// and tool-use blocks are skipped.
func firstTextBlock(blocks []anthropic.ContentBlockUnion) string {
	for _, block := range blocks {
		if block.Type == "text" {
			return block.Text
		}
	}
	return ""
}

func toAnthropicMessages(messages []models.ChatMessage) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	return out
}
