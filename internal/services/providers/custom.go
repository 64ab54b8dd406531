package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/Egham-7/llm-router/internal/models"
)

const defaultAPIVersion = "2024-02-01"

// customHTTPClient is shared by every custom-endpoint adapter. The
// transport pools connections per host; the 60s call timeout comes from
// the request context, not the client.
var customHTTPClient = &http.Client{
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	},
}

// CustomEndpoint routes chat calls to a customer-managed deployment:
// an Azure OpenAI deployment or any OpenAI-compatible server. The
// aws-bedrock variant has no adapter yet and fails fast.
type CustomEndpoint struct {
	endpoint models.CustomEndpoint
	apiKey   string
}

// NewCustomEndpoint builds the adapter with an already-decrypted key.
func NewCustomEndpoint(endpoint models.CustomEndpoint, apiKey string) (*CustomEndpoint, error) {
	switch endpoint.Provider {
	case models.EndpointAzureOpenAI, models.EndpointOpenAICompatible:
	case models.EndpointAWSBedrock:
		return nil, models.NewUnsupportedEndpointError(string(endpoint.Provider))
	default:
		return nil, models.NewValidationError(fmt.Sprintf("unknown endpoint provider %q", endpoint.Provider), nil)
	}
	if endpoint.BaseURL == "" {
		return nil, models.NewValidationError("endpoint base URL is required", nil)
	}
	return &CustomEndpoint{endpoint: endpoint, apiKey: apiKey}, nil
}

func (c *CustomEndpoint) Name() string {
	return "custom_" + string(c.endpoint.Provider)
}

// openai wire types shared by both endpoint variants.
type wireChatRequest struct {
	Model       string               `json:"model,omitempty"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature,omitempty"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
}

type wireChatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// requestURL builds the variant-specific chat completions URL.
func (c *CustomEndpoint) requestURL() (string, error) {
	base := strings.TrimSuffix(c.endpoint.BaseURL, "/")
	switch c.endpoint.Provider {
	case models.EndpointAzureOpenAI:
		if c.endpoint.DeploymentName == "" {
			return "", models.NewValidationError("azure endpoint requires a deployment name", nil)
		}
		apiVersion := c.endpoint.APIVersion
		if apiVersion == "" {
			apiVersion = defaultAPIVersion
		}
		return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			base, url.PathEscape(c.endpoint.DeploymentName), url.QueryEscape(apiVersion)), nil
	default:
		return base + "/v1/chat/completions", nil
	}
}

func (c *CustomEndpoint) Chat(ctx context.Context, messages []models.ChatMessage, opts models.ChatOptions) (*models.ChatResponse, error) {
	endpoint, err := c.requestURL()
	if err != nil {
		return nil, err
	}

	all := messages
	if opts.System != "" {
		all = append([]models.ChatMessage{{Role: models.RoleSystem, Content: opts.System}}, messages...)
	}

	// Azure selects the model by deployment; the model field is only
	// meaningful for the generic variant.
	model := c.endpoint.ModelID
	if model == "" {
		model = opts.Model
	}
	if c.endpoint.Provider == models.EndpointAzureOpenAI {
		model = ""
	}

	payload, err := json.Marshal(wireChatRequest{
		Model:       model,
		Messages:    all,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return nil, models.NewInternalError("failed to encode chat request", err)
	}

	callCtx, cancel := callContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, models.NewInternalError("failed to build chat request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.endpoint.Provider == models.EndpointAzureOpenAI {
		req.Header.Set("api-key", c.apiKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := customHTTPClient.Do(req)
	if err != nil {
		fiberlog.Errorf("%s: request failed after %v: %v", c.Name(), time.Since(start), err)
		return nil, wrapCallError(c.Name(), "chat request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			fiberlog.Warnf("%s: failed to close response body: %v", c.Name(), closeErr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, wrapCallError(c.Name(), "failed to read response body", err)
	}

	var wire wireChatResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, models.NewProviderError(c.Name(), fmt.Sprintf("malformed response (status %d)", resp.StatusCode), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
		if wire.Error != nil && wire.Error.Message != "" {
			message = fmt.Sprintf("%s: %s", message, wire.Error.Message)
		}
		return nil, models.NewProviderError(c.Name(), message, nil)
	}
	if len(wire.Choices) == 0 {
		return nil, models.NewProviderError(c.Name(), "response contained no choices", nil)
	}

	fiberlog.Debugf("%s: completed in %v - tokens: %d", c.Name(), time.Since(start), wire.Usage.TotalTokens)

	respModel := wire.Model
	if respModel == "" {
		respModel = opts.Model
	}
	return &models.ChatResponse{
		Content: wire.Choices[0].Message.Content,
		Usage: models.TokenUsage{
			PromptTokens:     wire.Usage.PromptTokens,
			CompletionTokens: wire.Usage.CompletionTokens,
			TotalTokens:      wire.Usage.TotalTokens,
		},
		Model: respModel,
	}, nil
}
