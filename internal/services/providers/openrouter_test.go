package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Egham-7/llm-router/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouterChat(t *testing.T) {
	var gotReferer, gotTitle, gotAuth string
	var captured struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "gen-1",
			"model": "anthropic/claude-haiku-4.5",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "enhanced"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65}
		}`))
	}))
	defer server.Close()

	adapter := NewOpenRouter(models.ProviderConfig{APIKey: "sk-or-test", BaseURL: server.URL})

	resp, err := adapter.Chat(context.Background(),
		[]models.ChatMessage{{Role: models.RoleUser, Content: "enhance this"}},
		models.ChatOptions{Model: "anthropic/claude-haiku-4.5", System: "be concise", Temperature: 0.7, MaxTokens: 200})
	require.NoError(t, err)

	assert.Equal(t, "enhanced", resp.Content)
	assert.Equal(t, 40, resp.Usage.PromptTokens)
	assert.Equal(t, 25, resp.Usage.CompletionTokens)
	assert.Equal(t, 65, resp.Usage.TotalTokens)
	assert.Equal(t, "anthropic/claude-haiku-4.5", resp.Model)

	assert.Equal(t, refererHeader, gotReferer)
	assert.Equal(t, titleHeader, gotTitle)
	assert.Equal(t, "Bearer sk-or-test", gotAuth)

	assert.Equal(t, "anthropic/claude-haiku-4.5", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
}

func TestOpenRouterValidation(t *testing.T) {
	t.Run("missing API key", func(t *testing.T) {
		adapter := NewOpenRouter(models.ProviderConfig{})
		_, err := adapter.Chat(context.Background(), nil, models.ChatOptions{Model: "openai/gpt-5"})
		assert.True(t, models.IsErrorType(err, models.ErrorTypeProvider))
	})

	t.Run("missing model", func(t *testing.T) {
		adapter := NewOpenRouter(models.ProviderConfig{APIKey: "sk"})
		_, err := adapter.Chat(context.Background(), nil, models.ChatOptions{})
		assert.True(t, models.IsErrorType(err, models.ErrorTypeValidation))
	})
}

func TestOpenRouterDefaultBaseURL(t *testing.T) {
	adapter := NewOpenRouter(models.ProviderConfig{APIKey: "sk"})
	assert.Equal(t, openRouterBaseURL, adapter.cfg.BaseURL)
}
