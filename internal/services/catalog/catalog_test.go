package catalog

import (
	"testing"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModelIsFirstEntry(t *testing.T) {
	c := Default()

	def := c.DefaultModel()
	assert.Equal(t, "anthropic/claude-haiku-4.5", def.ID)
	assert.True(t, def.Recommended)

	all := c.List()
	require.NotEmpty(t, all)
	assert.Equal(t, def.ID, all[0].ID)
}

func TestByID(t *testing.T) {
	c := Default()

	m := c.ByID("mistralai/mistral-large")
	require.NotNil(t, m)
	assert.Equal(t, "mistral", m.Provider)
	assert.True(t, m.EUHosted)

	assert.Nil(t, c.ByID("nope/not-a-model"))
}

func TestEUHostedSubset(t *testing.T) {
	c := Default()

	eu := c.EUHosted()
	require.NotEmpty(t, eu)
	for _, m := range eu {
		assert.True(t, m.EUHosted, "model %s in EU subset must be EU-hosted", m.ID)
	}

	def := c.DefaultEUModel()
	assert.True(t, def.EUHosted)
}

func TestByProvider(t *testing.T) {
	c := Default()

	tests := []struct {
		provider string
		want     int
	}{
		{"mistral", 2},
		{"openai", 3},
		{"anthropic", 1},
		{"deepseek", 2},
		{"qwen", 2},
		{"xai", 2},
		{"unknown", 0},
	}
	for _, tt := range tests {
		got := c.ByProvider(tt.provider)
		assert.Len(t, got, tt.want, "provider %s", tt.provider)
	}
}

func TestRecommendedAreFlagged(t *testing.T) {
	c := Default()
	for _, m := range c.Recommended() {
		assert.True(t, m.Recommended)
	}
}

func TestListReturnsCopy(t *testing.T) {
	c := Default()
	list := c.List()
	list[0] = models.ModelDescriptor{ID: "mutated"}
	assert.Equal(t, "anthropic/claude-haiku-4.5", c.DefaultModel().ID)
}
