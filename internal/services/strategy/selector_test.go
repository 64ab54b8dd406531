package strategy

import (
	"strings"
	"testing"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/services/catalog"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCost(t *testing.T) {
	assert.Equal(t, 0.003, EstimateCost(models.LevelMinimal))
	assert.Equal(t, 0.005, EstimateCost(models.LevelStandard))
	assert.Equal(t, 0.010, EstimateCost(models.LevelPremium))
	assert.Equal(t, 0.005, EstimateCost(models.PersonalizationLevel("unknown")))
}

func TestSelect(t *testing.T) {
	selector := NewSelector(catalog.Default())

	shortMsg := strings.Repeat("a", 120)   // ~30 tokens
	mediumMsg := strings.Repeat("a", 360)  // ~90 tokens
	longMsg := strings.Repeat("a", 600)    // ~150 tokens
	longerMsg := strings.Repeat("a", 1000) // ~250 tokens

	tests := []struct {
		name      string
		level     models.PersonalizationLevel
		remaining float64
		message   string
		want      models.Strategy
	}{
		{
			name:      "budget below estimate forces template only",
			level:     models.LevelPremium,
			remaining: 0.005,
			message:   longerMsg,
			want:      models.StrategyTemplateOnly,
		},
		{
			name:      "short message at minimal level skips AI",
			level:     models.LevelMinimal,
			remaining: 10.0,
			message:   shortMsg,
			want:      models.StrategyTemplateOnly,
		},
		{
			name:      "short message at standard level still gets minimal AI",
			level:     models.LevelStandard,
			remaining: 10.0,
			message:   shortMsg,
			want:      models.StrategyMinimalAI,
		},
		{
			name:      "medium message gets minimal AI",
			level:     models.LevelMinimal,
			remaining: 10.0,
			message:   mediumMsg,
			want:      models.StrategyMinimalAI,
		},
		{
			name:      "long message gets standard AI",
			level:     models.LevelStandard,
			remaining: 10.0,
			message:   longMsg,
			want:      models.StrategyStandardAI,
		},
		{
			name:      "longest messages get premium AI",
			level:     models.LevelPremium,
			remaining: 10.0,
			message:   longerMsg,
			want:      models.StrategyPremiumAI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selector.Select(tt.level, tt.remaining, tt.message)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModelForLevel(t *testing.T) {
	selector := NewSelector(catalog.Default())

	defaultModel := catalog.Default().DefaultModel()
	assert.Equal(t, defaultModel.ID, selector.ModelForLevel(models.LevelMinimal).ID)
	assert.Equal(t, defaultModel.ID, selector.ModelForLevel(models.LevelStandard).ID)

	premium := selector.ModelForLevel(models.LevelPremium)
	assert.Equal(t, models.TierFlagship, premium.Tier)
	assert.False(t, premium.RequiresCustomSetup)
	assert.GreaterOrEqual(t, premium.Pricing.Output, defaultModel.Pricing.Output)
}
