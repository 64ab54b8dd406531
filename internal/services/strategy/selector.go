// Package strategy decides how much AI spend a personalization request
// deserves, balancing remaining daily budget against expected value.
package strategy

import (
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/services/catalog"
)

// Per-request cost estimates used for pre-call budget checks. Actual
// spend is recorded from token usage after the call returns.
const (
	minimalCost  = 0.003
	standardCost = 0.005
	premiumCost  = 0.010

	// Rough token estimate: 4 characters per token.
	charsPerToken = 4
)

// Selector picks an enhancement strategy and the model to run it on.
type Selector struct {
	catalog *catalog.Catalog
}

func NewSelector(cat *catalog.Catalog) *Selector {
	return &Selector{catalog: cat}
}

// EstimateCost returns the expected cost of enhancing one message at
// the given personalization level.
func EstimateCost(level models.PersonalizationLevel) float64 {
	switch level {
	case models.LevelMinimal:
		return minimalCost
	case models.LevelStandard:
		return standardCost
	case models.LevelPremium:
		return premiumCost
	default:
		return standardCost
	}
}

// Select chooses the enhancement strategy for a rendered template
// message given the remaining budget. Template-only is returned both
// when the budget cannot cover the estimated cost and when the message
// is too short for minimal-level enhancement to add value.
func (s *Selector) Select(level models.PersonalizationLevel, remainingBudget float64, renderedMessage string) models.Strategy {
	estimatedCost := EstimateCost(level)
	if remainingBudget < estimatedCost {
		fiberlog.Debugf("strategy: remaining budget $%.4f below estimate $%.4f, template-only", remainingBudget, estimatedCost)
		return models.StrategyTemplateOnly
	}

	estimatedTokens := len(renderedMessage) / charsPerToken

	if estimatedTokens < 50 && level == models.LevelMinimal {
		return models.StrategyTemplateOnly
	}
	if estimatedTokens < 100 {
		return models.StrategyMinimalAI
	}
	if estimatedTokens < 200 {
		return models.StrategyStandardAI
	}
	return models.StrategyPremiumAI
}

// ModelForLevel maps a personalization level to a catalog model.
// Minimal and standard levels use the cost-efficient default flagship;
// premium uses the highest-quality flagship available.
func (s *Selector) ModelForLevel(level models.PersonalizationLevel) models.ModelDescriptor {
	switch level {
	case models.LevelPremium:
		return s.premiumModel()
	default:
		return s.catalog.DefaultModel()
	}
}

// premiumModel prefers the most expensive flagship by output pricing,
// on the assumption that output price tracks quality within a tier.
func (s *Selector) premiumModel() models.ModelDescriptor {
	best := s.catalog.DefaultModel()
	for _, m := range s.catalog.List() {
		if m.Tier != models.TierFlagship || m.RequiresCustomSetup {
			continue
		}
		if m.Pricing.Output > best.Pricing.Output {
			best = m
		}
	}
	return best
}
