// Package personalization composes the whole router into the one entry
// point campaign code calls. Its contract is strict: Personalize never
// returns an error. Budget exhaustion, provider failures, decryption
// failures and quality-gate misses all degrade to template-only output.
package personalization

import (
	"context"
	"fmt"
	"strings"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/services/budget"
	"github.com/Egham-7/llm-router/internal/services/cache"
	"github.com/Egham-7/llm-router/internal/services/catalog"
	"github.com/Egham-7/llm-router/internal/services/preferences"
	"github.com/Egham-7/llm-router/internal/services/providers"
	"github.com/Egham-7/llm-router/internal/services/quality"
	"github.com/Egham-7/llm-router/internal/services/region"
	"github.com/Egham-7/llm-router/internal/services/strategy"
	"github.com/Egham-7/llm-router/internal/services/templates"
	"github.com/Egham-7/llm-router/internal/services/usage"
)

// batchDelay spaces sequential batch items to stay under provider rate
// limits.
const batchDelay = 100 * time.Millisecond

// Service orchestrates template rendering, budget enforcement, provider
// routing and quality gating.
type Service struct {
	catalog  *catalog.Catalog
	engine   *templates.Engine
	selector *strategy.Selector
	ledger   *budget.Ledger
	scorer   quality.Scorer
	prefs    *preferences.Service
	region   *region.Resolver
	factory  *providers.Factory
	tracker  *usage.Tracker
	results  *cache.ResultCache
}

func NewService(
	cat *catalog.Catalog,
	ledger *budget.Ledger,
	scorer quality.Scorer,
	prefs *preferences.Service,
	resolver *region.Resolver,
	factory *providers.Factory,
	tracker *usage.Tracker,
	results *cache.ResultCache,
) *Service {
	return &Service{
		catalog:  cat,
		engine:   templates.NewEngine(),
		selector: strategy.NewSelector(cat),
		ledger:   ledger,
		scorer:   scorer,
		prefs:    prefs,
		region:   resolver,
		factory:  factory,
		tracker:  tracker,
		results:  results,
	}
}

// Personalize produces a message for one prospect. The only externally
// visible failure mode is a template-only result.
func (s *Service) Personalize(ctx context.Context, req models.PersonalizationRequest) models.PersonalizationResult {
	requestID := uuid.NewString()

	rendered := s.engine.Render(req.Template, req.Campaign, req.Prospect)
	templateKey := templates.TemplateKey(req.Template, req.Campaign)

	state, err := s.ledger.State(ctx)
	if err != nil {
		fiberlog.Errorf("[%s] personalization: budget state unavailable, using template - customer: %s: %v", requestID, req.CustomerID, err)
		return s.templateOnly(rendered, templateKey)
	}
	switch state {
	case models.BudgetExhaustedState:
		fiberlog.Warnf("[%s] personalization: emergency reserve exhausted, using template - customer: %s", requestID, req.CustomerID)
		return s.templateOnly(rendered, templateKey)
	case models.BudgetReserve:
		fiberlog.Warnf("[%s] personalization: daily budget exceeded, drawing on emergency reserve - customer: %s", requestID, req.CustomerID)
	}

	remaining, err := s.ledger.Remaining(ctx)
	if err != nil {
		fiberlog.Errorf("[%s] personalization: remaining budget unavailable, using template - customer: %s: %v", requestID, req.CustomerID, err)
		return s.templateOnly(rendered, templateKey)
	}
	if req.BudgetLimit != nil && *req.BudgetLimit < remaining {
		remaining = *req.BudgetLimit
	}

	strat := s.selector.Select(req.Level, remaining, rendered)
	if strat == models.StrategyTemplateOnly {
		fiberlog.Debugf("[%s] personalization: strategy template-only - customer: %s, level: %s", requestID, req.CustomerID, req.Level)
		return s.templateOnly(rendered, templateKey)
	}

	if hit, found := s.results.Get(ctx, req.CustomerID, req.Level, rendered, requestID); found {
		cached := *hit
		cached.Cost = 0
		cached.TokensUsed = 0
		return cached
	}

	pref, err := s.prefs.PreferencesFor(ctx, req.CustomerID)
	if err != nil {
		fiberlog.Errorf("[%s] personalization: preference lookup failed, using template - customer: %s: %v", requestID, req.CustomerID, err)
		return s.templateOnly(rendered, templateKey)
	}

	isEU := s.region.Resolve(req.RegionHints)
	modelID := s.modelFor(pref, req.Level, isEU)

	result, err := s.enhance(ctx, req, pref, rendered, templateKey, modelID, requestID)
	if err != nil {
		fiberlog.Warnf("[%s] personalization: enhancement failed, using template - customer: %s, model: %s: %v",
			requestID, req.CustomerID, modelID, err)
		return s.templateOnly(rendered, templateKey)
	}

	if result.QualityScore < quality.MinimumScore {
		fiberlog.Infof("[%s] personalization: quality %.2f below threshold %.2f, escalating - customer: %s",
			requestID, result.QualityScore, quality.MinimumScore, req.CustomerID)
		return s.escalate(ctx, req, pref, rendered, templateKey, isEU, requestID)
	}

	s.results.Set(ctx, req.CustomerID, req.Level, rendered, result, requestID)
	return result
}

// modelFor picks the model for an enhancement call. An explicit
// customer selection wins (with a residency warning on mismatch); EU
// callers without a selection get the EU default; everyone else gets
// the strategy's level policy.
func (s *Service) modelFor(pref *models.CustomerLLMPreference, level models.PersonalizationLevel, isEU bool) string {
	selected := ""
	if pref.SelectedModelID != nil {
		selected = *pref.SelectedModelID
	}
	if selected != "" {
		return s.region.ModelForUser(isEU, selected)
	}
	if isEU {
		return s.catalog.DefaultEUModel().ID
	}
	return s.selector.ModelForLevel(level).ID
}

// escalate retries once on the highest-quality tier. If the retry
// fails or still scores low, the template wins.
func (s *Service) escalate(ctx context.Context, req models.PersonalizationRequest, pref *models.CustomerLLMPreference, rendered, templateKey string, isEU bool, requestID string) models.PersonalizationResult {
	modelID := s.selector.ModelForLevel(models.LevelPremium).ID
	if isEU {
		modelID = s.catalog.DefaultEUModel().ID
	}

	escalated := req
	escalated.Level = models.LevelPremium

	result, err := s.enhance(ctx, escalated, pref, rendered, templateKey, modelID, requestID)
	if err != nil {
		fiberlog.Warnf("[%s] personalization: escalation failed, using template - customer: %s: %v", requestID, req.CustomerID, err)
		return s.templateOnly(rendered, templateKey)
	}
	if result.QualityScore < quality.MinimumScore {
		fiberlog.Warnf("[%s] personalization: escalation still below threshold (%.2f), using template - customer: %s",
			requestID, result.QualityScore, req.CustomerID)
		return s.templateOnly(rendered, templateKey)
	}

	s.results.Set(ctx, req.CustomerID, req.Level, rendered, result, requestID)
	return result
}

// enhance authorizes the estimated spend, runs the provider call,
// settles actual cost and scores the output.
func (s *Service) enhance(ctx context.Context, req models.PersonalizationRequest, pref *models.CustomerLLMPreference, rendered, templateKey, modelID, requestID string) (models.PersonalizationResult, error) {
	estimated := strategy.EstimateCost(req.Level)
	if err := s.ledger.Authorize(ctx, estimated); err != nil {
		return models.PersonalizationResult{}, err
	}

	provider, err := s.factory.Provider(pref, modelID)
	if err != nil {
		s.refund(ctx, estimated, requestID)
		return models.PersonalizationResult{}, err
	}

	opts := models.ChatOptions{
		Model:       modelID,
		Temperature: pref.Temperature,
		MaxTokens:   pref.MaxTokens,
	}

	fiberlog.Infof("[%s] personalization: enhancing - customer: %s, model: %s, route: %s, level: %s",
		requestID, req.CustomerID, modelID, providers.Describe(pref), req.Level)

	resp, err := provider.Chat(ctx,
		[]models.ChatMessage{{Role: models.RoleUser, Content: enhancementPrompt(rendered, req.Prospect)}},
		opts)
	if err != nil {
		s.refund(ctx, estimated, requestID)
		return models.PersonalizationResult{}, err
	}

	message := strings.TrimSpace(resp.Content)
	if message == "" {
		message = rendered
	}

	cost := s.tracker.CalculateCost(modelID, resp.Usage)
	if err := s.ledger.Settle(ctx, estimated, cost); err != nil {
		fiberlog.Errorf("[%s] personalization: failed to settle cost $%.6f: %v", requestID, cost, err)
	}

	s.tracker.Record(ctx, &models.LLMUsage{
		CustomerID:   req.CustomerID,
		RequestID:    requestID,
		Provider:     provider.Name(),
		Model:        resp.Model,
		TaskType:     models.TaskPersonalization,
		TokensInput:  resp.Usage.PromptTokens,
		TokensOutput: resp.Usage.CompletionTokens,
		TokensTotal:  resp.Usage.TotalTokens,
		Cost:         cost,
	})

	return models.PersonalizationResult{
		Message:      message,
		Cost:         cost,
		TokensUsed:   resp.Usage.TotalTokens,
		QualityScore: s.scorer.Score(message, req.Prospect),
		Model:        modelID,
		WasEnhanced:  true,
		TemplateUsed: templateKey,
	}, nil
}

func (s *Service) refund(ctx context.Context, estimated float64, requestID string) {
	if err := s.ledger.Settle(ctx, estimated, 0); err != nil {
		fiberlog.Errorf("[%s] personalization: failed to refund authorization $%.6f: %v", requestID, estimated, err)
	}
}

// templateOnly is the zero-cost floor. Templates carry a fixed baseline
// quality score.
func (s *Service) templateOnly(rendered, templateKey string) models.PersonalizationResult {
	return models.PersonalizationResult{
		Message:      rendered,
		Cost:         0,
		TokensUsed:   0,
		QualityScore: 0.75,
		Model:        models.TemplateModelID,
		WasEnhanced:  false,
		TemplateUsed: templateKey,
	}
}

// BatchPersonalize processes a campaign batch grouped by level, cheap
// tiers first, pacing sequential calls to respect rate limits. The
// returned slice preserves the input order.
func (s *Service) BatchPersonalize(ctx context.Context, requests []models.PersonalizationRequest) []models.PersonalizationResult {
	results := make([]models.PersonalizationResult, len(requests))

	order := make([]int, 0, len(requests))
	for _, level := range []models.PersonalizationLevel{models.LevelMinimal, models.LevelStandard, models.LevelPremium} {
		for i, req := range requests {
			if req.Level == level {
				order = append(order, i)
			}
		}
	}
	// Requests with an unrecognized level run last rather than being
	// dropped.
	seen := make(map[int]bool, len(order))
	for _, i := range order {
		seen[i] = true
	}
	for i := range requests {
		if !seen[i] {
			order = append(order, i)
		}
	}

	for n, i := range order {
		if n > 0 {
			select {
			case <-ctx.Done():
				// Finish the batch from templates; the contract still
				// guarantees a usable message per request.
				for _, j := range order[n:] {
					req := requests[j]
					results[j] = s.templateOnly(
						s.engine.Render(req.Template, req.Campaign, req.Prospect),
						templates.TemplateKey(req.Template, req.Campaign))
				}
				return results
			case <-time.After(batchDelay):
			}
		}
		results[i] = s.Personalize(ctx, requests[i])
	}
	return results
}

// enhancementPrompt asks for light-touch edits that keep the template's
// structure intact.
func enhancementPrompt(templateMessage string, prospect models.ProspectData) string {
	var challenge string
	if prospect.IndustryChallenge != "" {
		challenge = fmt.Sprintf("\n- Challenge: %s", prospect.IndustryChallenge)
	}
	return fmt.Sprintf(`Enhance this professional message with 1-2 specific, relevant details based on the prospect's background. Keep it concise and natural.

Template: %s

Prospect Info:
- Name: %s
- Company: %s
- Title: %s
- Industry: %s%s

Requirements:
- Maintain professional tone
- Keep under 150 characters
- Add only relevant, specific details
- Avoid generic phrases
- Don't change the core message structure

Enhanced message:`, templateMessage, prospect.FirstName, prospect.Company, prospect.Title, prospect.Industry, challenge)
}
