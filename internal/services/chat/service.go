// Package chat is the routing entry point for direct model calls:
// plain chat, premium quality review, and reply classification. Unlike
// personalization it never falls back on its own; typed errors propagate
// and callers decide recovery.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/services/catalog"
	"github.com/Egham-7/llm-router/internal/services/preferences"
	"github.com/Egham-7/llm-router/internal/services/providers"
	"github.com/Egham-7/llm-router/internal/services/region"
	"github.com/Egham-7/llm-router/internal/services/strategy"
	"github.com/Egham-7/llm-router/internal/services/usage"
)

const (
	reviewMaxTokens   = 500
	reviewTemperature = 0.3

	classifyMaxTokens   = 300
	classifyTemperature = 0.4

	// Cheap model used for reply classification.
	classifyModelID = "meta-llama/llama-4-scout-17b-16e"
)

// Service routes direct chat calls through the customer's resolved
// provider.
type Service struct {
	catalog  *catalog.Catalog
	prefs    *preferences.Service
	region   *region.Resolver
	factory  *providers.Factory
	tracker  *usage.Tracker
	selector *strategy.Selector
}

func NewService(cat *catalog.Catalog, prefs *preferences.Service, resolver *region.Resolver, factory *providers.Factory, tracker *usage.Tracker) *Service {
	return &Service{
		catalog:  cat,
		prefs:    prefs,
		region:   resolver,
		factory:  factory,
		tracker:  tracker,
		selector: strategy.NewSelector(cat),
	}
}

// Chat resolves the customer's route and model, sends the conversation
// and records usage. Provider and endpoint errors propagate to the
// caller unchanged.
func (s *Service) Chat(ctx context.Context, customerID string, messages []models.ChatMessage, opts models.ChatOptions, hints models.RegionHints) (*models.ChatResponse, error) {
	return s.chat(ctx, customerID, messages, opts, hints, models.TaskOptimization, uuid.NewString())
}

func (s *Service) chat(ctx context.Context, customerID string, messages []models.ChatMessage, opts models.ChatOptions, hints models.RegionHints, task models.TaskType, requestID string) (*models.ChatResponse, error) {
	pref, err := s.prefs.PreferencesFor(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if opts.Model == "" {
		selected := ""
		if pref.SelectedModelID != nil {
			selected = *pref.SelectedModelID
		}
		opts.Model = s.region.ModelForUser(s.region.Resolve(hints), selected)
	}
	if opts.Temperature == 0 {
		opts.Temperature = pref.Temperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = pref.MaxTokens
	}

	provider, err := s.factory.Provider(pref, opts.Model)
	if err != nil {
		return nil, err
	}

	fiberlog.Infof("[%s] chat: routing %s call - customer: %s, model: %s, route: %s",
		requestID, task, customerID, opts.Model, providers.Describe(pref))

	resp, err := provider.Chat(ctx, messages, opts)
	if err != nil {
		fiberlog.Errorf("[%s] chat: %s call failed - customer: %s, model: %s: %v",
			requestID, task, customerID, opts.Model, err)
		return nil, err
	}

	s.tracker.Record(ctx, &models.LLMUsage{
		CustomerID:   customerID,
		RequestID:    requestID,
		Provider:     provider.Name(),
		Model:        resp.Model,
		TaskType:     task,
		TokensInput:  resp.Usage.PromptTokens,
		TokensOutput: resp.Usage.CompletionTokens,
		TokensTotal:  resp.Usage.TotalTokens,
		Cost:         s.tracker.CalculateCost(opts.Model, resp.Usage),
	})
	return resp, nil
}

// QualityReview asks a premium model to vet a drafted message. A failed
// call or unparseable verdict returns the approved default so a review
// outage never blocks a campaign.
func (s *Service) QualityReview(ctx context.Context, customerID, message string, prospect models.ProspectData, campaign models.CampaignType) models.QualityReview {
	requestID := uuid.NewString()

	prompt := fmt.Sprintf(`Review this LinkedIn message for quality, professionalism, and likelihood of positive response:

Message:
%s

Prospect Context:
- Name: %s
- Company: %s
- Role: %s
- Industry: %s
- Campaign Type: %s

Evaluate on:
1. Professionalism and tone
2. Personalization effectiveness
3. Value proposition clarity
4. Likelihood of positive response
5. Potential risks or red flags

Return JSON format:
{
  "approved": boolean,
  "score": number (1-10),
  "reasoning": "detailed explanation",
  "suggestions": ["improvement 1", "improvement 2"]
}`, message, prospect.FirstName, prospect.Company, prospect.Title, prospect.Industry, campaign)

	opts := models.ChatOptions{
		Model:       s.selector.ModelForLevel(models.LevelPremium).ID,
		System:      "You are an expert LinkedIn communication reviewer. Evaluate messages for professional quality, effectiveness, and risk. Always respond in valid JSON format.",
		Temperature: reviewTemperature,
		MaxTokens:   reviewMaxTokens,
	}

	resp, err := s.chat(ctx, customerID,
		[]models.ChatMessage{{Role: models.RoleUser, Content: prompt}},
		opts, models.RegionHints{}, models.TaskReview, requestID)
	if err != nil {
		fiberlog.Warnf("[%s] chat: quality review failed, defaulting to approved - customer: %s: %v", requestID, customerID, err)
		return defaultReview()
	}

	var review models.QualityReview
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &review); err != nil {
		fiberlog.Warnf("[%s] chat: unparseable review verdict, defaulting to approved - customer: %s: %v", requestID, customerID, err)
		return defaultReview()
	}
	review.Cost = s.tracker.CalculateCost(resp.Model, resp.Usage)
	return review
}

func defaultReview() models.QualityReview {
	return models.QualityReview{
		Approved:    true,
		Score:       7,
		Reasoning:   "Review failed - defaulting to approved",
		Suggestions: []string{"Manual review recommended"},
	}
}

// ClassifyReply categorizes a prospect's reply for funnel routing. On
// any failure it returns interested at 0.5 confidence so the reply
// lands in a manual review queue instead of being dropped.
func (s *Service) ClassifyReply(ctx context.Context, customerID, replyText, originalMessage string, prospect models.ProspectData) models.ReplyClassification {
	requestID := uuid.NewString()

	prompt := fmt.Sprintf(`Classify this prospect reply to determine the appropriate next action:

Original Message Sent:
%s

Prospect Reply:
%s

Prospect: %s at %s

Classify the reply and suggest next action:

Categories:
- interested: Shows genuine interest, asks questions, wants to learn more
- not_interested: Explicitly says no, not interested, not a good fit
- request_info: Asks for more information, pricing, case studies
- schedule_call: Wants to set up a meeting or call
- objection: Raises concerns but not a flat rejection
- out_of_office: Auto-reply or unavailable message

Return JSON format:
{
  "category": "category_name",
  "confidence": number (0-1),
  "sentiment": "positive|neutral|negative",
  "next_action": "specific recommended action"
}`, originalMessage, replyText, prospect.FirstName, prospect.Company)

	opts := models.ChatOptions{
		Model:       classifyModelID,
		System:      "You are an expert at analyzing LinkedIn message replies and determining prospect intent. Always respond in valid JSON format.",
		Temperature: classifyTemperature,
		MaxTokens:   classifyMaxTokens,
	}

	resp, err := s.chat(ctx, customerID,
		[]models.ChatMessage{{Role: models.RoleUser, Content: prompt}},
		opts, models.RegionHints{}, models.TaskClassification, requestID)
	if err != nil {
		fiberlog.Warnf("[%s] chat: reply classification failed, defaulting to interested - customer: %s: %v", requestID, customerID, err)
		return defaultClassification()
	}

	var classification models.ReplyClassification
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &classification); err != nil || classification.Category == "" {
		fiberlog.Warnf("[%s] chat: unparseable classification, defaulting to interested - customer: %s", requestID, customerID)
		return defaultClassification()
	}
	classification.Cost = s.tracker.CalculateCost(resp.Model, resp.Usage)
	return classification
}

func defaultClassification() models.ReplyClassification {
	return models.ReplyClassification{
		Category:   models.ReplyInterested,
		Confidence: 0.5,
		Sentiment:  "neutral",
		NextAction: "Manual review required",
	}
}

// extractJSON trims code fences and surrounding prose some models wrap
// around JSON output.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if start := strings.Index(content, "{"); start >= 0 {
		if end := strings.LastIndex(content, "}"); end > start {
			return content[start : end+1]
		}
	}
	return content
}
