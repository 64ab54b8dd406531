// Package usage persists one append-only record per completed provider
// call and aggregates them for reporting. Recording failures never fail
// the call that produced the usage.
package usage

import (
	"context"
	"fmt"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/services/catalog"
)

// Tracker writes usage rows and computes aggregates.
type Tracker struct {
	db      *gorm.DB
	catalog *catalog.Catalog
}

func NewTracker(db *gorm.DB, cat *catalog.Catalog) *Tracker {
	return &Tracker{db: db, catalog: cat}
}

func (t *Tracker) AutoMigrate() error {
	return t.db.AutoMigrate(&models.LLMUsage{})
}

// CalculateCost prices token usage with the catalog's per-million-token
// rates. Unknown models cost zero; custom endpoints are billed by the
// customer's own provider, not by us.
func (t *Tracker) CalculateCost(modelID string, usage models.TokenUsage) float64 {
	descriptor := t.catalog.ByID(modelID)
	if descriptor == nil {
		return 0
	}
	input := float64(usage.PromptTokens) / 1_000_000 * descriptor.Pricing.Input
	output := float64(usage.CompletionTokens) / 1_000_000 * descriptor.Pricing.Output
	return input + output
}

// Record appends one usage row. Errors are logged and swallowed so an
// accounting hiccup never breaks a successful provider call.
func (t *Tracker) Record(ctx context.Context, record *models.LLMUsage) {
	if record.Currency == "" {
		record.Currency = "USD"
	}
	if record.TokensTotal == 0 {
		record.TokensTotal = record.TokensInput + record.TokensOutput
	}
	if err := t.db.WithContext(ctx).Create(record).Error; err != nil {
		fiberlog.Errorf("[%s] usage: failed to record call - customer: %s, model: %s, task: %s: %v",
			record.RequestID, record.CustomerID, record.Model, record.TaskType, err)
		return
	}
	fiberlog.Debugf("[%s] usage: recorded %s call - model: %s, tokens: %d, cost: $%.6f",
		record.RequestID, record.TaskType, record.Model, record.TokensTotal, record.Cost)
}

// StatsFor aggregates a customer's usage since a point in time.
func (t *Tracker) StatsFor(ctx context.Context, customerID string, since time.Time) (models.UsageStats, error) {
	var stats models.UsageStats
	err := t.db.WithContext(ctx).
		Model(&models.LLMUsage{}).
		Where("customer_id = ? AND created_at >= ?", customerID, since).
		Select("COUNT(*) AS total_requests, COALESCE(SUM(cost), 0) AS total_cost, COALESCE(SUM(tokens_total), 0) AS total_tokens").
		Scan(&stats).Error
	if err != nil {
		return models.UsageStats{}, fmt.Errorf("failed to aggregate usage for %s: %w", customerID, err)
	}
	return stats, nil
}

// StatsByTask aggregates all usage since a point in time, per task type.
func (t *Tracker) StatsByTask(ctx context.Context, since time.Time) (map[models.TaskType]models.UsageStats, error) {
	var rows []struct {
		TaskType      models.TaskType
		TotalRequests int64
		TotalCost     float64
		TotalTokens   int64
	}
	err := t.db.WithContext(ctx).
		Model(&models.LLMUsage{}).
		Where("created_at >= ?", since).
		Select("task_type, COUNT(*) AS total_requests, COALESCE(SUM(cost), 0) AS total_cost, COALESCE(SUM(tokens_total), 0) AS total_tokens").
		Group("task_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate usage by task: %w", err)
	}

	out := make(map[models.TaskType]models.UsageStats, len(rows))
	for _, row := range rows {
		out[row.TaskType] = models.UsageStats{
			TotalRequests: row.TotalRequests,
			TotalCost:     row.TotalCost,
			TotalTokens:   row.TotalTokens,
		}
	}
	return out, nil
}
