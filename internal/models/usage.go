package models

import "time"

// TaskType classifies what an LLM call was spent on
type TaskType string

const (
	TaskPersonalization TaskType = "personalization"
	TaskOptimization    TaskType = "optimization"
	TaskReview          TaskType = "review"
	TaskClassification  TaskType = "classification"
)

// LLMUsage is one append-only usage record per completed provider call.
// Rows are never mutated after creation.
type LLMUsage struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID   string    `gorm:"size:255;index;default:''" json:"customer_id"`
	RequestID    string    `gorm:"size:100;index;default:''" json:"request_id,omitzero"`
	Provider     string    `gorm:"not null;size:50;default:''" json:"provider"`
	Model        string    `gorm:"not null;size:255;default:''" json:"model"`
	TaskType     TaskType  `gorm:"not null;size:30;index;default:''" json:"task_type"`
	TokensInput  int       `gorm:"not null;default:0" json:"tokens_input"`
	TokensOutput int       `gorm:"not null;default:0" json:"tokens_output"`
	TokensTotal  int       `gorm:"not null;default:0" json:"tokens_total"`
	Cost         float64   `gorm:"not null;type:decimal(10,6);default:0" json:"cost"`
	Currency     string    `gorm:"not null;size:3;default:'USD'" json:"currency"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (LLMUsage) TableName() string {
	return "llm_usage"
}

// UsageStats aggregates usage rows for reporting
type UsageStats struct {
	TotalRequests int64   `json:"total_requests"`
	TotalCost     float64 `json:"total_cost"`
	TotalTokens   int64   `json:"total_tokens"`
}
