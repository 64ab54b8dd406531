package models

import "time"

// BudgetState is the ladder position of the current day's spend
type BudgetState string

const (
	// BudgetNormal means spend is below the daily budget
	BudgetNormal BudgetState = "normal"
	// BudgetReserve means the daily budget is spent and the emergency
	// reserve is being drawn down; AI calls are still permitted
	BudgetReserve BudgetState = "emergency_reserve"
	// BudgetExhaustedState means the reserve is gone too; only template-only
	// output may be produced until the ledger resets
	BudgetExhaustedState BudgetState = "exhausted"
)

// DailySpend is the durable spend counter, one row per UTC calendar day.
type DailySpend struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Day       string    `gorm:"uniqueIndex;not null;size:10" json:"day"` // YYYY-MM-DD, UTC
	Spend     float64   `gorm:"not null;type:decimal(10,6);default:0" json:"spend"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (DailySpend) TableName() string {
	return "llm_daily_spend"
}

// BudgetStats is the cost snapshot exposed for monitoring
type BudgetStats struct {
	DailyBudget        float64     `json:"daily_budget"`
	CurrentSpend       float64     `json:"current_spend"`
	RemainingBudget    float64     `json:"remaining_budget"`
	EmergencyReserve   float64     `json:"emergency_reserve"`
	TotalBudget        float64     `json:"total_budget"`
	UtilizationPercent float64     `json:"utilization_percent"`
	State              BudgetState `json:"state"`
}

// BudgetConfig configures the ledger's ceilings
type BudgetConfig struct {
	DailyBudget      float64 `yaml:"daily_budget" json:"daily_budget"`
	EmergencyReserve float64 `yaml:"emergency_reserve" json:"emergency_reserve"`
}
