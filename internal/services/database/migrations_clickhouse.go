package database

import (
	"fmt"

	"gorm.io/gorm"
)

func runClickHouseMigrations(db *gorm.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS llm_usage (
			id UInt64,
			customer_id String,
			request_id String,
			provider String,
			model String,
			task_type String,
			tokens_input Int32,
			tokens_output Int32,
			tokens_total Int32,
			cost Float64,
			currency String DEFAULT 'USD',
			created_at DateTime DEFAULT now()
		) ENGINE = MergeTree()
		ORDER BY (customer_id, created_at)`,

		`CREATE INDEX IF NOT EXISTS idx_llm_usage_task_type ON llm_usage (task_type) TYPE minmax GRANULARITY 3`,
		`CREATE INDEX IF NOT EXISTS idx_llm_usage_request_id ON llm_usage (request_id) TYPE minmax GRANULARITY 3`,
	}

	for _, query := range queries {
		if err := db.Exec(query).Error; err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}
