// Package scheduler runs the periodic jobs the router needs, currently
// just the daily budget rollover. Spend naturally resets at UTC
// midnight through day-keyed counters; the scheduler's job is pruning
// the previous day's counter so stores do not accumulate stale keys.
package scheduler

import (
	"context"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/Egham-7/llm-router/internal/services/budget"
)

const defaultInterval = 1 * time.Hour

// BudgetResetScheduler periodically asks the ledger to roll over to a
// new day.
type BudgetResetScheduler struct {
	ledger   *budget.Ledger
	interval time.Duration
	stopChan chan struct{}
}

func NewBudgetResetScheduler(ledger *budget.Ledger, interval time.Duration) *BudgetResetScheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &BudgetResetScheduler{
		ledger:   ledger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start blocks until Stop is called or the context is cancelled. Run it
// on its own goroutine.
func (s *BudgetResetScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	fiberlog.Infof("budget reset scheduler started, checking every %s", s.interval)

	for {
		select {
		case <-ticker.C:
			if err := s.ledger.ResetIfNewDay(ctx); err != nil {
				fiberlog.Errorf("budget reset scheduler: rollover failed: %v", err)
			}
		case <-s.stopChan:
			fiberlog.Info("budget reset scheduler stopped")
			return
		case <-ctx.Done():
			fiberlog.Info("budget reset scheduler stopped, context cancelled")
			return
		}
	}
}

func (s *BudgetResetScheduler) Stop() {
	close(s.stopChan)
}
