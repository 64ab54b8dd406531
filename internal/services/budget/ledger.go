// Package budget enforces the per-day spend ceiling for AI calls.
// The ledger is injected wherever spend decisions are made; no global
// state survives a restart because every counter lives in the Store.
package budget

import (
	"context"
	"math"
	"sync"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/Egham-7/llm-router/internal/models"
)

const (
	defaultDailyBudget      = 15.00
	defaultEmergencyReserve = 5.00

	// Warn once spend crosses this fraction of the daily budget.
	warnUtilization = 0.8
)

// Ledger tracks spend against a daily budget plus an emergency reserve.
// Days roll over at UTC midnight.
type Ledger struct {
	store Store

	mu      sync.RWMutex
	daily   float64
	reserve float64
	lastDay string
}

func NewLedger(store Store, cfg models.BudgetConfig) *Ledger {
	daily := cfg.DailyBudget
	if daily <= 0 {
		daily = defaultDailyBudget
	}
	reserve := cfg.EmergencyReserve
	if reserve < 0 {
		reserve = defaultEmergencyReserve
	}
	return &Ledger{
		store:   store,
		daily:   daily,
		reserve: reserve,
		lastDay: currentDay(),
	}
}

func currentDay() string {
	return time.Now().UTC().Format("2006-01-02")
}

func (l *Ledger) limits() (daily, reserve float64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.daily, l.reserve
}

// UpdateBudget changes the ceilings at runtime. Spend already recorded
// for the day is kept.
func (l *Ledger) UpdateBudget(daily, reserve float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if daily > 0 {
		l.daily = daily
	}
	if reserve >= 0 {
		l.reserve = reserve
	}
	fiberlog.Infof("budget: ceilings updated to daily=$%.2f reserve=$%.2f", l.daily, l.reserve)
}

// Spend returns the recorded spend for the current UTC day.
func (l *Ledger) Spend(ctx context.Context) (float64, error) {
	return l.store.LoadDailySpend(ctx, currentDay())
}

// Remaining returns how much of the daily budget plus reserve is left.
func (l *Ledger) Remaining(ctx context.Context) (float64, error) {
	spend, err := l.Spend(ctx)
	if err != nil {
		return 0, err
	}
	daily, reserve := l.limits()
	remaining := daily + reserve - spend
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// State returns the ladder position for the current day's spend.
func (l *Ledger) State(ctx context.Context) (models.BudgetState, error) {
	spend, err := l.Spend(ctx)
	if err != nil {
		return models.BudgetNormal, err
	}
	daily, reserve := l.limits()
	switch {
	case spend >= daily+reserve:
		return models.BudgetExhaustedState, nil
	case spend >= daily:
		return models.BudgetReserve, nil
	default:
		return models.BudgetNormal, nil
	}
}

// Authorize reserves estimatedCost against the day's ceiling in a
// single atomic step. A budget_exhausted error means the caller must
// degrade to template-only output. Entering the emergency reserve is
// allowed but logged.
func (l *Ledger) Authorize(ctx context.Context, estimatedCost float64) error {
	if estimatedCost <= 0 {
		return nil
	}
	daily, reserve := l.limits()
	total, err := l.store.IncrementDailySpend(ctx, currentDay(), estimatedCost, daily+reserve)
	if err != nil {
		if models.IsErrorType(err, models.ErrorTypeBudgetExhausted) {
			fiberlog.Warnf("budget: authorization refused, spend $%.4f against ceiling $%.2f", total, daily+reserve)
		}
		return err
	}
	if total >= daily {
		fiberlog.Warnf("budget: daily budget exceeded, drawing on emergency reserve ($%.4f/$%.2f)", total, daily+reserve)
	}
	return nil
}

// Settle corrects an authorization once actual usage is known. The
// delta may push spend past the ceiling; real cost is never discarded.
func (l *Ledger) Settle(ctx context.Context, estimatedCost, actualCost float64) error {
	delta := actualCost - estimatedCost
	if delta == 0 {
		return nil
	}
	_, err := l.store.IncrementDailySpend(ctx, currentDay(), delta, math.MaxFloat64)
	return err
}

// TrackCost records spend that bypassed authorization, such as direct
// chat calls. It never refuses; it only warns near the limit.
func (l *Ledger) TrackCost(ctx context.Context, cost float64) error {
	if cost <= 0 {
		return nil
	}
	total, err := l.store.IncrementDailySpend(ctx, currentDay(), cost, math.MaxFloat64)
	if err != nil {
		return err
	}
	daily, _ := l.limits()
	fiberlog.Debugf("budget: cost tracked $%.4f, daily total $%.4f/$%.2f", cost, total, daily)
	if total > daily*warnUtilization {
		fiberlog.Warnf("budget: approaching daily budget limit: %.1f%%", total/daily*100)
	}
	return nil
}

// ResetIfNewDay prunes the previous day's counter after a UTC day
// rollover. The scheduler calls this periodically; missing a call is
// harmless because counters are keyed by day.
func (l *Ledger) ResetIfNewDay(ctx context.Context) error {
	today := currentDay()

	l.mu.Lock()
	previous := l.lastDay
	if previous == today {
		l.mu.Unlock()
		return nil
	}
	l.lastDay = today
	l.mu.Unlock()

	fiberlog.Infof("budget: day rolled over from %s to %s, resetting ledger", previous, today)
	return l.store.ResetDay(ctx, previous)
}

// Stats returns a monitoring snapshot for the current day.
func (l *Ledger) Stats(ctx context.Context) (models.BudgetStats, error) {
	spend, err := l.Spend(ctx)
	if err != nil {
		return models.BudgetStats{}, err
	}
	daily, reserve := l.limits()

	remaining := daily + reserve - spend
	if remaining < 0 {
		remaining = 0
	}
	state := models.BudgetNormal
	switch {
	case spend >= daily+reserve:
		state = models.BudgetExhaustedState
	case spend >= daily:
		state = models.BudgetReserve
	}

	return models.BudgetStats{
		DailyBudget:        daily,
		CurrentSpend:       spend,
		RemainingBudget:    remaining,
		EmergencyReserve:   reserve,
		TotalBudget:        daily + reserve,
		UtilizationPercent: spend / daily * 100,
		State:              state,
	}, nil
}
