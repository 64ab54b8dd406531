package budget

import (
	"context"
	"sync"

	"github.com/Egham-7/llm-router/internal/models"
)

// Store persists the per-day spend counter. Implementations must make
// IncrementDailySpend a single atomic check-and-increment so concurrent
// batch workers cannot race past the ceiling.
type Store interface {
	// LoadDailySpend returns the recorded spend for a day, zero when
	// the day has no row yet.
	LoadDailySpend(ctx context.Context, day string) (float64, error)

	// IncrementDailySpend atomically adds amount to the day's spend,
	// refusing the increment with a budget_exhausted error when the new
	// total would exceed ceiling. It returns the total after the call.
	// Negative amounts (settlement refunds) always succeed.
	IncrementDailySpend(ctx context.Context, day string, amount, ceiling float64) (float64, error)

	// ResetDay removes a day's counter.
	ResetDay(ctx context.Context, day string) error
}

// MemoryStore is a mutex-guarded in-process store for tests and
// single-node development setups.
type MemoryStore struct {
	mu    sync.Mutex
	spend map[string]float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{spend: make(map[string]float64)}
}

func (m *MemoryStore) LoadDailySpend(_ context.Context, day string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.spend[day], nil
}

func (m *MemoryStore) IncrementDailySpend(_ context.Context, day string, amount, ceiling float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.spend[day]
	next := current + amount
	if amount > 0 && next > ceiling {
		return current, models.NewBudgetExhaustedError(current, ceiling)
	}
	if next < 0 {
		next = 0
	}
	m.spend[day] = next
	return next, nil
}

func (m *MemoryStore) ResetDay(_ context.Context, day string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.spend, day)
	return nil
}
