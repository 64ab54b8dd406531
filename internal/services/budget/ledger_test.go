package budget

import (
	"context"
	"sync"
	"testing"

	"github.com/Egham-7/llm-router/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(daily, reserve float64) *Ledger {
	return NewLedger(NewMemoryStore(), models.BudgetConfig{
		DailyBudget:      daily,
		EmergencyReserve: reserve,
	})
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()

	t.Run("authorizes within budget", func(t *testing.T) {
		ledger := newTestLedger(15, 5)
		require.NoError(t, ledger.Authorize(ctx, 0.010))

		spend, err := ledger.Spend(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 0.010, spend, 1e-9)
	})

	t.Run("allows drawing on the reserve", func(t *testing.T) {
		ledger := newTestLedger(1, 1)
		require.NoError(t, ledger.Authorize(ctx, 1.5))

		state, err := ledger.State(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.BudgetReserve, state)
	})

	t.Run("refuses past the ceiling", func(t *testing.T) {
		ledger := newTestLedger(1, 1)
		require.NoError(t, ledger.Authorize(ctx, 2.0))

		err := ledger.Authorize(ctx, 0.01)
		require.Error(t, err)
		assert.True(t, models.IsErrorType(err, models.ErrorTypeBudgetExhausted))

		// Refused authorization must not change recorded spend.
		spend, err := ledger.Spend(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, spend, 1e-9)
	})

	t.Run("zero cost is a no-op", func(t *testing.T) {
		ledger := newTestLedger(1, 0)
		require.NoError(t, ledger.Authorize(ctx, 0))
		spend, err := ledger.Spend(ctx)
		require.NoError(t, err)
		assert.Zero(t, spend)
	})
}

func TestAuthorizeConcurrent(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(1, 0)

	// 100 workers each try to reserve 0.05 against a $1 ceiling.
	// Exactly 20 must win.
	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ledger.Authorize(ctx, 0.05); err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, granted)
	spend, err := ledger.Spend(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, spend, 1e-9)
}

func TestSettle(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(15, 5)

	require.NoError(t, ledger.Authorize(ctx, 0.010))

	t.Run("refunds when actual is cheaper", func(t *testing.T) {
		require.NoError(t, ledger.Settle(ctx, 0.010, 0.004))
		spend, err := ledger.Spend(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 0.004, spend, 1e-9)
	})

	t.Run("records overage past the ceiling", func(t *testing.T) {
		require.NoError(t, ledger.Settle(ctx, 0.004, 30.0))
		spend, err := ledger.Spend(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 30.0, spend, 1e-9)

		state, err := ledger.State(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.BudgetExhaustedState, state)
	})
}

func TestStateLadder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		spend float64
		want  models.BudgetState
	}{
		{name: "no spend", spend: 0, want: models.BudgetNormal},
		{name: "below budget", spend: 14.99, want: models.BudgetNormal},
		{name: "at budget boundary", spend: 15.00, want: models.BudgetReserve},
		{name: "inside reserve", spend: 19.99, want: models.BudgetReserve},
		{name: "at ceiling", spend: 20.00, want: models.BudgetExhaustedState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newTestLedger(15, 5)
			if tt.spend > 0 {
				require.NoError(t, ledger.TrackCost(ctx, tt.spend))
			}
			state, err := ledger.State(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
		})
	}
}

func TestTrackCostNeverRefuses(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(1, 0)

	require.NoError(t, ledger.TrackCost(ctx, 5.0))
	spend, err := ledger.Spend(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, spend, 1e-9)
}

func TestUpdateBudget(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(1, 0)
	require.NoError(t, ledger.TrackCost(ctx, 0.9))

	ledger.UpdateBudget(10, 2)

	stats, err := ledger.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10.0, stats.DailyBudget)
	assert.Equal(t, 2.0, stats.EmergencyReserve)
	assert.Equal(t, 12.0, stats.TotalBudget)
	assert.InDelta(t, 0.9, stats.CurrentSpend, 1e-9)
	assert.Equal(t, models.BudgetNormal, stats.State)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(15, 5)
	require.NoError(t, ledger.TrackCost(ctx, 7.5))

	stats, err := ledger.Stats(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, stats.CurrentSpend, 1e-9)
	assert.InDelta(t, 12.5, stats.RemainingBudget, 1e-9)
	assert.InDelta(t, 50.0, stats.UtilizationPercent, 1e-9)
	assert.Equal(t, models.BudgetNormal, stats.State)
}

func TestResetIfNewDay(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(15, 5)
	require.NoError(t, ledger.TrackCost(ctx, 3.0))

	// Same day: nothing changes.
	require.NoError(t, ledger.ResetIfNewDay(ctx))
	spend, err := ledger.Spend(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, spend, 1e-9)

	// Force a rollover by rewinding the remembered day.
	ledger.mu.Lock()
	ledger.lastDay = "2020-01-01"
	ledger.mu.Unlock()
	require.NoError(t, ledger.ResetIfNewDay(ctx))

	// Today's counter is untouched; only the stale day is pruned.
	spend, err = ledger.Spend(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, spend, 1e-9)
}
