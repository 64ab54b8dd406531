package preferences

import (
	"context"
	"testing"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	svc := NewService(db)
	require.NoError(t, svc.AutoMigrate())
	return svc
}

func TestPreferencesForMissingCustomerReturnsDefaults(t *testing.T) {
	svc := newTestService(t)

	pref, err := svc.PreferencesFor(context.Background(), "cust-1")
	require.NoError(t, err)

	assert.Nil(t, pref.SelectedModelID)
	assert.False(t, pref.UseOwnKey)
	assert.False(t, pref.UseCustomEndpoint)
	assert.InDelta(t, 0.7, pref.Temperature, 1e-9)
	assert.Equal(t, 1000, pref.MaxTokens)
	assert.Equal(t, models.PlanStandard, pref.PlanTier)
}

func TestPreferencesForStoredRow(t *testing.T) {
	svc := newTestService(t)

	selected := "mistralai/mistral-large"
	stored := &models.CustomerLLMPreference{
		CustomerID:      "cust-2",
		SelectedModelID: &selected,
		UseOwnKey:       true,
		EncryptedAPIKey: "ciphertext",
		Temperature:     0.3,
		MaxTokens:       500,
		PlanTier:        models.PlanPremium,
	}
	require.NoError(t, svc.db.Create(stored).Error)

	pref, err := svc.PreferencesFor(context.Background(), "cust-2")
	require.NoError(t, err)
	require.NotNil(t, pref.SelectedModelID)
	assert.Equal(t, selected, *pref.SelectedModelID)
	assert.True(t, pref.UseOwnKey)
	assert.Equal(t, 500, pref.MaxTokens)
}

func TestPreferencesForEmptyID(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.PreferencesFor(context.Background(), "")
	require.Error(t, err)
}

func TestRouteForPrecedence(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name string
		pref models.CustomerLLMPreference
		want models.CallRoute
	}{
		{
			name: "custom endpoint beats byok",
			pref: models.CustomerLLMPreference{UseCustomEndpoint: true, UseOwnKey: true},
			want: models.RouteCustomEndpoint,
		},
		{
			name: "byok beats platform key",
			pref: models.CustomerLLMPreference{UseOwnKey: true},
			want: models.RouteCustomerKey,
		},
		{
			name: "platform key is the default",
			pref: models.CustomerLLMPreference{},
			want: models.RoutePlatformKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.RouteFor(&tt.pref))
		})
	}
}
