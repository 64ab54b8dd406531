// Package preferences loads per-customer routing policy and resolves which
// call path a request takes. Routing precedence is a hard contract:
// custom endpoint > bring-your-own key > platform key. A configured custom
// endpoint never falls through to the platform key, even on failure.
package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/Egham-7/llm-router/internal/models"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) AutoMigrate() error {
	return s.db.AutoMigrate(&models.CustomerLLMPreference{})
}

// PreferencesFor fetches the stored preference for a customer, returning safe
// defaults when no row exists. No row is created here; creation belongs to
// the settings update path.
func (s *Service) PreferencesFor(ctx context.Context, customerID string) (*models.CustomerLLMPreference, error) {
	if customerID == "" {
		return nil, models.NewValidationError("customer id must not be empty", nil)
	}

	var pref models.CustomerLLMPreference
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fiberlog.Debugf("preferences: no stored preference for customer %s, using defaults", customerID)
			return models.DefaultPreference(customerID), nil
		}
		return nil, fmt.Errorf("failed to load preference for customer %s: %w", customerID, err)
	}

	return &pref, nil
}

// RouteFor resolves the call path for a preference. Strictly ordered.
func (s *Service) RouteFor(pref *models.CustomerLLMPreference) models.CallRoute {
	switch {
	case pref.UseCustomEndpoint:
		return models.RouteCustomEndpoint
	case pref.UseOwnKey:
		return models.RouteCustomerKey
	default:
		return models.RoutePlatformKey
	}
}
