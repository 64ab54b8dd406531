package budget

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Egham-7/llm-router/internal/models"
)

// GormStore keeps the spend counter in the relational database, one row
// per UTC day. Increments use a guarded SQL update so the ceiling check
// and the add happen in one statement.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) AutoMigrate() error {
	return g.db.AutoMigrate(&models.DailySpend{})
}

func (g *GormStore) LoadDailySpend(ctx context.Context, day string) (float64, error) {
	var row models.DailySpend
	err := g.db.WithContext(ctx).Where("day = ?", day).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load daily spend for %s: %w", day, err)
	}
	return row.Spend, nil
}

func (g *GormStore) IncrementDailySpend(ctx context.Context, day string, amount, ceiling float64) (float64, error) {
	// Make sure the day's row exists; DoNothing keeps concurrent
	// inserts from failing on the unique day index.
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day"}},
			DoNothing: true,
		}).
		Create(&models.DailySpend{Day: day, Spend: 0}).Error
	if err != nil {
		return 0, fmt.Errorf("failed to ensure daily spend row for %s: %w", day, err)
	}

	query := g.db.WithContext(ctx).
		Model(&models.DailySpend{}).
		Where("day = ?", day)
	if amount > 0 {
		query = query.Where("spend + ? <= ?", amount, ceiling)
	}

	result := query.Update("spend", gorm.Expr("CASE WHEN spend + ? < 0 THEN 0 ELSE spend + ? END", amount, amount))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to increment daily spend for %s: %w", day, result.Error)
	}

	current, loadErr := g.LoadDailySpend(ctx, day)
	if loadErr != nil {
		return 0, loadErr
	}

	if result.RowsAffected == 0 {
		return current, models.NewBudgetExhaustedError(current, ceiling)
	}
	return current, nil
}

func (g *GormStore) ResetDay(ctx context.Context, day string) error {
	if err := g.db.WithContext(ctx).Where("day = ?", day).Delete(&models.DailySpend{}).Error; err != nil {
		return fmt.Errorf("failed to reset daily spend for %s: %w", day, err)
	}
	return nil
}
