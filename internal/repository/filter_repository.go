package repository

import (
	"context"
	"fmt"

	"github.com/jobdeck/api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FilterRepository struct {
	db *gorm.DB
}

func NewFilterRepository(db *gorm.DB) *FilterRepository {
	return &FilterRepository{db}
}

// UpsertCategory writes the category, silently overwriting an existing id.
func (r *FilterRepository) UpsertCategory(ctx context.Context, category *model.FilterCategory) error {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "multi_select", "updated_at"}),
	}).Create(category)
	if tx.Error != nil {
		return fmt.Errorf("upsert filter category: %w", tx.Error)
	}
	return nil
}

// UpsertValue writes the value, silently overwriting an existing id.
func (r *FilterRepository) UpsertValue(ctx context.Context, value *model.FilterValue) error {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"category_id", "label", "updated_at"}),
	}).Create(value)
	if tx.Error != nil {
		return fmt.Errorf("upsert filter value: %w", tx.Error)
	}
	return nil
}

func (r *FilterRepository) ListCategories(ctx context.Context) ([]model.FilterCategory, error) {
	var categories []model.FilterCategory
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list filter categories: %w", err)
	}
	return categories, nil
}

func (r *FilterRepository) ListValues(ctx context.Context, categoryID string) ([]model.FilterValue, error) {
	var values []model.FilterValue
	tx := r.db.WithContext(ctx).Order("id ASC")
	if categoryID != "" {
		tx = tx.Where("category_id = ?", categoryID)
	}
	if err := tx.Find(&values).Error; err != nil {
		return nil, fmt.Errorf("list filter values: %w", err)
	}
	return values, nil
}

// DeleteCategory removes the category and cascades to its values.
func (r *FilterRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.FilterCategory{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete filter category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Delete(&model.FilterValue{}, "category_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete filter values: %w", err)
		}
		return nil
	})
}

func (r *FilterRepository) DeleteValue(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&model.FilterValue{}, "id = ?", id)
	if tx.Error != nil {
		return fmt.Errorf("delete filter value: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementUsage bumps the usage counter for one value. Missing ids are a
// no-op, not an error — counters are best-effort analytics.
func (r *FilterRepository) IncrementUsage(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Model(&model.FilterValue{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if tx.Error != nil {
		return fmt.Errorf("increment filter usage: %w", tx.Error)
	}
	return nil
}
