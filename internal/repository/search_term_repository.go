package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jobdeck/api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SearchTermRepository struct {
	db *gorm.DB
}

func NewSearchTermRepository(db *gorm.DB) *SearchTermRepository {
	return &SearchTermRepository{db}
}

// Add folds a counter delta into the term's row, creating it on first sight.
func (r *SearchTermRepository) Add(ctx context.Context, term string, delta int64) error {
	if term == "" || delta == 0 {
		return nil
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "term"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count":      gorm.Expr("count + ?", delta),
			"updated_at": time.Now(),
		}),
	}).Create(&model.SearchTerm{Term: term, Count: delta, UpdatedAt: time.Now()})
	if tx.Error != nil {
		return fmt.Errorf("add search term: %w", tx.Error)
	}
	return nil
}

func (r *SearchTermRepository) Top(ctx context.Context, limit int) ([]model.SearchTerm, error) {
	var terms []model.SearchTerm
	if limit <= 0 {
		limit = 20
	}
	if err := r.db.WithContext(ctx).Order("count DESC").Limit(limit).Find(&terms).Error; err != nil {
		return nil, fmt.Errorf("top search terms: %w", err)
	}
	return terms, nil
}

