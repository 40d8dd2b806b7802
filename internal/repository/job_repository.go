package repository

import (
	"context"
	"fmt"

	"github.com/jobdeck/api/internal/model"
	"github.com/jobdeck/api/internal/moderation"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Update writes the full record back (last writer wins, no version token).
func (r *JobRepository) Update(ctx context.Context, job *model.Job) error {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// Delete removes the row permanently. No tombstone.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&model.Job{}, "id = ?", id)
	if tx.Error != nil {
		return fmt.Errorf("delete job: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Query runs a conditional fetch per the store contract in conditions.go.
func (r *JobRepository) Query(ctx context.Context, q Query) ([]model.Job, error) {
	var jobs []model.Job
	tx := applyQuery(r.db.WithContext(ctx).Model(&model.Job{}), q)
	if err := tx.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	return jobs, nil
}

// ListByStatus returns a page of jobs in the given status, newest first.
func (r *JobRepository) ListByStatus(ctx context.Context, status moderation.Status, limit, offset int) ([]model.Job, error) {
	var jobs []model.Job
	tx := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC")
	if offset > 0 {
		tx = tx.Offset(offset)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) CountByStatus(ctx context.Context, status moderation.Status) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Job{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return total, nil
}
