package repository

import (
	"context"
	"fmt"

	"github.com/jobdeck/api/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if tx.Error != nil {
		return fmt.Errorf("delete user: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FirstOrCreate seeds a user if the email is not present yet; existing rows
// are left untouched.
func (r *UserRepository) FirstOrCreate(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Where("email = ?", user.Email).FirstOrCreate(user).Error; err != nil {
		return fmt.Errorf("first or create user: %w", err)
	}
	return nil
}
