package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jobdeck/api/internal/dto"
	"github.com/jobdeck/api/internal/model"
	"github.com/jobdeck/api/internal/repository"
	"github.com/jobdeck/api/internal/service"
	"github.com/jobdeck/api/internal/util"
)

type UserUsecase struct {
	users *repository.UserRepository
}

func NewUserUsecase(users *repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (uc *UserUsecase) Create(ctx context.Context, in dto.UserInput, actor *service.AuthUser) (*model.User, error) {
	if !actor.Can(service.CapManageUsers) {
		return nil, ErrForbidden
	}
	fieldErrors := map[string]string{}
	if strings.TrimSpace(in.Email) == "" {
		fieldErrors["email"] = "required"
	}
	role := in.Role
	if role == "" {
		role = model.RoleMember
	}
	if !model.ValidRole(role) {
		fieldErrors["role"] = "must be one of member, admin, superadmin"
	}
	if len(fieldErrors) > 0 {
		return nil, util.NewFormError("invalid user", fieldErrors)
	}
	user := &model.User{
		ID:    uuid.New(),
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
		Name:  in.Name,
		Role:  role,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUsecase) List(ctx context.Context, actor *service.AuthUser) ([]model.User, error) {
	if !actor.Can(service.CapManageUsers) {
		return nil, ErrForbidden
	}
	return uc.users.List(ctx)
}

func (uc *UserUsecase) Delete(ctx context.Context, id string, actor *service.AuthUser) error {
	if !actor.Can(service.CapManageUsers) {
		return ErrForbidden
	}
	return uc.users.Delete(ctx, id)
}

// EnsureSuperAdmin seeds the first super-admin row at boot so a fresh
// deployment has a moderator. Authorization never reads the email directly —
// only the role column this seeds.
func (uc *UserUsecase) EnsureSuperAdmin(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}
	user := &model.User{
		ID:    uuid.New(),
		Email: email,
		Role:  model.RoleSuperAdmin,
	}
	if err := uc.users.FirstOrCreate(ctx, user); err != nil {
		return err
	}
	log.Printf("super-admin seeded: %s", email)
	return nil
}
