package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/jobdeck/api/internal/model"
	"github.com/jobdeck/api/internal/repository"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

// ErrInvalidToken signals a missing or rejected bearer credential.
var ErrInvalidToken = errors.New("invalid bearer token")

// Capability names an action the authorization layer can grant. Decisions
// read the role column on the users table — no configured email is ever
// consulted at check time.
type Capability string

const (
	CapPostJobs    Capability = "post_jobs"    // create/edit own postings
	CapModerate    Capability = "moderate"     // approve/reject pending jobs
	CapManageUsers Capability = "manage_users" // create/list/delete users
	CapAutoPublish Capability = "auto_publish" // postings go live without review
)

// AuthUser is the verified identity attached to a request.
type AuthUser struct {
	UID   string
	Email string
	Name  string
	Role  string
}

func (u *AuthUser) Can(cap Capability) bool {
	if u == nil {
		return false
	}
	switch cap {
	case CapPostJobs:
		// any verified identity may post
		return true
	case CapModerate, CapManageUsers, CapAutoPublish:
		return u.Role == model.RoleSuperAdmin
	}
	return false
}

// AuthVerifier resolves a bearer token to an identity.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (*AuthUser, error)
}

// AuthService verifies tokens against the hosted auth provider's userinfo
// endpoint and resolves the role from the users table.
type AuthService struct {
	client *resty.Client
	users  *repository.UserRepository
}

func NewAuthService(providerURL string, users *repository.UserRepository) *AuthService {
	return &AuthService{
		client: resty.New().SetBaseURL(providerURL),
		users:  users,
	}
}

func (s *AuthService) Verify(ctx context.Context, token string) (*AuthUser, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		Get("/userinfo")
	if err != nil {
		return nil, fmt.Errorf("auth provider request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, ErrInvalidToken
	}

	body := resp.String()
	uid := gjson.Get(body, "sub").String()
	if uid == "" {
		uid = gjson.Get(body, "uid").String()
	}
	email := gjson.Get(body, "email").String()
	if email == "" {
		return nil, ErrInvalidToken
	}

	user := &AuthUser{
		UID:   uid,
		Email: email,
		Name:  gjson.Get(body, "name").String(),
		Role:  model.RoleMember,
	}
	record, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		user.Role = record.Role
	case errors.Is(err, gorm.ErrRecordNotFound):
		// authenticated but unknown to us — plain member
	default:
		return nil, fmt.Errorf("resolve user role: %w", err)
	}
	return user, nil
}
