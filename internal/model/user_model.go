package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles carried on the users table. Authorization reads this column, never a
// configured email.
const (
	RoleMember     = "member"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Role      string    `gorm:"type:varchar(20)" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) TableName() string {
	return "users"
}

func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
