package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "Active"
	StatusDisabled = "Disabled"
)

// User is the authentication identity. Role references live in user_roles;
// the effective role name set is resolved by the rbac repository.
type User struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID *uuid.UUID `gorm:"type:uuid;index"` // nil for super admins
	Email    string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email"`
	Password string     `gorm:"type:varchar(255);not null"`
	FullName string     `gorm:"type:varchar(150)"`

	IsSuperAdmin   bool   `gorm:"not null;default:false"`
	IsCompanyAdmin bool   `gorm:"not null;default:false"`
	Status         string `gorm:"type:varchar(20);not null;default:'Active'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
