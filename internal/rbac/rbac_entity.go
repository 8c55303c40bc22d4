package rbac

import (
	"time"

	"github.com/google/uuid"
)

// Role is a tenant-scoped bundle of permissions plus the coarse module
// visibility flags. (tenant_id, name) is unique.
type Role struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_role_tenant_name"`
	Name              string    `gorm:"type:varchar(80);not null;uniqueIndex:uq_role_tenant_name"`
	Description       string    `gorm:"type:text"`
	AccessibleModules []string  `gorm:"serializer:json;type:jsonb"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Role) TableName() string {
	return "roles"
}

// Permission is immutable reference data: a "module:action" capability.
type Permission struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code     string    `gorm:"type:varchar(80);not null;uniqueIndex"`
	Label    string    `gorm:"type:varchar(120)"`
	Category string    `gorm:"type:varchar(40);index"`
}

func (Permission) TableName() string {
	return "permissions"
}

type RolePermission struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

type UserRole struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
