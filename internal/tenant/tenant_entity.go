package tenant

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusTrial     = "trial"
	StatusExpired   = "expired"
)

// Tenant is the isolation boundary. Every business entity carries the
// tenant id; only the super-admin route set queries across tenants.
type Tenant struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name   string    `gorm:"type:varchar(150);not null"`
	Status string    `gorm:"type:varchar(20);not null;default:'trial';index"`

	// Plan limits
	MaxEmployees   int      `gorm:"type:int;not null;default:50"`
	EnabledModules []string `gorm:"serializer:json;type:jsonb"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// ModuleEnabled reports whether the tenant's plan includes a module.
func (t *Tenant) ModuleEnabled(module string) bool {
	for _, m := range t.EnabledModules {
		if m == module {
			return true
		}
	}
	return false
}

// WithinEmployeeLimit is the plan ceiling comparison used before adding
// headcount-bearing records.
func (t *Tenant) WithinEmployeeLimit(current int64) bool {
	return current < int64(t.MaxEmployees)
}
