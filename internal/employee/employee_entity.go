package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "FullTime"
	EmploymentContract EmploymentType = "Contract"
	EmploymentIntern   EmploymentType = "Intern"
)

type EmployeeStatus string

const (
	StatusActive    EmployeeStatus = "Active"
	StatusProbation EmployeeStatus = "Probation"
	StatusResigned  EmployeeStatus = "Resigned"
)

// Employee is the HR profile, one-to-one with a User.
type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index:idx_employees_tenant"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_user"`

	FullName           string     `gorm:"type:varchar(150);not null"`
	Email              string     `gorm:"type:varchar(255);uniqueIndex:uq_employee_email"`
	ReportingManagerID *uuid.UUID `gorm:"type:uuid"`

	EmploymentType EmploymentType `gorm:"type:varchar(20);not null;default:'FullTime'"`
	EmployeeStatus EmployeeStatus `gorm:"type:varchar(20);not null;default:'Active'"`
	DateOfJoining  time.Time      `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
