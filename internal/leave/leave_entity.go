package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Type string

const (
	TypeCasual   Type = "Casual"
	TypeSick     Type = "Sick"
	TypeFloating Type = "Floating"
	TypePaid     Type = "Paid"
	TypeUnpaid   Type = "Unpaid"
)

// ParseType maps a request payload value onto the closed leave type set.
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeCasual, TypeSick, TypeFloating, TypePaid, TypeUnpaid:
		return Type(s), true
	default:
		return "", false
	}
}

// Status is the externally visible outcome, as opposed to WorkflowStatus
// which tracks internal routing. Status only reaches Approved once the
// workflow does; Cancelled survives on legacy rows and is terminal.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

type WorkflowStatus string

const (
	WorkflowPendingPM WorkflowStatus = "Pending PM"
	WorkflowPendingHR WorkflowStatus = "Pending HR"
	// WorkflowPendingApproval is the legacy HR-queue label still present on
	// rows written before the two-step workflow. Read paths treat it as
	// Pending HR; nothing writes it anymore.
	WorkflowPendingApproval WorkflowStatus = "Pending Approval"
	WorkflowApproved        WorkflowStatus = "Approved"
	WorkflowRejected        WorkflowStatus = "Rejected"
)

// Terminal reports whether no further decision can change this status.
func (s WorkflowStatus) Terminal() bool {
	return s == WorkflowApproved || s == WorkflowRejected
}

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_tenant_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	LeaveType Type      `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	IsHalfDay bool      `gorm:"not null;default:false"`
	TotalDays float64   `gorm:"type:numeric(5,1);not null"`
	Reason    string    `gorm:"type:text;not null"`

	Status         Status         `gorm:"type:varchar(20);not null;default:'Pending'"`
	WorkflowStatus WorkflowStatus `gorm:"type:varchar(20);not null;index:idx_leave_requests_tenant_status"`

	Approvals []Approval `gorm:"foreignKey:LeaveRequestID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Approval is one row of the append-only decision trail. Rows are never
// updated or deleted; the full history of a request is the ordered set
// of its approvals.
type Approval struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID       uuid.UUID `gorm:"type:uuid;not null"`
	LeaveRequestID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_approvals_request"`
	ApproverID     uuid.UUID `gorm:"type:uuid;not null"`

	ActedAs    string         `gorm:"type:varchar(30);not null"` // role the approver acted under
	Action     string         `gorm:"type:varchar(10);not null"`
	FromStatus WorkflowStatus `gorm:"type:varchar(20);not null"`
	ToStatus   WorkflowStatus `gorm:"type:varchar(20);not null"`
	Comment    string         `gorm:"type:text"`

	CreatedAt time.Time
}

func (Approval) TableName() string {
	return "leave_approvals"
}
