package events

import "time"

const LeaveWorkflowTopic = "hr.leave.workflow.v1"

const (
	LeaveRequested = "leave.requested"
	LeaveApproved  = "leave.approved"
	LeaveRejected  = "leave.rejected"
	LeaveRoutedHR  = "leave.routed_hr" // moved from manager queue to HR queue
)

type LeaveWorkflowEvent struct {
	EventType      string    `json:"event_type"`
	TenantID       string    `json:"tenant_id"`
	LeaveID        string    `json:"leave_id"`
	EmployeeID     string    `json:"employee_id"`
	ActorID        string    `json:"actor_id,omitempty"`
	LeaveType      string    `json:"leave_type"`
	WorkflowStatus string    `json:"workflow_status"`
	TotalDays      float64   `json:"total_days"`
	Recipients     []string  `json:"recipients,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
