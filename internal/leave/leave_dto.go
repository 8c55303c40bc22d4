package leave

import "time"

type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	IsHalfDay bool   `json:"is_half_day"`
}

// DecisionRequest carries the optional approver note for both approve
// and reject calls.
type DecisionRequest struct {
	Comments string `json:"comments"`
}

type ApprovalResponse struct {
	ID         string `json:"id"`
	ApproverID string `json:"approver_id"`
	ActedAs    string `json:"acted_as"`
	Action     string `json:"action"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	Comment    string `json:"comment,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type LeaveResponse struct {
	ID             string             `json:"id"`
	EmployeeID     string             `json:"employee_id"`
	LeaveType      string             `json:"leave_type"`
	StartDate      string             `json:"start_date"`
	EndDate        string             `json:"end_date"`
	IsHalfDay      bool               `json:"is_half_day"`
	TotalDays      float64            `json:"total_days"`
	Reason         string             `json:"reason"`
	Status         string             `json:"status"`
	WorkflowStatus string             `json:"workflow_status"`
	Approvals      []ApprovalResponse `json:"approvals,omitempty"`
	CreatedAt      string             `json:"created_at"`
}

type LeaveBalance struct {
	LeaveType string  `json:"leave_type"`
	Allocated float64 `json:"allocated"`
	Used      float64 `json:"used"`
	Available float64 `json:"available"`
}

type LeaveStatsResponse struct {
	Year     int            `json:"year"`
	Balances []LeaveBalance `json:"balances"`
}

func mapToResponse(l *LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:             l.ID.String(),
		EmployeeID:     l.EmployeeID.String(),
		LeaveType:      string(l.LeaveType),
		StartDate:      l.StartDate.Format(time.DateOnly),
		EndDate:        l.EndDate.Format(time.DateOnly),
		IsHalfDay:      l.IsHalfDay,
		TotalDays:      l.TotalDays,
		Reason:         l.Reason,
		Status:         string(l.Status),
		WorkflowStatus: string(l.WorkflowStatus),
		CreatedAt:      l.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, a := range l.Approvals {
		resp.Approvals = append(resp.Approvals, ApprovalResponse{
			ID:         a.ID.String(),
			ApproverID: a.ApproverID.String(),
			ActedAs:    a.ActedAs,
			Action:     a.Action,
			FromStatus: string(a.FromStatus),
			ToStatus:   string(a.ToStatus),
			Comment:    a.Comment,
			CreatedAt:  a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp
}

func mapToResponses(list []LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(list))
	for i := range list {
		out = append(out, mapToResponse(&list[i]))
	}
	return out
}
