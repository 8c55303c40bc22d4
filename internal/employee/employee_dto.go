package employee

type EmployeeResponse struct {
	ID                 string  `json:"id"`
	FullName           string  `json:"full_name"`
	Email              string  `json:"email"`
	ReportingManagerID *string `json:"reporting_manager_id,omitempty"`
	EmploymentType     string  `json:"employment_type"`
	EmployeeStatus     string  `json:"employee_status"`
	DateOfJoining      string  `json:"date_of_joining"`
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID.String(),
		FullName:       e.FullName,
		Email:          e.Email,
		EmploymentType: string(e.EmploymentType),
		EmployeeStatus: string(e.EmployeeStatus),
		DateOfJoining:  e.DateOfJoining.Format("2006-01-02"),
	}
	if e.ReportingManagerID != nil {
		v := e.ReportingManagerID.String()
		resp.ReportingManagerID = &v
	}
	return resp
}
