package identity

// RoleKind is the closed set of role names seeded at tenant provisioning.
// Workflow routing switches on these; unknown names are treated as plain
// employees by the callers that care.
type RoleKind string

const (
	RoleAdmin          RoleKind = "Admin"
	RoleHR             RoleKind = "HR"
	RoleProjectManager RoleKind = "Project Manager"
	RoleEmployee       RoleKind = "Employee"
	RoleIntern         RoleKind = "Intern"
	RoleConsultant     RoleKind = "Consultant"
	RoleAccountant     RoleKind = "Accountant"
)

// AllRoleKinds lists the fixed seed set, in provisioning order.
func AllRoleKinds() []RoleKind {
	return []RoleKind{
		RoleAdmin,
		RoleHR,
		RoleProjectManager,
		RoleEmployee,
		RoleIntern,
		RoleConsultant,
		RoleAccountant,
	}
}

// ParseRoleKind maps a stored role name onto the closed enum.
// Comparison is exact; tenant role names come from the seed list.
func ParseRoleKind(name string) (RoleKind, bool) {
	switch RoleKind(name) {
	case RoleAdmin, RoleHR, RoleProjectManager, RoleEmployee, RoleIntern, RoleConsultant, RoleAccountant:
		return RoleKind(name), true
	default:
		return "", false
	}
}
