package identity

// Principal is the capability context of an authenticated request. All
// fields are embedded in the access token at login and treated as already
// verified once the signature and expiry check out.
type Principal struct {
	UserID         string
	TenantID       string
	Roles          []string
	Permissions    []string
	IsSuperAdmin   bool
	IsCompanyAdmin bool
}

// HasAnyPermission reports whether the principal holds at least one of the
// required "module:action" permission strings (OR semantics). It never
// errors; an empty requirement set is a denial.
func (p Principal) HasAnyPermission(required ...string) bool {
	for _, want := range required {
		for _, have := range p.Permissions {
			if have == want {
				return true
			}
		}
	}
	return false
}

// RoleKinds returns the principal's effective role set mapped onto the
// closed enum, dropping names outside the seed list.
func (p Principal) RoleKinds() []RoleKind {
	kinds := make([]RoleKind, 0, len(p.Roles))
	for _, name := range p.Roles {
		if kind, ok := ParseRoleKind(name); ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func (p Principal) HasRole(kind RoleKind) bool {
	for _, name := range p.Roles {
		if RoleKind(name) == kind {
			return true
		}
	}
	return false
}

// IsApproverHR reports whether the principal acts with HR authority.
// Admin carries the same authority in every approval table.
func (p Principal) IsApproverHR() bool {
	return p.HasRole(RoleHR) || p.HasRole(RoleAdmin)
}

func (p Principal) IsApproverPM() bool {
	return p.HasRole(RoleProjectManager)
}
