package rbac

type RoleResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	AccessibleModules []string `json:"accessible_modules"`
	Permissions       []string `json:"permissions"`
}

type PermissionResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

type UpdateRolePermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}
