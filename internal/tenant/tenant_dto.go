package tenant

type ProvisionTenantRequest struct {
	Name           string   `json:"name" binding:"required"`
	MaxEmployees   int      `json:"max_employees" binding:"omitempty,min=1"`
	EnabledModules []string `json:"enabled_modules"`
	Trial          bool     `json:"trial"`
}

type UpdateTenantStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active suspended trial expired"`
}

type TenantResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Status         string   `json:"status"`
	MaxEmployees   int      `json:"max_employees"`
	EnabledModules []string `json:"enabled_modules"`
	CreatedAt      string   `json:"created_at"`
}
