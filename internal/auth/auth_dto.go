package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
	User        UserInfo `json:"user"`
}

type UserInfo struct {
	ID             string   `json:"id"`
	TenantID       string   `json:"tenant_id,omitempty"`
	Email          string   `json:"email"`
	FullName       string   `json:"full_name"`
	Roles          []string `json:"roles"`
	Permissions    []string `json:"permissions"`
	IsSuperAdmin   bool     `json:"is_super_admin"`
	IsCompanyAdmin bool     `json:"is_company_admin"`
}
