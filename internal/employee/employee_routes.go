package employee

import (
	"github.com/gin-gonic/gin"

	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"
	"go-hrms/internal/tenant"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	tenantService tenant.Service,
	rbacService rbac.Service,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(), tenant.Guard(tenantService))
	{
		employees.GET("/me", handler.Me)
		employees.GET("",
			rbac.RequireModule(rbacService, "employee"),
			middleware.RequirePermission("employee:read", "employee:manage"),
			handler.List,
		)
	}
}
