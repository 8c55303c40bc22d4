package rbac

import (
	"github.com/gin-gonic/gin"

	"go-hrms/internal/middleware"
	"go-hrms/internal/tenant"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, tenantService tenant.Service) {
	roles := r.Group("/roles")
	roles.Use(
		middleware.AuthMiddleware(),
		tenant.Guard(tenantService),
		middleware.RequirePermission("role:manage"),
	)
	{
		roles.GET("", handler.ListRoles)
		roles.GET("/permissions", handler.ListPermissions)
		roles.PUT("/:id/permissions", handler.UpdateRolePermissions)
	}
}
