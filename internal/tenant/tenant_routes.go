package tenant

import (
	"github.com/gin-gonic/gin"

	"go-hrms/internal/middleware"
)

// RegisterRoutes mounts the super-admin tenant surface. These routes are
// deliberately outside the tenant guard: they are the one unscoped path.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	tenants := r.Group("/admin/tenants")
	tenants.Use(middleware.AuthMiddleware(), middleware.SuperAdminOnly())
	{
		tenants.POST("", handler.Provision)
		tenants.GET("", handler.List)
		tenants.PUT("/:id/status", handler.UpdateStatus)
	}
}
