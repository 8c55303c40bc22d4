package leave

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"
	"go-hrms/internal/tenant"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	tenantService tenant.Service,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leave")
	leaves.Use(middleware.AuthMiddleware(), tenant.Guard(tenantService), rbac.RequireModule(rbacService, "leave"))
	{
		leaves.POST("/apply", middleware.RequirePermission("leave:apply"), middleware.Idempotency(rdb), handler.Apply)
		leaves.GET("/my-leaves", middleware.RequirePermission("leave:read"), handler.MyLeaves)
		leaves.GET("/stats", middleware.RequirePermission("leave:read"), handler.Stats)
		leaves.GET("/active", middleware.RequirePermission("leave:read"), handler.ActiveToday)
		leaves.GET("/pending-approvals", middleware.RequirePermission("leave:approve"), handler.PendingApprovals)
		leaves.PUT("/:id/approve", middleware.RequirePermission("leave:approve"), handler.Approve)
		leaves.PUT("/:id/reject", middleware.RequirePermission("leave:approve"), handler.Reject)
	}
}
