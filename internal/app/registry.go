package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-hrms/internal/auth"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/notification"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/tenant"
	"go-hrms/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	tenantRepo := tenant.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	roleSeeder := rbac.NewSeeder(rbacRepo)

	// --- Services ---
	tenantService := tenant.NewService(db, tenantRepo, roleSeeder)
	authService := auth.NewService(userRepo, rbacService)
	dispatcher := notification.NewOutboxDispatcher(outboxRepo)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, userRepo, rbacRepo, dispatcher, rdb)

	// --- Handlers ---
	tenantHandler := tenant.NewHandler(tenantService)
	authHandler := auth.NewHandler(authService)
	rbacHandler := rbac.NewHandler(rbacRepo)
	employeeHandler := employee.NewHandler(employeeRepo)
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		tenant.RegisterRoutes(api, tenantHandler)
		rbac.RegisterRoutes(api, rbacHandler, tenantService)
		employee.RegisterRoutes(api, employeeHandler, tenantService, rbacService)
		leave.RegisterRoutes(api, leaveHandler, tenantService, rbacService, rdb)
	}

	return nil
}
