package rbac

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"
	"go-hrms/internal/tenant"
)

// RequireModule gates a route group on coarse module visibility: the
// tenant's plan must enable the module and at least one of the caller's
// roles must list it as accessible. This check is independent of the
// fine-grained permission strings.
func RequireModule(service Service, module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		principal, ok := contextutil.GetPrincipal(ctx)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		t, ok := tenant.FromContext(ctx)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context", nil)
			c.Abort()
			return
		}

		if !t.ModuleEnabled(module) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"This module is not enabled for your plan", module)
			c.Abort()
			return
		}

		allowed, err := service.HasModuleAccess(ctx, principal.TenantID, principal.Roles, module)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "module access check failed", nil)
			c.Abort()
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"Your role does not have access to this module", module)
			c.Abort()
			return
		}

		c.Next()
	}
}
