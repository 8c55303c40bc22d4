package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"
)

// RequirePermission allows the request through when the principal holds at
// least one of the required permission strings (OR semantics). A failed
// check is an ordinary authorization denial, never a server fault.
func RequirePermission(required ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := contextutil.GetPrincipal(c.Request.Context())
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		if !principal.HasAnyPermission(required...) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource", required)
			c.Abort()
			return
		}
		c.Next()
	}
}
