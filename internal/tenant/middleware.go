package tenant

import (
	"context"

	"github.com/gin-gonic/gin"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"
	tenanterrors "go-hrms/internal/tenant/errors"
)

type contextKey string

const tenantContextKey contextKey = "tenant"

func NewContext(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey, t)
}

func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(tenantContextKey).(*Tenant)
	return t, ok
}

// Guard resolves the principal's tenant and attaches it (with plan limits)
// to the request context. Super-admin principals are rejected here: their
// route set is disjoint and unscoped.
func Guard(service Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := contextutil.GetPrincipal(c.Request.Context())
		if !ok {
			response.Error(c, apperror.ErrUnauthorized.HTTPStatus, apperror.ErrUnauthorized.Code, apperror.ErrUnauthorized.Message, nil)
			c.Abort()
			return
		}

		if principal.IsSuperAdmin {
			e := tenanterrors.ErrSuperAdminScoped
			response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
			c.Abort()
			return
		}

		if principal.TenantID == "" {
			e := tenanterrors.ErrTenantIDMissing
			response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
			c.Abort()
			return
		}

		t, err := service.Resolve(c.Request.Context(), principal.TenantID)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		c.Set("tenant_id", t.ID.String())
		c.Request = c.Request.WithContext(NewContext(c.Request.Context(), t))

		c.Next()
	}
}
