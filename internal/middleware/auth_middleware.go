package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/identity"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"
)

// AuthMiddleware verifies the bearer token and materializes the principal
// from its claims. Claims were embedded at login and are trusted as-is for
// the token's 24-hour validity window.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		tenantID, _ := claims["tenant_id"].(string)
		isSuperAdmin, _ := claims["is_super_admin"].(bool)
		isCompanyAdmin, _ := claims["is_company_admin"].(bool)

		principal := identity.Principal{
			UserID:         userID,
			TenantID:       tenantID,
			Roles:          claimStrings(claims["roles"]),
			Permissions:    claimStrings(claims["permissions"]),
			IsSuperAdmin:   isSuperAdmin,
			IsCompanyAdmin: isCompanyAdmin,
		}

		c.Set("user_id", userID)
		c.Set("tenant_id", tenantID)

		ctx := contextutil.WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// SuperAdminOnly gates the unscoped administrative route set.
func SuperAdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := contextutil.GetPrincipal(c.Request.Context())
		if !ok || !principal.IsSuperAdmin {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Super admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// claimStrings converts a JSON claim array into []string, dropping anything
// that is not a string.
func claimStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
