package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-hrms/internal/shared/contextutil"
)

// ContextLogger decorates the request context with a zap logger carrying
// the request id and user id, so service and repo layers can log without
// knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := contextutil.GetRequestID(c.Request.Context())
		uid := c.GetString("user_id")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", uid),
		)

		ctx := contextutil.WithLogger(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
