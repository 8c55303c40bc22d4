package auth

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"go-hrms/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		// Credential guessing is the cheap attack here; throttle by IP.
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Limit(5), 10), handler.Login)
	}
}
