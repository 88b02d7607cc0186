package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tasknest/tasknest/internal/interfaces/http/handlers"
	"github.com/tasknest/tasknest/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	HealthHandler  *handlers.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter // may be nil when rate limiting is disabled
}

// SetupAuthRoutes configures authentication routes. The whole group is rate
// limited per client IP.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	if cfg.RateLimiter != nil {
		auth.Use(cfg.RateLimiter.Limit())
	}
	{
		auth.GET("/health", cfg.HealthHandler.Health)
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
		auth.POST("/logout", cfg.AuthHandler.Logout)

		auth.POST("/logout-all", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.LogoutAll)
		auth.POST("/logout-others", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.LogoutOthers)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Me)
	}
}
