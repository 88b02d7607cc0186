package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tasknest/tasknest/internal/interfaces/http/handlers"
	"github.com/tasknest/tasknest/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user account routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupUserRoutes configures account routes of the calling user.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		users.GET("/me", cfg.UserHandler.GetMe)
		users.DELETE("/me", cfg.UserHandler.DeleteMe)
	}
}
