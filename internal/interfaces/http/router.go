package http

import (
	"github.com/gin-gonic/gin"

	"github.com/tasknest/tasknest/internal/interfaces/http/middleware"
	"github.com/tasknest/tasknest/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.Metrics(c.metrics))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)
	c.engine.GET("/version", c.hdlrs.healthHandler.Version)
	if c.cfg.Metrics.Enabled {
		c.engine.GET(c.cfg.Metrics.Path, gin.WrapH(c.metrics.Handler()))
	}

	api := c.engine.Group("/api/v1")
	api.Use(middleware.APIKey(c.cfg.Server.APIKeys))

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		HealthHandler:  c.hdlrs.healthHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.rateLimiter,
	})
	routes.SetupTodolistRoutes(api, &routes.TodolistRouteConfig{
		TodolistHandler: c.hdlrs.todolistHandler,
		TaskHandler:     c.hdlrs.taskHandler,
		AuthMiddleware:  c.authMiddleware,
	})
	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:    c.hdlrs.userHandler,
		AuthMiddleware: c.authMiddleware,
	})
}
