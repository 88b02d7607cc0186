package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tasknest/tasknest/internal/interfaces/http/handlers"
	"github.com/tasknest/tasknest/internal/interfaces/http/middleware"
)

// TodolistRouteConfig holds dependencies for todolist and task routes.
type TodolistRouteConfig struct {
	TodolistHandler *handlers.TodolistHandler
	TaskHandler     *handlers.TaskHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// SetupTodolistRoutes configures /todolists and /tasks.
func SetupTodolistRoutes(api *gin.RouterGroup, cfg *TodolistRouteConfig) {
	lists := api.Group("/todolists")
	lists.Use(cfg.AuthMiddleware.RequireAuth())
	{
		lists.POST("", cfg.TodolistHandler.Create)
		lists.GET("", cfg.TodolistHandler.List)
		lists.GET("/:id", cfg.TodolistHandler.Get)
		lists.PATCH("/:id", cfg.TodolistHandler.Update)
		lists.DELETE("/:id", cfg.TodolistHandler.Delete)
	}

	tasks := api.Group("/tasks")
	tasks.Use(cfg.AuthMiddleware.RequireAuth())
	{
		tasks.POST("", cfg.TaskHandler.Create)

		// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
		tasks.GET("/todolist/:todolistId", cfg.TaskHandler.ListByTodolist)

		tasks.GET("/:id", cfg.TaskHandler.Get)
		tasks.PATCH("/:id", cfg.TaskHandler.Update)
		tasks.DELETE("/:id", cfg.TaskHandler.Delete)
	}
}
