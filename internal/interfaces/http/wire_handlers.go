package http

import (
	"context"

	"github.com/tasknest/tasknest/internal/infrastructure/ratelimit"
	"github.com/tasknest/tasknest/internal/interfaces/http/handlers"
	"github.com/tasknest/tasknest/internal/interfaces/http/middleware"
	"github.com/tasknest/tasknest/internal/shared/utils"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler     *handlers.AuthHandler
	userHandler     *handlers.UserHandler
	todolistHandler *handlers.TodolistHandler
	taskHandler     *handlers.TaskHandler
	healthHandler   *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	cookies := utils.NewCookieSettings(c.cfg.Auth.Cookie, c.cfg.Server)

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(c.authService, cookies, c.log.Named("auth-handler")).
			WithObserver(c.metrics.ObserveAuth),
		userHandler:     handlers.NewUserHandler(c.authService, cookies, c.log),
		todolistHandler: handlers.NewTodolistHandler(c.todolistService, c.log),
		taskHandler:     handlers.NewTaskHandler(c.todolistService, c.log),
		healthHandler:   handlers.NewHealthHandler(c.log, c.healthChecks()...),
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.authService, c.log)

	if c.cfg.RateLimit.Enabled {
		limiter := ratelimit.NewRedisRateLimiter(c.redis, c.cfg.RateLimit.Limit, c.cfg.RateLimit.Window)
		c.rateLimiter = middleware.NewRateLimiter(limiter, c.log).OnDenied(func() {
			c.metrics.RateLimitDenied.Inc()
		})
	}
}

func (c *Container) healthChecks() []handlers.HealthCheck {
	checks := []handlers.HealthCheck{{
		Name: "database",
		Check: func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if c.redis != nil {
		checks = append(checks, handlers.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return c.redis.Ping(ctx).Err() },
		})
	}
	if c.mongo != nil {
		checks = append(checks, handlers.HealthCheck{
			Name:  "mongo",
			Check: func(ctx context.Context) error { return c.mongo.Ping(ctx, nil) },
		})
	}
	return checks
}
