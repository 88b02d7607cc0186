package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"

	todolistApp "github.com/tasknest/tasknest/internal/application/todolist"
	"github.com/tasknest/tasknest/internal/application/user"
	"github.com/tasknest/tasknest/internal/application/user/helpers"
	"github.com/tasknest/tasknest/internal/infrastructure/config"
	"github.com/tasknest/tasknest/internal/infrastructure/metrics"
	"github.com/tasknest/tasknest/internal/infrastructure/scheduler"
	"github.com/tasknest/tasknest/internal/interfaces/http/middleware"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, services,
// handlers and background jobs. It wires everything together and provides a
// Shutdown method for graceful termination.
type Container struct {
	// Core infrastructure
	engine  *gin.Engine
	db      *gorm.DB
	cfg     *config.Config
	log     logger.Interface
	redis   *redis.Client // nil unless a component needs Redis
	mongo   *mongo.Client // nil unless session.store is mongo
	metrics *metrics.Registry

	// Repositories
	repos *repositories

	// Application services
	sessions        *helpers.SessionStore
	authService     *user.AuthService
	todolistService *todolistApp.Service

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter

	// Background services
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer creates a Container with all dependencies wired together.
// External connections (Redis, MongoDB) are opened here and verified.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:  gin.New(),
		db:      db,
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewRegistry(),
	}

	// Section 1: Infrastructure - Redis, Mongo, Repositories
	if err := c.initInfrastructure(ctx); err != nil {
		c.closeConnections()
		return nil, err
	}

	// Section 2: Application services
	c.initServices()

	// Section 3: Handlers and middlewares
	c.initHandlers()

	// Section 4: Scheduler jobs
	if err := c.initScheduler(); err != nil {
		c.closeConnections()
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	return c, nil
}

// Engine returns the Gin engine
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// AuthService exposes the auth facade, e.g. for a one-off purge.
func (c *Container) AuthService() *user.AuthService {
	return c.authService
}

// StartBackground starts the scheduler.
func (c *Container) StartBackground() {
	c.schedulerManager.Start()
}

// Shutdown stops background jobs and closes external connections.
func (c *Container) Shutdown(ctx context.Context) {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}
	c.closeConnections()
}

func (c *Container) closeConnections() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
		c.redis = nil
	}
	if c.mongo != nil {
		if err := c.mongo.Disconnect(context.Background()); err != nil {
			c.log.Warnw("failed to disconnect mongo client", "error", err)
		}
		c.mongo = nil
	}
}
