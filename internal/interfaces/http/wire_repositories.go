package http

import (
	"context"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/infrastructure/config"
	"github.com/tasknest/tasknest/internal/infrastructure/database"
	"github.com/tasknest/tasknest/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo     user.Repository
	sessionRepo  user.SessionRepository
	todolistRepo todolist.Repository
	taskRepo     todolist.TaskRepository
}

// needsRedis reports whether any configured component is backed by Redis.
func needsRedis(cfg *config.Config) bool {
	return cfg.Session.Store == config.SessionStoreRedis || cfg.RateLimit.Enabled
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	backends := repository.SessionBackends{DB: c.db}

	if needsRedis(c.cfg) {
		client, err := database.OpenRedis(ctx, &c.cfg.Redis)
		if err != nil {
			return err
		}
		c.redis = client
		backends.Redis = client
		c.log.Infow("redis connection established", "addr", c.cfg.Redis.GetAddr())
	}

	if c.cfg.Session.Store == config.SessionStoreMongo {
		client, mdb, err := database.OpenMongo(ctx, &c.cfg.Mongo)
		if err != nil {
			return err
		}
		c.mongo = client
		backends.Mongo = mdb
		c.log.Infow("mongo connection established", "database", c.cfg.Mongo.Database)
	}

	sessionRepo, err := repository.NewSessionRepositoryFor(ctx, c.cfg.Session.Store, backends, c.log)
	if err != nil {
		return err
	}

	c.repos = &repositories{
		userRepo:     repository.NewUserRepository(c.db, c.log),
		sessionRepo:  sessionRepo,
		todolistRepo: repository.NewTodolistRepository(c.db, c.log),
		taskRepo:     repository.NewTaskRepository(c.db),
	}
	return nil
}
