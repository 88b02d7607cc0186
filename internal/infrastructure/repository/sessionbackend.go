package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"

	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

// Session store names accepted by session.store.
const (
	SessionBackendGorm  = "gorm"
	SessionBackendRedis = "redis"
	SessionBackendMongo = "mongo"
)

// SessionBackends carries the connections a session store may be built on.
// Only the one matching the selected store needs to be set.
type SessionBackends struct {
	DB    *gorm.DB
	Redis *redis.Client
	Mongo *mongo.Database
}

// NewSessionRepositoryFor builds the session repository for store.
func NewSessionRepositoryFor(ctx context.Context, store string, b SessionBackends, log logger.Interface) (user.SessionRepository, error) {
	switch store {
	case SessionBackendGorm, "":
		if b.DB == nil {
			return nil, fmt.Errorf("session store %q requires a database connection", store)
		}
		return NewSessionRepository(b.DB), nil
	case SessionBackendRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("session store %q requires a redis client", store)
		}
		return NewRedisSessionRepository(b.Redis, log), nil
	case SessionBackendMongo:
		if b.Mongo == nil {
			return nil, fmt.Errorf("session store %q requires a mongo database", store)
		}
		repo, err := NewMongoSessionRepository(ctx, b.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare mongo session store: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported session store %q", store)
	}
}
