package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/shared/logger"
	"github.com/tasknest/tasknest/internal/shared/testutil"
)

func TestNewSessionRepositoryFor(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()
	client, _ := testutil.NewRedis(t)

	repo, err := NewSessionRepositoryFor(ctx, SessionBackendGorm, SessionBackends{DB: testutil.NewSQLiteDB(t)}, log)
	require.NoError(t, err)
	assert.IsType(t, &SessionRepository{}, repo)

	repo, err = NewSessionRepositoryFor(ctx, SessionBackendRedis, SessionBackends{Redis: client}, log)
	require.NoError(t, err)
	assert.IsType(t, &RedisSessionRepository{}, repo)

	_, err = NewSessionRepositoryFor(ctx, SessionBackendMongo, SessionBackends{}, log)
	assert.Error(t, err)

	_, err = NewSessionRepositoryFor(ctx, "memcached", SessionBackends{}, log)
	assert.Error(t, err)
}
