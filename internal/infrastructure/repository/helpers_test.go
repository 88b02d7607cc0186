package repository

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/shared/testutil"
)

func newTestDB(t *testing.T) *gorm.DB {
	return testutil.NewSQLiteDB(t)
}

func newTestRedis(t *testing.T) *redis.Client {
	client, _ := testutil.NewRedis(t)
	return client
}

func newTestSession(t *testing.T, userID, deviceID, hash string, ttl time.Duration) *user.Session {
	t.Helper()

	s, err := user.NewSession(userID, deviceID, hash, time.Now().UTC().Add(ttl), "10.0.0.1", "test-agent")
	require.NoError(t, err)
	return s
}
