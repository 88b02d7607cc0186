package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

// runSessionRepositoryContract checks behaviour every session backend must share.
func runSessionRepositoryContract(t *testing.T, newRepo func(t *testing.T) user.SessionRepository) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		repo := newRepo(t)
		s := newTestSession(t, "usr_a", "laptop", "hash-1", time.Hour)
		require.NoError(t, repo.Create(ctx, s))

		got, err := repo.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.UserID, got.UserID)
		assert.Equal(t, "laptop", got.DeviceID)
		assert.Equal(t, "hash-1", got.RefreshTokenHash)
		assert.Equal(t, "10.0.0.1", got.IPAddress)
		assert.WithinDuration(t, s.ExpiresAt, got.ExpiresAt, time.Millisecond)
	})

	t.Run("same device replaces previous session", func(t *testing.T) {
		repo := newRepo(t)
		first := newTestSession(t, "usr_a", "phone", "hash-1", time.Hour)
		second := newTestSession(t, "usr_a", "phone", "hash-2", time.Hour)
		other := newTestSession(t, "usr_a", "laptop", "hash-3", time.Hour)
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))
		require.NoError(t, repo.Create(ctx, other))

		_, err := repo.GetByID(ctx, first.ID)
		assert.True(t, errors.IsNotFoundError(err))

		list, err := repo.ListByUserID(ctx, "usr_a")
		require.NoError(t, err)
		require.Len(t, list, 2)
		ids := []string{list[0].ID, list[1].ID}
		assert.ElementsMatch(t, []string{second.ID, other.ID}, ids)
	})

	t.Run("expired sessions are invisible and purgeable", func(t *testing.T) {
		repo := newRepo(t)
		s := newTestSession(t, "usr_a", "laptop", "hash-1", time.Hour)
		require.NoError(t, repo.Create(ctx, s))

		later := time.Now().UTC().Add(2 * time.Hour)
		restore := biztime.SetClock(func() time.Time { return later })
		defer restore()

		_, err := repo.GetByID(ctx, s.ID)
		assert.True(t, errors.IsNotFoundError(err))

		list, err := repo.ListByUserID(ctx, "usr_a")
		require.NoError(t, err)
		assert.Empty(t, list)

		err = repo.SwapRefreshHash(ctx, s.ID, "hash-1", "hash-2", later.Add(time.Hour))
		assert.True(t, errors.IsNotFoundError(err))

		n, err := repo.DeleteExpired(ctx, later)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("swap is conditional on the current hash", func(t *testing.T) {
		repo := newRepo(t)
		s := newTestSession(t, "usr_a", "laptop", "hash-1", time.Hour)
		require.NoError(t, repo.Create(ctx, s))

		newExpiry := time.Now().UTC().Add(48 * time.Hour)

		err := repo.SwapRefreshHash(ctx, s.ID, "wrong", "hash-2", newExpiry)
		assert.True(t, errors.IsNotFoundError(err))

		require.NoError(t, repo.SwapRefreshHash(ctx, s.ID, "hash-1", "hash-2", newExpiry))

		err = repo.SwapRefreshHash(ctx, s.ID, "hash-1", "hash-3", newExpiry)
		assert.True(t, errors.IsNotFoundError(err), "the old hash must not rotate twice")

		got, err := repo.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash-2", got.RefreshTokenHash)
		assert.WithinDuration(t, newExpiry, got.ExpiresAt, time.Millisecond)
	})

	t.Run("delete is conditional on the current hash", func(t *testing.T) {
		repo := newRepo(t)
		s := newTestSession(t, "usr_a", "laptop", "hash-1", time.Hour)
		require.NoError(t, repo.Create(ctx, s))

		err := repo.DeleteIfRefreshHash(ctx, s.ID, "wrong")
		assert.True(t, errors.IsNotFoundError(err))

		require.NoError(t, repo.DeleteIfRefreshHash(ctx, s.ID, "hash-1"))

		_, err = repo.GetByID(ctx, s.ID)
		assert.True(t, errors.IsNotFoundError(err))

		err = repo.DeleteIfRefreshHash(ctx, s.ID, "hash-1")
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("bulk deletes are scoped to the user", func(t *testing.T) {
		repo := newRepo(t)
		a1 := newTestSession(t, "usr_a", "d1", "h1", time.Hour)
		a2 := newTestSession(t, "usr_a", "d2", "h2", time.Hour)
		a3 := newTestSession(t, "usr_a", "d3", "h3", time.Hour)
		b1 := newTestSession(t, "usr_b", "d1", "h4", time.Hour)
		for _, s := range []*user.Session{a1, a2, a3, b1} {
			require.NoError(t, repo.Create(ctx, s))
		}

		n, err := repo.DeleteByUserIDExcept(ctx, "usr_a", a2.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		list, err := repo.ListByUserID(ctx, "usr_a")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, a2.ID, list[0].ID)

		n, err = repo.DeleteByUserID(ctx, "usr_a")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = repo.GetByID(ctx, b1.ID)
		assert.NoError(t, err)

		n, err = repo.DeleteByUserID(ctx, "usr_nobody")
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestSessionRepository_Gorm(t *testing.T) {
	runSessionRepositoryContract(t, func(t *testing.T) user.SessionRepository {
		return NewSessionRepository(newTestDB(t))
	})
}

func TestSessionRepository_Redis(t *testing.T) {
	runSessionRepositoryContract(t, func(t *testing.T) user.SessionRepository {
		return NewRedisSessionRepository(newTestRedis(t), logger.NewNop())
	})
}
