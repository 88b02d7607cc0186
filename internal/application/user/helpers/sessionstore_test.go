package helpers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasknest/tasknest/internal/infrastructure/auth"
	"github.com/tasknest/tasknest/internal/infrastructure/repository"
	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
	"github.com/tasknest/tasknest/internal/shared/testutil"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	repo := repository.NewSessionRepository(testutil.NewSQLiteDB(t))
	return NewSessionStore(repo, auth.NewBcryptTokenHasher(bcrypt.MinCost), logger.NewNop())
}

func createSession(t *testing.T, store *SessionStore, userID, deviceID, token string) string {
	t.Helper()
	s, err := store.Create(context.Background(), CreateSessionParams{
		UserID:       userID,
		DeviceID:     deviceID,
		RefreshToken: token,
		ExpiresAt:    time.Now().UTC().Add(time.Hour),
	})
	require.NoError(t, err)
	return s.ID
}

func TestSessionStore_CreateHashesTokenAndDefaultsDevice(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	s, err := store.Create(ctx, CreateSessionParams{
		UserID:       "usr_1",
		RefreshToken: "refresh-token-1",
		ExpiresAt:    time.Now().UTC().Add(time.Hour),
		IPAddress:    "127.0.0.1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, s.DeviceID)
	assert.NotEqual(t, "refresh-token-1", s.RefreshTokenHash)

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.DeviceID, got.DeviceID)
	assert.Equal(t, "127.0.0.1", got.IPAddress)
}

func TestSessionStore_GetMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(context.Background(), "ses_missing")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestSessionStore_DeleteByUserAndRefreshToken(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	keep := createSession(t, store, "usr_1", "laptop", "token-a")
	drop := createSession(t, store, "usr_1", "phone", "token-b")

	id, err := store.DeleteByUserAndRefreshToken(ctx, "usr_1", "token-b")
	require.NoError(t, err)
	assert.Equal(t, drop, id)

	_, err = store.DeleteByUserAndRefreshToken(ctx, "usr_1", "token-b")
	assert.True(t, errors.IsNotFoundError(err))

	_, err = store.DeleteByUserAndRefreshToken(ctx, "usr_2", "token-a")
	assert.True(t, errors.IsNotFoundError(err), "tokens are scoped to their user")

	_, err = store.Get(ctx, keep)
	assert.NoError(t, err)
}

func TestSessionStore_RotateIsSingleUse(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := createSession(t, store, "usr_1", "laptop", "token-old")
	newExpiry := time.Now().UTC().Add(48 * time.Hour)

	rotated, err := store.Rotate(ctx, "usr_1", "token-old", "token-new", newExpiry)
	require.NoError(t, err)
	assert.Equal(t, id, rotated.ID)
	assert.Equal(t, "laptop", rotated.DeviceID)

	_, err = store.Rotate(ctx, "usr_1", "token-old", "token-newer", newExpiry)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = store.DeleteByUserAndRefreshToken(ctx, "usr_1", "token-new")
	assert.NoError(t, err)
}

func TestSessionStore_ConcurrentRotateHasOneWinner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createSession(t, store, "usr_1", "laptop", "token-old")

	const workers = 4
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Rotate(ctx, "usr_1", "token-old", "token-new-"+string(rune('a'+i)), time.Now().UTC().Add(time.Hour))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var ok, notFound int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.IsNotFoundError(err):
			notFound++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, notFound)
}

func TestSessionStore_BulkRevocation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	current := createSession(t, store, "usr_1", "d1", "token-1")
	createSession(t, store, "usr_1", "d2", "token-2")
	createSession(t, store, "usr_1", "d3", "token-3")
	other := createSession(t, store, "usr_2", "d1", "token-4")

	_, err := store.DeleteOthersForUserExcept(ctx, "usr_1", "unknown-token")
	assert.True(t, errors.IsNotFoundError(err))

	n, err := store.DeleteOthersForUserExcept(ctx, "usr_1", "token-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = store.Get(ctx, current)
	assert.NoError(t, err)

	n, err = store.DeleteAllForUser(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Get(ctx, other)
	assert.NoError(t, err)
}

func TestSessionStore_PurgeExpired(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := createSession(t, store, "usr_1", "d1", "token-1")

	later := time.Now().UTC().Add(2 * time.Hour)
	restore := biztime.SetClock(func() time.Time { return later })
	defer restore()

	_, err := store.Get(ctx, id)
	assert.True(t, errors.IsNotFoundError(err), "expired sessions are not returned")

	n, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
