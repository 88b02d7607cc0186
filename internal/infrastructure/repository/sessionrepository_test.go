package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tasknest/tasknest/internal/infrastructure/persistence/models"
)

// insertRacingSession makes the next session insert collide with a row for the
// same user and device, as a concurrent login on that device would.
func insertRacingSession(t *testing.T, gdb *gorm.DB, userID, deviceID string) *int {
	t.Helper()

	fired := 0
	err := gdb.Callback().Create().Before("gorm:create").Register("test:racing_session", func(tx *gorm.DB) {
		if fired > 0 || tx.Statement.Table != models.TableSessions {
			return
		}
		fired++
		now := time.Now().UTC()
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO sessions (id, user_id, device_id, refresh_token_hash, expires_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			"ses_racer", userID, deviceID, "racer-hash", now.Add(time.Hour), now, now,
		)
	})
	require.NoError(t, err)
	return &fired
}

func TestSessionRepository_CreateRetriesConcurrentDeviceInsert(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	repo := NewSessionRepository(gdb)

	fired := insertRacingSession(t, gdb, "usr_a", "phone")

	s := newTestSession(t, "usr_a", "phone", "hash-1", time.Hour)
	require.NoError(t, repo.Create(ctx, s))
	assert.Equal(t, 1, *fired)

	sessions, err := repo.ListByUserID(ctx, "usr_a")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, s.ID, sessions[0].ID)
	assert.Equal(t, "hash-1", sessions[0].RefreshTokenHash)
}
