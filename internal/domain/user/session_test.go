package user

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/id"
)

func TestNewSession(t *testing.T) {
	expires := biztime.NowUTC().Add(time.Hour)

	t.Run("defaults device id to a uuid", func(t *testing.T) {
		s, err := NewSession("usr_1", "", "hash", expires, "", "")
		require.NoError(t, err)

		_, parseErr := uuid.Parse(s.DeviceID)
		assert.NoError(t, parseErr)
		assert.NoError(t, id.ValidatePrefix(s.ID, id.PrefixSession))
	})

	t.Run("keeps caller device id", func(t *testing.T) {
		s, err := NewSession("usr_1", "laptop", "hash", expires, "10.0.0.1", "curl/8")
		require.NoError(t, err)
		assert.Equal(t, "laptop", s.DeviceID)
		assert.Equal(t, "10.0.0.1", s.IPAddress)
		assert.Equal(t, "curl/8", s.UserAgent)
	})

	t.Run("two sessions get distinct ids", func(t *testing.T) {
		a, _ := NewSession("usr_1", "", "hash", expires, "", "")
		b, _ := NewSession("usr_1", "", "hash", expires, "", "")
		assert.NotEqual(t, a.ID, b.ID)
		assert.NotEqual(t, a.DeviceID, b.DeviceID)
	})

	t.Run("rejects missing fields and past expiry", func(t *testing.T) {
		_, err := NewSession("", "", "hash", expires, "", "")
		assert.Error(t, err)
		_, err = NewSession("usr_1", "", "", expires, "", "")
		assert.Error(t, err)
		_, err = NewSession("usr_1", "", "hash", biztime.NowUTC().Add(-time.Second), "", "")
		assert.Error(t, err)
	})
}

func TestSession_IsExpiredAt(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Session{ExpiresAt: now}

	assert.False(t, s.IsExpiredAt(now.Add(-time.Nanosecond)))
	assert.True(t, s.IsExpiredAt(now))
	assert.True(t, s.IsExpiredAt(now.Add(time.Minute)))
}
