package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/id"
)

// Session binds a user and a device to the hash of the current refresh token.
// At most one session exists per (UserID, DeviceID).
type Session struct {
	ID               string
	UserID           string
	DeviceID         string
	RefreshTokenHash string
	IPAddress        string
	UserAgent        string
	ExpiresAt        time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewSession builds a session for a freshly issued refresh token hash.
// An empty deviceID is replaced with a random UUID.
func NewSession(userID, deviceID, refreshTokenHash string, expiresAt time.Time, ipAddress, userAgent string) (*Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if refreshTokenHash == "" {
		return nil, fmt.Errorf("refresh token hash is required")
	}

	now := biztime.NowUTC()
	if !expiresAt.After(now) {
		return nil, fmt.Errorf("session expiry must be in the future")
	}

	sid, err := id.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	return &Session{
		ID:               sid,
		UserID:           userID,
		DeviceID:         deviceID,
		RefreshTokenHash: refreshTokenHash,
		IPAddress:        ipAddress,
		UserAgent:        userAgent,
		ExpiresAt:        expiresAt.UTC(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (s *Session) IsExpired() bool {
	return s.IsExpiredAt(biztime.NowUTC())
}

func (s *Session) IsExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionRepository is the persistence port for sessions. Implementations never
// return expired sessions from reads, and the conditional writes are atomic
// per record.
type SessionRepository interface {
	// Create stores s, replacing any existing session of the same user and device.
	Create(ctx context.Context, s *Session) error

	// GetByID returns a not-found error if the session is absent or expired.
	GetByID(ctx context.Context, sessionID string) (*Session, error)

	// ListByUserID returns the user's live sessions, oldest first.
	ListByUserID(ctx context.Context, userID string) ([]*Session, error)

	// SwapRefreshHash replaces the hash and expiry only while the stored hash
	// still equals oldHash. Otherwise it returns a not-found error.
	SwapRefreshHash(ctx context.Context, sessionID, oldHash, newHash string, newExpiresAt time.Time) error

	// DeleteIfRefreshHash removes the session only while its stored hash equals hash.
	DeleteIfRefreshHash(ctx context.Context, sessionID, hash string) error

	// DeleteByUserID removes every session of the user.
	DeleteByUserID(ctx context.Context, userID string) (int64, error)

	// DeleteByUserIDExcept removes every session of the user but keepSessionID.
	DeleteByUserIDExcept(ctx context.Context, userID, keepSessionID string) (int64, error)

	// DeleteExpired removes sessions that expired at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RefreshTokenHasher produces and checks the stored form of refresh tokens.
type RefreshTokenHasher interface {
	Hash(token string) (string, error)
	Matches(token, hash string) bool
}
