package helpers

import (
	"context"
	"fmt"
	"time"

	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

// SessionStore keeps one session per logged-in device and only ever persists
// the hash of its refresh token. Plaintext tokens are matched against the
// user's sessions one by one because the stored hashes are salted.
type SessionStore struct {
	repo   user.SessionRepository
	hasher user.RefreshTokenHasher
	logger logger.Interface
}

func NewSessionStore(repo user.SessionRepository, hasher user.RefreshTokenHasher, logger logger.Interface) *SessionStore {
	return &SessionStore{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

type CreateSessionParams struct {
	UserID       string
	DeviceID     string
	RefreshToken string
	ExpiresAt    time.Time
	IPAddress    string
	UserAgent    string
}

// Create stores a new session, replacing any previous one for the same device.
func (s *SessionStore) Create(ctx context.Context, p CreateSessionParams) (*user.Session, error) {
	hash, err := s.hasher.Hash(p.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	session, err := user.NewSession(p.UserID, p.DeviceID, hash, p.ExpiresAt, p.IPAddress, p.UserAgent)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*user.Session, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewSessionNotFoundError()
		}
		return nil, err
	}
	return session, nil
}

// DeleteByUserAndRefreshToken deletes the session holding refreshToken and returns its ID.
func (s *SessionStore) DeleteByUserAndRefreshToken(ctx context.Context, userID, refreshToken string) (string, error) {
	session, err := s.findByRefreshToken(ctx, userID, refreshToken)
	if err != nil {
		return "", err
	}

	if err := s.repo.DeleteIfRefreshHash(ctx, session.ID, session.RefreshTokenHash); err != nil {
		if errors.IsNotFoundError(err) {
			return "", errors.NewSessionNotFoundError()
		}
		return "", err
	}
	return session.ID, nil
}

// Rotate swaps the stored hash of oldRefreshToken for the hash of newRefreshToken.
// Of two concurrent rotations of the same token exactly one succeeds.
func (s *SessionStore) Rotate(ctx context.Context, userID, oldRefreshToken, newRefreshToken string, newExpiresAt time.Time) (*user.Session, error) {
	session, err := s.findByRefreshToken(ctx, userID, oldRefreshToken)
	if err != nil {
		return nil, err
	}

	newHash, err := s.hasher.Hash(newRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	if err := s.repo.SwapRefreshHash(ctx, session.ID, session.RefreshTokenHash, newHash, newExpiresAt); err != nil {
		if errors.IsNotFoundError(err) {
			s.logger.Warnw("refresh token rotation lost a race", "user_id", userID, "session_id", session.ID)
			return nil, errors.NewSessionNotFoundError()
		}
		return nil, err
	}

	rotated := *session
	rotated.RefreshTokenHash = newHash
	rotated.ExpiresAt = newExpiresAt.UTC()
	rotated.UpdatedAt = biztime.NowUTC()
	return &rotated, nil
}

func (s *SessionStore) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	return s.repo.DeleteByUserID(ctx, userID)
}

// DeleteOthersForUserExcept keeps only the session holding currentRefreshToken.
func (s *SessionStore) DeleteOthersForUserExcept(ctx context.Context, userID, currentRefreshToken string) (int64, error) {
	current, err := s.findByRefreshToken(ctx, userID, currentRefreshToken)
	if err != nil {
		return 0, err
	}
	return s.repo.DeleteByUserIDExcept(ctx, userID, current.ID)
}

func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, biztime.NowUTC())
}

func (s *SessionStore) findByRefreshToken(ctx context.Context, userID, refreshToken string) (*user.Session, error) {
	sessions, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, session := range sessions {
		if s.hasher.Matches(refreshToken, session.RefreshTokenHash) {
			return session, nil
		}
	}
	return nil, errors.NewSessionNotFoundError()
}
