package usecases

import (
	"context"
	"time"

	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/infrastructure/auth"
)

// TokenService issues and verifies access/refresh token pairs.
type TokenService interface {
	GeneratePair(ctx context.Context, payload auth.TokenPayload, refreshTTL time.Duration) (*auth.TokenPair, error)
	VerifyAccess(token string) (*auth.Claims, error)
	VerifyRefresh(token string) (*auth.Claims, error)
	RefreshTTL() time.Duration
}

// PasswordService hashes credentials and enforces the strength rules.
type PasswordService interface {
	user.PasswordHasher
	ValidateStrength(password string) auth.StrengthResult
}

// Transactor runs fn in a single database transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
