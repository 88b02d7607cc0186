package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/tasknest/tasknest/internal/application/user/helpers"
	"github.com/tasknest/tasknest/internal/domain/user"
	vo "github.com/tasknest/tasknest/internal/domain/user/valueobjects"
	"github.com/tasknest/tasknest/internal/infrastructure/auth"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type LoginWithPasswordCommand struct {
	Email      string
	Password   string
	DeviceID   string
	RememberMe bool
	IPAddress  string
	UserAgent  string
}

type LoginWithPasswordResult struct {
	User      *user.User
	Tokens    *auth.TokenPair
	ExpiresAt time.Time
	SessionID string
	DeviceID  string
}

type LoginWithPasswordUseCase struct {
	userRepo     user.Repository
	passwords    PasswordService
	tokenService TokenService
	sessions     *helpers.SessionStore
	rememberTTL  time.Duration
	logger       logger.Interface

	dummyOnce sync.Once
	dummyHash string
}

func NewLoginWithPasswordUseCase(
	userRepo user.Repository,
	passwords PasswordService,
	tokenService TokenService,
	sessions *helpers.SessionStore,
	rememberTTL time.Duration,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	return &LoginWithPasswordUseCase{
		userRepo:     userRepo,
		passwords:    passwords,
		tokenService: tokenService,
		sessions:     sessions,
		rememberTTL:  rememberTTL,
		logger:       logger,
	}
}

func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd LoginWithPasswordCommand) (*LoginWithPasswordResult, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, vo.Canonicalize(cmd.Email))
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, errors.NewOperationFailedError()
	}

	if existingUser == nil {
		// Burn a comparable amount of time so unknown emails are not distinguishable.
		uc.verifyDummy(cmd.Password)
		return nil, errors.NewInvalidCredentialsError()
	}

	ok, err := existingUser.VerifyPassword(cmd.Password, uc.passwords)
	if err != nil {
		uc.logger.Errorw("failed to verify password", "user_id", existingUser.ID(), "error", err)
		return nil, errors.NewOperationFailedError()
	}
	if !ok {
		return nil, errors.NewInvalidCredentialsError()
	}

	refreshTTL := uc.tokenService.RefreshTTL()
	if cmd.RememberMe && uc.rememberTTL > 0 {
		refreshTTL = uc.rememberTTL
	}

	tokens, err := uc.tokenService.GeneratePair(ctx, auth.TokenPayload{
		Sub:   existingUser.ID(),
		Email: existingUser.Email().String(),
	}, refreshTTL)
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "user_id", existingUser.ID(), "error", err)
		return nil, errors.NewOperationFailedError()
	}

	session, err := uc.sessions.Create(ctx, helpers.CreateSessionParams{
		UserID:       existingUser.ID(),
		DeviceID:     cmd.DeviceID,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.RefreshExpiresAt,
		IPAddress:    cmd.IPAddress,
		UserAgent:    cmd.UserAgent,
	})
	if err != nil {
		uc.logger.Errorw("failed to create session", "user_id", existingUser.ID(), "error", err)
		return nil, errors.NewOperationFailedError()
	}

	uc.logger.Infow("user logged in", "user_id", existingUser.ID(), "session_id", session.ID, "remember_me", cmd.RememberMe)

	return &LoginWithPasswordResult{
		User:      existingUser,
		Tokens:    tokens,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
		DeviceID:  session.DeviceID,
	}, nil
}

func (uc *LoginWithPasswordUseCase) verifyDummy(password string) {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = uc.passwords.Hash("tasknest-timing-equaliser")
	})
	if uc.dummyHash != "" {
		_, _ = uc.passwords.Verify(password, uc.dummyHash)
	}
}
