package usecases

import (
	"context"
	"time"

	"github.com/tasknest/tasknest/internal/application/user/helpers"
	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/infrastructure/auth"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	Tokens    *auth.TokenPair
	ExpiresAt time.Time
	SessionID string
}

// RefreshTokenUseCase trades a refresh token for a new pair. The old refresh
// token stops working the moment the rotation commits.
type RefreshTokenUseCase struct {
	userRepo     user.Repository
	tokenService TokenService
	sessions     *helpers.SessionStore
	logger       logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo user.Repository,
	tokenService TokenService,
	sessions *helpers.SessionStore,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
		sessions:     sessions,
		logger:       logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	claims, err := uc.tokenService.VerifyRefresh(cmd.RefreshToken)
	if err != nil {
		return nil, err
	}

	existingUser, err := uc.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", claims.Subject, "error", err)
		return nil, errors.NewOperationFailedError()
	}
	if existingUser == nil {
		uc.logger.Warnw("user not found during token refresh", "user_id", claims.Subject)
		return nil, errors.NewUnauthenticatedError()
	}

	tokens, err := uc.tokenService.GeneratePair(ctx, auth.TokenPayload{
		Sub:   existingUser.ID(),
		Email: existingUser.Email().String(),
	}, 0)
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "user_id", existingUser.ID(), "error", err)
		return nil, errors.NewOperationFailedError()
	}

	session, err := uc.sessions.Rotate(ctx, existingUser.ID(), cmd.RefreshToken, tokens.RefreshToken, tokens.RefreshExpiresAt)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Warnw("refresh token without live session", "user_id", existingUser.ID())
			return nil, err
		}
		uc.logger.Errorw("failed to rotate session", "user_id", existingUser.ID(), "error", err)
		return nil, errors.NewOperationFailedError()
	}

	uc.logger.Infow("token refreshed", "user_id", existingUser.ID(), "session_id", session.ID)

	return &RefreshTokenResult{
		Tokens:    tokens,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
	}, nil
}
