package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/infrastructure/auth"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type AuthenticateCommand struct {
	AccessToken string
}

type AuthenticateResult struct {
	User   *user.User
	Claims *auth.Claims
}

// AuthenticateUseCase decides whether an access token is live: it must verify
// and its subject must still exist.
type AuthenticateUseCase struct {
	userRepo     user.Repository
	tokenService TokenService
	logger       logger.Interface
}

func NewAuthenticateUseCase(userRepo user.Repository, tokenService TokenService, logger logger.Interface) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}

func (uc *AuthenticateUseCase) Execute(ctx context.Context, cmd AuthenticateCommand) (*AuthenticateResult, error) {
	claims, err := uc.tokenService.VerifyAccess(cmd.AccessToken)
	if err != nil {
		return nil, err
	}

	existingUser, err := uc.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", claims.Subject, "error", err)
		return nil, errors.NewOperationFailedError()
	}
	if existingUser == nil {
		return nil, errors.NewUnauthenticatedError()
	}

	return &AuthenticateResult{User: existingUser, Claims: claims}, nil
}
