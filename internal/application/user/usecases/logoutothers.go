package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/application/user/helpers"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type LogoutOthersCommand struct {
	UserID       string
	RefreshToken string
}

type LogoutOthersUseCase struct {
	tokenService TokenService
	sessions     *helpers.SessionStore
	logger       logger.Interface
}

func NewLogoutOthersUseCase(tokenService TokenService, sessions *helpers.SessionStore, logger logger.Interface) *LogoutOthersUseCase {
	return &LogoutOthersUseCase{
		tokenService: tokenService,
		sessions:     sessions,
		logger:       logger,
	}
}

// Execute keeps the session behind cmd.RefreshToken and revokes the rest.
func (uc *LogoutOthersUseCase) Execute(ctx context.Context, cmd LogoutOthersCommand) (int64, error) {
	claims, err := uc.tokenService.VerifyRefresh(cmd.RefreshToken)
	if err != nil {
		return 0, err
	}
	if claims.Subject != cmd.UserID {
		uc.logger.Warnw("refresh token belongs to another user", "user_id", cmd.UserID)
		return 0, errors.NewTokenInvalidError("refresh token")
	}

	count, err := uc.sessions.DeleteOthersForUserExcept(ctx, cmd.UserID, cmd.RefreshToken)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return 0, err
		}
		uc.logger.Errorw("failed to delete other sessions", "user_id", cmd.UserID, "error", err)
		return 0, errors.NewOperationFailedError()
	}

	uc.logger.Infow("user logged out of other devices", "user_id", cmd.UserID, "count", count)
	return count, nil
}
