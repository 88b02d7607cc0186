package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/application/user/helpers"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type LogoutCommand struct {
	RefreshToken string
}

type LogoutUseCase struct {
	tokenService TokenService
	sessions     *helpers.SessionStore
	logger       logger.Interface
}

func NewLogoutUseCase(tokenService TokenService, sessions *helpers.SessionStore, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		tokenService: tokenService,
		sessions:     sessions,
		logger:       logger,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	claims, err := uc.tokenService.VerifyRefresh(cmd.RefreshToken)
	if err != nil {
		return err
	}

	sessionID, err := uc.sessions.DeleteByUserAndRefreshToken(ctx, claims.Subject, cmd.RefreshToken)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return err
		}
		uc.logger.Errorw("failed to delete session", "user_id", claims.Subject, "error", err)
		return errors.NewOperationFailedError()
	}

	uc.logger.Infow("user logged out", "user_id", claims.Subject, "session_id", sessionID)
	return nil
}
