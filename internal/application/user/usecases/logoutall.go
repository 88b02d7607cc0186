package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/application/user/helpers"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type LogoutAllCommand struct {
	UserID string
}

type LogoutAllUseCase struct {
	sessions *helpers.SessionStore
	logger   logger.Interface
}

func NewLogoutAllUseCase(sessions *helpers.SessionStore, logger logger.Interface) *LogoutAllUseCase {
	return &LogoutAllUseCase{
		sessions: sessions,
		logger:   logger,
	}
}

// Execute revokes every session of the user and returns how many were removed.
func (uc *LogoutAllUseCase) Execute(ctx context.Context, cmd LogoutAllCommand) (int64, error) {
	count, err := uc.sessions.DeleteAllForUser(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to delete user sessions", "user_id", cmd.UserID, "error", err)
		return 0, errors.NewOperationFailedError()
	}

	uc.logger.Infow("user logged out of all devices", "user_id", cmd.UserID, "count", count)
	return count, nil
}
