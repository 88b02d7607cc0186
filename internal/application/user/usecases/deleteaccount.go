package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/application/user/helpers"
	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type DeleteAccountCommand struct {
	UserID string
}

// DeleteAccountUseCase removes the user, their todolists and tasks, and every session.
type DeleteAccountUseCase struct {
	userRepo     user.Repository
	todolistRepo todolist.Repository
	sessions     *helpers.SessionStore
	tx           Transactor
	logger       logger.Interface
}

func NewDeleteAccountUseCase(
	userRepo user.Repository,
	todolistRepo todolist.Repository,
	sessions *helpers.SessionStore,
	tx Transactor,
	logger logger.Interface,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:     userRepo,
		todolistRepo: todolistRepo,
		sessions:     sessions,
		tx:           tx,
		logger:       logger,
	}
}

func (uc *DeleteAccountUseCase) Execute(ctx context.Context, cmd DeleteAccountCommand) error {
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.todolistRepo.DeleteByOwner(ctx, cmd.UserID); err != nil {
			return err
		}
		return uc.userRepo.Delete(ctx, cmd.UserID)
	})
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewUnauthenticatedError()
		}
		uc.logger.Errorw("failed to delete account", "user_id", cmd.UserID, "error", err)
		return errors.NewOperationFailedError()
	}

	// Sessions may live outside the SQL database, so they go after the commit.
	count, err := uc.sessions.DeleteAllForUser(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("account deleted but sessions remain", "user_id", cmd.UserID, "error", err)
		return errors.NewOperationFailedError()
	}

	uc.logger.Infow("account deleted", "user_id", cmd.UserID, "sessions_revoked", count)
	return nil
}
