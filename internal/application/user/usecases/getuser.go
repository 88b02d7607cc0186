package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ExecuteByID returns the user or Unauthenticated when the account is gone.
func (uc *GetUserUseCase) ExecuteByID(ctx context.Context, userID string) (*user.User, error) {
	existingUser, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, errors.NewOperationFailedError()
	}
	if existingUser == nil {
		return nil, errors.NewUnauthenticatedError()
	}
	return existingUser, nil
}
