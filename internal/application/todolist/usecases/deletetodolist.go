package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type DeleteTodolistCommand struct {
	TodolistID string
	UserID     string
}

// DeleteTodolistUseCase removes an owned todolist and its tasks.
type DeleteTodolistUseCase struct {
	repo   todolist.Repository
	logger logger.Interface
}

func NewDeleteTodolistUseCase(repo todolist.Repository, logger logger.Interface) *DeleteTodolistUseCase {
	return &DeleteTodolistUseCase{repo: repo, logger: logger}
}

func (uc *DeleteTodolistUseCase) Execute(ctx context.Context, cmd DeleteTodolistCommand) error {
	if _, err := loadOwnedTodolist(ctx, uc.repo, uc.logger, cmd.TodolistID, cmd.UserID); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, cmd.TodolistID); err != nil {
		return passThrough(uc.logger, "failed to delete todolist", err, "todolist_id", cmd.TodolistID)
	}
	uc.logger.Infow("todolist deleted", "todolist_id", cmd.TodolistID, "user_id", cmd.UserID)
	return nil
}
