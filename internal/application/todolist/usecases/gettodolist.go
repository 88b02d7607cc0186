package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type GetTodolistQuery struct {
	TodolistID string
	UserID     string
}

type GetTodolistUseCase struct {
	repo   todolist.Repository
	logger logger.Interface
}

func NewGetTodolistUseCase(repo todolist.Repository, logger logger.Interface) *GetTodolistUseCase {
	return &GetTodolistUseCase{repo: repo, logger: logger}
}

func (uc *GetTodolistUseCase) Execute(ctx context.Context, query GetTodolistQuery) (*todolist.Todolist, error) {
	return loadOwnedTodolist(ctx, uc.repo, uc.logger, query.TodolistID, query.UserID)
}
