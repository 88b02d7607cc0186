package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type ListTodolistsUseCase struct {
	repo   todolist.Repository
	logger logger.Interface
}

func NewListTodolistsUseCase(repo todolist.Repository, logger logger.Interface) *ListTodolistsUseCase {
	return &ListTodolistsUseCase{repo: repo, logger: logger}
}

func (uc *ListTodolistsUseCase) Execute(ctx context.Context, ownerID string) ([]*todolist.Todolist, error) {
	lists, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, passThrough(uc.logger, "failed to list todolists", err, "owner_id", ownerID)
	}
	return lists, nil
}
