package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type GetTaskQuery struct {
	TaskID string
	UserID string
}

type GetTaskUseCase struct {
	tasks  todolist.TaskRepository
	lists  todolist.Repository
	logger logger.Interface
}

func NewGetTaskUseCase(tasks todolist.TaskRepository, lists todolist.Repository, logger logger.Interface) *GetTaskUseCase {
	return &GetTaskUseCase{tasks: tasks, lists: lists, logger: logger}
}

func (uc *GetTaskUseCase) Execute(ctx context.Context, query GetTaskQuery) (*todolist.Task, error) {
	return loadOwnedTask(ctx, uc.tasks, uc.lists, uc.logger, query.TaskID, query.UserID)
}
