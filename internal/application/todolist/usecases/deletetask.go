package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type DeleteTaskCommand struct {
	TaskID string
	UserID string
}

type DeleteTaskUseCase struct {
	tasks  todolist.TaskRepository
	lists  todolist.Repository
	logger logger.Interface
}

func NewDeleteTaskUseCase(tasks todolist.TaskRepository, lists todolist.Repository, logger logger.Interface) *DeleteTaskUseCase {
	return &DeleteTaskUseCase{tasks: tasks, lists: lists, logger: logger}
}

func (uc *DeleteTaskUseCase) Execute(ctx context.Context, cmd DeleteTaskCommand) error {
	if _, err := loadOwnedTask(ctx, uc.tasks, uc.lists, uc.logger, cmd.TaskID, cmd.UserID); err != nil {
		return err
	}
	if err := uc.tasks.Delete(ctx, cmd.TaskID); err != nil {
		return passThrough(uc.logger, "failed to delete task", err, "task_id", cmd.TaskID)
	}
	return nil
}
