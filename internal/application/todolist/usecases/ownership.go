package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

// Transactor runs fn inside a database transaction carried by ctx.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// loadOwnedTodolist returns the todolist if userID owns it. Missing lists yield
// a not-found error, foreign ones a forbidden error.
func loadOwnedTodolist(ctx context.Context, repo todolist.Repository, log logger.Interface, todolistID, userID string) (*todolist.Todolist, error) {
	list, err := repo.GetByID(ctx, todolistID)
	if err != nil {
		return nil, passThrough(log, "failed to load todolist", err, "todolist_id", todolistID)
	}
	if !list.IsOwnedBy(userID) {
		return nil, todolist.NewNotOwnerError("todolist")
	}
	return list, nil
}

// loadOwnedTask resolves ownership through the task's parent todolist.
func loadOwnedTask(ctx context.Context, tasks todolist.TaskRepository, lists todolist.Repository, log logger.Interface, taskID, userID string) (*todolist.Task, error) {
	task, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, passThrough(log, "failed to load task", err, "task_id", taskID)
	}
	list, err := lists.GetByID(ctx, task.TodolistID())
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, todolist.NewTaskNotFoundError()
		}
		return nil, passThrough(log, "failed to load parent todolist", err, "task_id", taskID)
	}
	if !list.IsOwnedBy(userID) {
		return nil, todolist.NewNotOwnerError("task")
	}
	return task, nil
}

// passThrough keeps application errors intact and hides everything else
// behind a generic failure after logging it.
func passThrough(log logger.Interface, msg string, err error, keysAndValues ...interface{}) error {
	if errors.IsAppError(err) {
		return err
	}
	log.Errorw(msg, append(keysAndValues, "error", err)...)
	return errors.NewOperationFailedError()
}
