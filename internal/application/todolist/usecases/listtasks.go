package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type ListTasksQuery struct {
	UserID     string
	TodolistID string
	// MinPriority keeps tasks with priority >= the value.
	MinPriority *int
	// DueInDays keeps tasks due between now and now + N days.
	DueInDays *int
}

type ListTasksUseCase struct {
	tasks  todolist.TaskRepository
	lists  todolist.Repository
	logger logger.Interface
}

func NewListTasksUseCase(tasks todolist.TaskRepository, lists todolist.Repository, logger logger.Interface) *ListTasksUseCase {
	return &ListTasksUseCase{tasks: tasks, lists: lists, logger: logger}
}

func (uc *ListTasksUseCase) Execute(ctx context.Context, query ListTasksQuery) ([]*todolist.Task, error) {
	if query.MinPriority != nil && *query.MinPriority < 0 {
		return nil, errors.NewValidationError("minPriority must not be negative")
	}
	if query.DueInDays != nil && *query.DueInDays < 0 {
		return nil, errors.NewValidationError("dueInDays must not be negative")
	}

	if _, err := loadOwnedTodolist(ctx, uc.lists, uc.logger, query.TodolistID, query.UserID); err != nil {
		return nil, err
	}

	filter := todolist.TaskFilter{MinPriority: query.MinPriority}
	if query.DueInDays != nil {
		from := biztime.NowUTC()
		to := biztime.DaysFromNow(*query.DueInDays)
		filter.DueFrom, filter.DueTo = &from, &to
	}

	tasks, err := uc.tasks.ListByTodolist(ctx, query.TodolistID, filter)
	if err != nil {
		return nil, passThrough(uc.logger, "failed to list tasks", err, "todolist_id", query.TodolistID)
	}
	return tasks, nil
}
