package usecases

import (
	"context"
	"time"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/shared/logger"
	"github.com/tasknest/tasknest/internal/shared/services/sanitize"
)

type CreateTaskCommand struct {
	UserID      string
	TodolistID  string
	Title       string
	Description string
	ImageURL    string
	Tags        []string
	DueDate     *time.Time
	Priority    int
	Order       int
}

type CreateTaskUseCase struct {
	tasks     todolist.TaskRepository
	lists     todolist.Repository
	sanitizer sanitize.TextSanitizer
	logger    logger.Interface
}

func NewCreateTaskUseCase(
	tasks todolist.TaskRepository,
	lists todolist.Repository,
	sanitizer sanitize.TextSanitizer,
	logger logger.Interface,
) *CreateTaskUseCase {
	return &CreateTaskUseCase{tasks: tasks, lists: lists, sanitizer: sanitizer, logger: logger}
}

func (uc *CreateTaskUseCase) Execute(ctx context.Context, cmd CreateTaskCommand) (*todolist.Task, error) {
	if _, err := loadOwnedTodolist(ctx, uc.lists, uc.logger, cmd.TodolistID, cmd.UserID); err != nil {
		return nil, err
	}

	task, err := todolist.NewTask(cmd.TodolistID, todolist.TaskFields{
		Title:       uc.sanitizer.Text(cmd.Title),
		Description: uc.sanitizer.Text(cmd.Description),
		ImageURL:    cmd.ImageURL,
		Order:       cmd.Order,
		Priority:    cmd.Priority,
		DueDate:     cmd.DueDate,
		Tags:        uc.sanitizer.Strings(cmd.Tags),
	})
	if err != nil {
		return nil, passThrough(uc.logger, "failed to build task", err, "todolist_id", cmd.TodolistID)
	}

	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, passThrough(uc.logger, "failed to create task", err, "todolist_id", cmd.TodolistID)
	}
	return task, nil
}
