package usecases

import (
	"context"
	"time"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/shared/logger"
	"github.com/tasknest/tasknest/internal/shared/services/sanitize"
)

type UpdateTaskCommand struct {
	TaskID      string
	UserID      string
	Title       *string
	Description *string
	ImageURL    *string
	Tags        *[]string
	DueDate     *time.Time
	Completed   *bool
	Priority    *int
	Order       *int
}

type UpdateTaskUseCase struct {
	tasks     todolist.TaskRepository
	lists     todolist.Repository
	sanitizer sanitize.TextSanitizer
	logger    logger.Interface
}

func NewUpdateTaskUseCase(
	tasks todolist.TaskRepository,
	lists todolist.Repository,
	sanitizer sanitize.TextSanitizer,
	logger logger.Interface,
) *UpdateTaskUseCase {
	return &UpdateTaskUseCase{tasks: tasks, lists: lists, sanitizer: sanitizer, logger: logger}
}

func (uc *UpdateTaskUseCase) Execute(ctx context.Context, cmd UpdateTaskCommand) (*todolist.Task, error) {
	task, err := loadOwnedTask(ctx, uc.tasks, uc.lists, uc.logger, cmd.TaskID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	patch := todolist.TaskPatch{
		Title:       sanitizePtr(uc.sanitizer, cmd.Title),
		Description: sanitizePtr(uc.sanitizer, cmd.Description),
		ImageURL:    cmd.ImageURL,
		Completed:   cmd.Completed,
		Order:       cmd.Order,
		Priority:    cmd.Priority,
		DueDate:     cmd.DueDate,
	}
	if cmd.Tags != nil {
		tags := uc.sanitizer.Strings(*cmd.Tags)
		if tags == nil {
			tags = []string{}
		}
		patch.Tags = &tags
	}

	if err := task.Apply(patch); err != nil {
		return nil, passThrough(uc.logger, "failed to apply task patch", err, "task_id", cmd.TaskID)
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, passThrough(uc.logger, "failed to update task", err, "task_id", cmd.TaskID)
	}
	return task, nil
}
