package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/shared/logger"
	"github.com/tasknest/tasknest/internal/shared/services/sanitize"
)

type UpdateTodolistCommand struct {
	TodolistID  string
	UserID      string
	Title       *string
	Description *string
	ImageURL    *string
}

type UpdateTodolistUseCase struct {
	repo      todolist.Repository
	sanitizer sanitize.TextSanitizer
	logger    logger.Interface
}

func NewUpdateTodolistUseCase(repo todolist.Repository, sanitizer sanitize.TextSanitizer, logger logger.Interface) *UpdateTodolistUseCase {
	return &UpdateTodolistUseCase{repo: repo, sanitizer: sanitizer, logger: logger}
}

func (uc *UpdateTodolistUseCase) Execute(ctx context.Context, cmd UpdateTodolistCommand) (*todolist.Todolist, error) {
	list, err := loadOwnedTodolist(ctx, uc.repo, uc.logger, cmd.TodolistID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	patch := todolist.TodolistPatch{
		Title:       sanitizePtr(uc.sanitizer, cmd.Title),
		Description: sanitizePtr(uc.sanitizer, cmd.Description),
		ImageURL:    cmd.ImageURL,
	}
	if err := list.Apply(patch); err != nil {
		return nil, passThrough(uc.logger, "failed to apply todolist patch", err, "todolist_id", cmd.TodolistID)
	}

	if err := uc.repo.Update(ctx, list); err != nil {
		return nil, passThrough(uc.logger, "failed to update todolist", err, "todolist_id", cmd.TodolistID)
	}
	return list, nil
}

func sanitizePtr(s sanitize.TextSanitizer, v *string) *string {
	if v == nil {
		return nil
	}
	clean := s.Text(*v)
	return &clean
}
