package usecases

import (
	"context"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/shared/logger"
	"github.com/tasknest/tasknest/internal/shared/services/sanitize"
)

type CreateTodolistCommand struct {
	OwnerID     string
	Title       string
	Description string
	ImageURL    string
}

type CreateTodolistUseCase struct {
	repo       todolist.Repository
	tx         Transactor
	sanitizer  sanitize.TextSanitizer
	maxPerUser int
	logger     logger.Interface
}

func NewCreateTodolistUseCase(
	repo todolist.Repository,
	tx Transactor,
	sanitizer sanitize.TextSanitizer,
	maxPerUser int,
	logger logger.Interface,
) *CreateTodolistUseCase {
	return &CreateTodolistUseCase{
		repo:       repo,
		tx:         tx,
		sanitizer:  sanitizer,
		maxPerUser: maxPerUser,
		logger:     logger,
	}
}

func (uc *CreateTodolistUseCase) Execute(ctx context.Context, cmd CreateTodolistCommand) (*todolist.Todolist, error) {
	list, err := todolist.NewTodolist(
		cmd.OwnerID,
		uc.sanitizer.Text(cmd.Title),
		uc.sanitizer.Text(cmd.Description),
		cmd.ImageURL,
	)
	if err != nil {
		return nil, passThrough(uc.logger, "failed to build todolist", err, "owner_id", cmd.OwnerID)
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		count, err := uc.repo.CountByOwner(ctx, cmd.OwnerID)
		if err != nil {
			return err
		}
		if count >= int64(uc.maxPerUser) {
			return todolist.NewTooManyTodolistsError(uc.maxPerUser)
		}
		return uc.repo.Create(ctx, list)
	})
	if err != nil {
		return nil, passThrough(uc.logger, "failed to create todolist", err, "owner_id", cmd.OwnerID)
	}

	uc.logger.Infow("todolist created", "todolist_id", list.ID(), "owner_id", cmd.OwnerID)
	return list, nil
}
