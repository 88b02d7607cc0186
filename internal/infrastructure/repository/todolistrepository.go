package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/infrastructure/persistence/mappers"
	"github.com/tasknest/tasknest/internal/infrastructure/persistence/models"
	"github.com/tasknest/tasknest/internal/shared/db"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type TodolistRepository struct {
	db     *gorm.DB
	txMgr  *db.TransactionManager
	mapper mappers.TodolistMapper
	logger logger.Interface
}

func NewTodolistRepository(gdb *gorm.DB, logger logger.Interface) todolist.Repository {
	return &TodolistRepository{
		db:     gdb,
		txMgr:  db.NewTransactionManager(gdb),
		mapper: mappers.NewTodolistMapper(),
		logger: logger,
	}
}

func (r *TodolistRepository) Create(ctx context.Context, list *todolist.Todolist) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.ToModel(list)).Error; err != nil {
		r.logger.Errorw("failed to create todolist", "owner_id", list.OwnerID(), "error", err)
		return fmt.Errorf("failed to create todolist: %w", err)
	}
	return nil
}

func (r *TodolistRepository) GetByID(ctx context.Context, id string) (*todolist.Todolist, error) {
	var model models.TodolistModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, todolist.NewTodolistNotFoundError()
		}
		return nil, fmt.Errorf("failed to get todolist: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *TodolistRepository) ListByOwner(ctx context.Context, ownerID string) ([]*todolist.Todolist, error) {
	var listModels []models.TodolistModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OrderedBy("created_at ASC, id ASC")).
		Where("owner_id = ?", ownerID).
		Find(&listModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list todolists: %w", err)
	}

	lists := make([]*todolist.Todolist, len(listModels))
	for i := range listModels {
		lists[i] = r.mapper.ToDomain(&listModels[i])
	}
	return lists, nil
}

func (r *TodolistRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.TodolistModel{}).
		Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count todolists: %w", err)
	}
	return count, nil
}

func (r *TodolistRepository) Update(ctx context.Context, list *todolist.Todolist) error {
	model := r.mapper.ToModel(list)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.TodolistModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"title":       model.Title,
			"description": model.Description,
			"image_url":   model.ImageURL,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update todolist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return todolist.NewTodolistNotFoundError()
	}
	return nil
}

func (r *TodolistRepository) Delete(ctx context.Context, id string) error {
	return r.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := db.GetTxFromContext(ctx, r.db)
		if err := tx.Where("todolist_id = ?", id).Delete(&models.TaskModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete tasks of todolist: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.TodolistModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete todolist: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return todolist.NewTodolistNotFoundError()
		}
		return nil
	})
}

func (r *TodolistRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	return r.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := db.GetTxFromContext(ctx, r.db)
		owned := tx.Model(&models.TodolistModel{}).Select("id").Where("owner_id = ?", ownerID)
		if err := tx.Where("todolist_id IN (?)", owned).Delete(&models.TaskModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete tasks of owner: %w", err)
		}
		if err := tx.Where("owner_id = ?", ownerID).Delete(&models.TodolistModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete todolists of owner: %w", err)
		}
		return nil
	})
}
