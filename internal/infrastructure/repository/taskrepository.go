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
)

type TaskRepository struct {
	db     *gorm.DB
	mapper mappers.TodolistMapper
}

func NewTaskRepository(gdb *gorm.DB) todolist.TaskRepository {
	return &TaskRepository{
		db:     gdb,
		mapper: mappers.NewTodolistMapper(),
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *todolist.Task) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.TaskToModel(task)).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*todolist.Task, error) {
	var model models.TaskModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, todolist.NewTaskNotFoundError()
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return r.mapper.TaskToDomain(&model), nil
}

func (r *TaskRepository) ListByTodolist(ctx context.Context, todolistID string, filter todolist.TaskFilter) ([]*todolist.Task, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OrderedBy("sort_order ASC, created_at ASC, id ASC")).
		Where("todolist_id = ?", todolistID)

	if filter.MinPriority != nil {
		query = query.Where("priority >= ?", *filter.MinPriority)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", filter.DueFrom.UTC())
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", filter.DueTo.UTC())
	}

	var taskModels []models.TaskModel
	if err := query.Find(&taskModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*todolist.Task, len(taskModels))
	for i := range taskModels {
		tasks[i] = r.mapper.TaskToDomain(&taskModels[i])
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *todolist.Task) error {
	model := r.mapper.TaskToModel(task)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.TaskModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"title":       model.Title,
			"description": model.Description,
			"image_url":   model.ImageURL,
			"completed":   model.Completed,
			"sort_order":  model.SortOrder,
			"priority":    model.Priority,
			"due_date":    model.DueDate,
			"tags":        model.Tags,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return todolist.NewTaskNotFoundError()
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.TaskModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return todolist.NewTaskNotFoundError()
	}
	return nil
}
