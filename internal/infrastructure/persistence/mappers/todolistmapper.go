package mappers

import (
	"gorm.io/datatypes"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/infrastructure/persistence/models"
)

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// TodolistMapper converts todolists and their tasks.
type TodolistMapper struct{}

func NewTodolistMapper() TodolistMapper {
	return TodolistMapper{}
}

func (TodolistMapper) ToModel(list *todolist.Todolist) *models.TodolistModel {
	return &models.TodolistModel{
		ID:          list.ID(),
		OwnerID:     list.OwnerID(),
		Title:       list.Title(),
		Description: nullable(list.Description()),
		ImageURL:    nullable(list.ImageURL()),
		CreatedAt:   list.CreatedAt(),
		UpdatedAt:   list.UpdatedAt(),
	}
}

func (TodolistMapper) ToDomain(m *models.TodolistModel) *todolist.Todolist {
	return todolist.ReconstructTodolist(m.ID, m.OwnerID, m.Title, deref(m.Description), deref(m.ImageURL),
		m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}

func (TodolistMapper) TaskToModel(t *todolist.Task) *models.TaskModel {
	tags := t.Tags()
	if tags == nil {
		tags = []string{}
	}
	return &models.TaskModel{
		ID:          t.ID(),
		TodolistID:  t.TodolistID(),
		Title:       t.Title(),
		Description: nullable(t.Description()),
		ImageURL:    nullable(t.ImageURL()),
		Completed:   t.Completed(),
		SortOrder:   t.Order(),
		Priority:    t.Priority(),
		DueDate:     t.DueDate(),
		Tags:        datatypes.NewJSONSlice(tags),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func (TodolistMapper) TaskToDomain(m *models.TaskModel) *todolist.Task {
	due := m.DueDate
	if due != nil {
		u := due.UTC()
		due = &u
	}
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	return todolist.ReconstructTask(m.ID, m.TodolistID, todolist.TaskFields{
		Title:       m.Title,
		Description: deref(m.Description),
		ImageURL:    deref(m.ImageURL),
		Order:       m.SortOrder,
		Priority:    m.Priority,
		DueDate:     due,
		Tags:        tags,
	}, m.Completed, m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}
