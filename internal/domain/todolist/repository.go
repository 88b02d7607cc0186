package todolist

import (
	"context"
	"time"
)

// Repository persists todolists. GetByID returns a not-found error when absent.
type Repository interface {
	Create(ctx context.Context, list *Todolist) error
	GetByID(ctx context.Context, id string) (*Todolist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Todolist, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	Update(ctx context.Context, list *Todolist) error
	// Delete removes the todolist together with its tasks.
	Delete(ctx context.Context, id string) error
	// DeleteByOwner removes every todolist (and task) of the owner.
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// TaskFilter narrows ListByTodolist. Zero values disable a criterion.
type TaskFilter struct {
	MinPriority *int
	DueFrom     *time.Time
	DueTo       *time.Time
}

// TaskRepository persists tasks. GetByID returns a not-found error when absent.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	// ListByTodolist returns tasks ordered by Order ascending.
	ListByTodolist(ctx context.Context, todolistID string, filter TaskFilter) ([]*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error
}
