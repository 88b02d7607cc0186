package todolist

import (
	"fmt"
	"time"

	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/id"
)

type Task struct {
	id          string
	todolistID  string
	title       string
	description string
	imageURL    string
	completed   bool
	order       int
	priority    int
	dueDate     *time.Time
	tags        []string
	createdAt   time.Time
	updatedAt   time.Time
}

// TaskFields are the user-settable attributes of a new task.
type TaskFields struct {
	Title       string
	Description string
	ImageURL    string
	Order       int
	Priority    int
	DueDate     *time.Time
	Tags        []string
}

func NewTask(todolistID string, f TaskFields) (*Task, error) {
	if todolistID == "" {
		return nil, fmt.Errorf("todolist ID is required")
	}
	tags, err := validateTaskFields(f.Title, f.Description, f.ImageURL, f.Priority, f.Tags)
	if err != nil {
		return nil, err
	}

	tid, err := id.NewTaskID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate task ID: %w", err)
	}

	now := biztime.NowUTC()
	return &Task{
		id:          tid,
		todolistID:  todolistID,
		title:       f.Title,
		description: f.Description,
		imageURL:    f.ImageURL,
		order:       f.Order,
		priority:    f.Priority,
		dueDate:     utcPtr(f.DueDate),
		tags:        tags,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructTask rebuilds a task from persistence without validation.
func ReconstructTask(taskID, todolistID string, f TaskFields, completed bool, createdAt, updatedAt time.Time) *Task {
	return &Task{
		id:          taskID,
		todolistID:  todolistID,
		title:       f.Title,
		description: f.Description,
		imageURL:    f.ImageURL,
		completed:   completed,
		order:       f.Order,
		priority:    f.Priority,
		dueDate:     f.DueDate,
		tags:        f.Tags,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func validateTaskFields(title, description, imageURL string, priority int, tags []string) ([]string, error) {
	if err := validateLength("title", title, TitleMinLen, TitleMaxLen); err != nil {
		return nil, err
	}
	if description != "" {
		if err := validateLength("description", description, TaskDescriptionMinLen, TaskDescriptionMaxLen); err != nil {
			return nil, err
		}
	}
	if err := validateImageURL(imageURL); err != nil {
		return nil, err
	}
	if priority < 0 {
		return nil, errors.NewValidationError("priority cannot be negative")
	}
	return normalizeTags(tags)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (t *Task) ID() string           { return t.id }
func (t *Task) TodolistID() string   { return t.todolistID }
func (t *Task) Title() string        { return t.title }
func (t *Task) Description() string  { return t.description }
func (t *Task) ImageURL() string     { return t.imageURL }
func (t *Task) Completed() bool      { return t.completed }
func (t *Task) Order() int           { return t.order }
func (t *Task) Priority() int        { return t.priority }
func (t *Task) DueDate() *time.Time  { return t.dueDate }
func (t *Task) Tags() []string       { return t.tags }
func (t *Task) CreatedAt() time.Time { return t.createdAt }
func (t *Task) UpdatedAt() time.Time { return t.updatedAt }

// TaskPatch carries optional field updates; nil means unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	ImageURL    *string
	Tags        *[]string
	Completed   *bool
	Order       *int
	Priority    *int
	DueDate     *time.Time
}

func (t *Task) Apply(p TaskPatch) error {
	title, description, imageURL := t.title, t.description, t.imageURL
	priority, tags := t.priority, t.tags
	if p.Title != nil {
		title = *p.Title
	}
	if p.Description != nil {
		description = *p.Description
	}
	if p.ImageURL != nil {
		imageURL = *p.ImageURL
	}
	if p.Priority != nil {
		priority = *p.Priority
	}
	if p.Tags != nil {
		tags = *p.Tags
	}

	normalized, err := validateTaskFields(title, description, imageURL, priority, tags)
	if err != nil {
		return err
	}

	t.title, t.description, t.imageURL = title, description, imageURL
	t.priority, t.tags = priority, normalized
	if p.Completed != nil {
		t.completed = *p.Completed
	}
	if p.Order != nil {
		t.order = *p.Order
	}
	if p.DueDate != nil {
		t.dueDate = utcPtr(p.DueDate)
	}
	t.updatedAt = biztime.NowUTC()
	return nil
}

// IsDueWithin reports whether the task is due in [from, to].
func (t *Task) IsDueWithin(from, to time.Time) bool {
	if t.dueDate == nil {
		return false
	}
	return !t.dueDate.Before(from) && !t.dueDate.After(to)
}
