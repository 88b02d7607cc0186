// Package todolist holds the todolist and task aggregates. Ownership of a task
// is always resolved through its parent todolist.
package todolist

import (
	"fmt"
	"time"

	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/id"
)

type Todolist struct {
	id          string
	ownerID     string
	title       string
	description string
	imageURL    string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTodolist validates the fields and assigns a new ID.
func NewTodolist(ownerID, title, description, imageURL string) (*Todolist, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner ID is required")
	}
	if err := validateListFields(title, description, imageURL); err != nil {
		return nil, err
	}

	tid, err := id.NewTodolistID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate todolist ID: %w", err)
	}

	now := biztime.NowUTC()
	return &Todolist{
		id:          tid,
		ownerID:     ownerID,
		title:       title,
		description: description,
		imageURL:    imageURL,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTodolist(todolistID, ownerID, title, description, imageURL string, createdAt, updatedAt time.Time) *Todolist {
	return &Todolist{
		id:          todolistID,
		ownerID:     ownerID,
		title:       title,
		description: description,
		imageURL:    imageURL,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func validateListFields(title, description, imageURL string) error {
	if err := validateLength("title", title, TitleMinLen, TitleMaxLen); err != nil {
		return err
	}
	if description != "" {
		if err := validateLength("description", description, ListDescriptionMinLen, ListDescriptionMaxLen); err != nil {
			return err
		}
	}
	return validateImageURL(imageURL)
}

func (t *Todolist) ID() string           { return t.id }
func (t *Todolist) OwnerID() string      { return t.ownerID }
func (t *Todolist) Title() string        { return t.title }
func (t *Todolist) Description() string  { return t.description }
func (t *Todolist) ImageURL() string     { return t.imageURL }
func (t *Todolist) CreatedAt() time.Time { return t.createdAt }
func (t *Todolist) UpdatedAt() time.Time { return t.updatedAt }

func (t *Todolist) IsOwnedBy(userID string) bool {
	return userID != "" && t.ownerID == userID
}

// TodolistPatch carries optional field updates; nil means unchanged.
type TodolistPatch struct {
	Title       *string
	Description *string
	ImageURL    *string
}

// Apply validates the resulting state before mutating the list.
func (t *Todolist) Apply(p TodolistPatch) error {
	title, description, imageURL := t.title, t.description, t.imageURL
	if p.Title != nil {
		title = *p.Title
	}
	if p.Description != nil {
		description = *p.Description
	}
	if p.ImageURL != nil {
		imageURL = *p.ImageURL
	}
	if err := validateListFields(title, description, imageURL); err != nil {
		return err
	}

	t.title, t.description, t.imageURL = title, description, imageURL
	t.updatedAt = biztime.NowUTC()
	return nil
}
