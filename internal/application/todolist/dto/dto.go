package dto

import (
	"time"

	"github.com/tasknest/tasknest/internal/domain/todolist"
)

type CreateTodolistRequest struct {
	Title       string `json:"title" binding:"required,notblank,min=3,max=50"`
	Description string `json:"description" binding:"omitempty,min=5,max=500"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,url"`
}

type UpdateTodolistRequest struct {
	Title       *string `json:"title" binding:"omitempty,notblank,min=3,max=50"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty"`
}

type CreateTaskRequest struct {
	TodolistID  string     `json:"todolistId" binding:"required"`
	Title       string     `json:"title" binding:"required,notblank,min=3,max=50"`
	Description string     `json:"description" binding:"omitempty,min=3,max=200"`
	ImageURL    string     `json:"imageUrl" binding:"omitempty,url"`
	Tags        []string   `json:"tags" binding:"omitempty,max=20,dive,max=32"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    int        `json:"priority" binding:"gte=0"`
	Order       int        `json:"order" binding:"gte=0"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,notblank,min=3,max=50"`
	Description *string    `json:"description" binding:"omitempty,max=200"`
	ImageURL    *string    `json:"imageUrl"`
	Tags        *[]string  `json:"tags" binding:"omitempty,max=20,dive,max=32"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
	Priority    *int       `json:"priority" binding:"omitempty,gte=0"`
	Order       *int       `json:"order" binding:"omitempty,gte=0"`
}

// ListTasksQuery holds the optional task filters of GET /tasks/todolist/:todolistId.
type ListTasksQuery struct {
	MinPriority *int `form:"minPriority" binding:"omitempty,gte=0"`
	DueInDays   *int `form:"dueInDays" binding:"omitempty,gte=0"`
}

type TodolistResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	TodolistID  string     `json:"todolistId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Completed   bool       `json:"completed"`
	Order       int        `json:"order"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func ToTodolistResponse(l *todolist.Todolist) *TodolistResponse {
	return &TodolistResponse{
		ID:          l.ID(),
		OwnerID:     l.OwnerID(),
		Title:       l.Title(),
		Description: l.Description(),
		ImageURL:    l.ImageURL(),
		CreatedAt:   l.CreatedAt(),
		UpdatedAt:   l.UpdatedAt(),
	}
}

func ToTodolistResponses(lists []*todolist.Todolist) []*TodolistResponse {
	out := make([]*TodolistResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, ToTodolistResponse(l))
	}
	return out
}

func ToTaskResponse(t *todolist.Task) *TaskResponse {
	tags := t.Tags()
	if tags == nil {
		tags = []string{}
	}
	return &TaskResponse{
		ID:          t.ID(),
		TodolistID:  t.TodolistID(),
		Title:       t.Title(),
		Description: t.Description(),
		ImageURL:    t.ImageURL(),
		Completed:   t.Completed(),
		Order:       t.Order(),
		Priority:    t.Priority(),
		DueDate:     t.DueDate(),
		Tags:        tags,
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func ToTaskResponses(tasks []*todolist.Task) []*TaskResponse {
	out := make([]*TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToTaskResponse(t))
	}
	return out
}
