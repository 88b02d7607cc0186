package handlers

import (
	"context"

	"github.com/tasknest/tasknest/internal/application/todolist/dto"
)

// todolistService is the subset of the todolist application service used by
// TodolistHandler and TaskHandler.
type todolistService interface {
	CreateTodolist(ctx context.Context, userID string, req dto.CreateTodolistRequest) (*dto.TodolistResponse, error)
	ListTodolists(ctx context.Context, userID string) ([]*dto.TodolistResponse, error)
	GetTodolist(ctx context.Context, userID, todolistID string) (*dto.TodolistResponse, error)
	UpdateTodolist(ctx context.Context, userID, todolistID string, req dto.UpdateTodolistRequest) (*dto.TodolistResponse, error)
	DeleteTodolist(ctx context.Context, userID, todolistID string) error

	CreateTask(ctx context.Context, userID string, req dto.CreateTaskRequest) (*dto.TaskResponse, error)
	ListTasks(ctx context.Context, userID, todolistID string, q dto.ListTasksQuery) ([]*dto.TaskResponse, error)
	GetTask(ctx context.Context, userID, taskID string) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, userID, taskID string, req dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}
