package todolist

import (
	"context"

	"github.com/tasknest/tasknest/internal/application/todolist/dto"
	"github.com/tasknest/tasknest/internal/application/todolist/usecases"
	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/shared/logger"
	"github.com/tasknest/tasknest/internal/shared/services/sanitize"
)

// Service exposes todolist and task operations scoped to the calling user.
type Service struct {
	createListUC *usecases.CreateTodolistUseCase
	listListsUC  *usecases.ListTodolistsUseCase
	getListUC    *usecases.GetTodolistUseCase
	updateListUC *usecases.UpdateTodolistUseCase
	deleteListUC *usecases.DeleteTodolistUseCase
	createTaskUC *usecases.CreateTaskUseCase
	listTasksUC  *usecases.ListTasksUseCase
	getTaskUC    *usecases.GetTaskUseCase
	updateTaskUC *usecases.UpdateTaskUseCase
	deleteTaskUC *usecases.DeleteTaskUseCase
}

func NewService(
	lists todolist.Repository,
	tasks todolist.TaskRepository,
	tx usecases.Transactor,
	maxPerUser int,
	log logger.Interface,
) *Service {
	log = log.Named("todolist")
	sanitizer := sanitize.NewTextSanitizer()
	return &Service{
		createListUC: usecases.NewCreateTodolistUseCase(lists, tx, sanitizer, maxPerUser, log),
		listListsUC:  usecases.NewListTodolistsUseCase(lists, log),
		getListUC:    usecases.NewGetTodolistUseCase(lists, log),
		updateListUC: usecases.NewUpdateTodolistUseCase(lists, sanitizer, log),
		deleteListUC: usecases.NewDeleteTodolistUseCase(lists, log),
		createTaskUC: usecases.NewCreateTaskUseCase(tasks, lists, sanitizer, log),
		listTasksUC:  usecases.NewListTasksUseCase(tasks, lists, log),
		getTaskUC:    usecases.NewGetTaskUseCase(tasks, lists, log),
		updateTaskUC: usecases.NewUpdateTaskUseCase(tasks, lists, sanitizer, log),
		deleteTaskUC: usecases.NewDeleteTaskUseCase(tasks, lists, log),
	}
}

func (s *Service) CreateTodolist(ctx context.Context, userID string, req dto.CreateTodolistRequest) (*dto.TodolistResponse, error) {
	list, err := s.createListUC.Execute(ctx, usecases.CreateTodolistCommand{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return dto.ToTodolistResponse(list), nil
}

func (s *Service) ListTodolists(ctx context.Context, userID string) ([]*dto.TodolistResponse, error) {
	lists, err := s.listListsUC.Execute(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToTodolistResponses(lists), nil
}

func (s *Service) GetTodolist(ctx context.Context, userID, todolistID string) (*dto.TodolistResponse, error) {
	list, err := s.getListUC.Execute(ctx, usecases.GetTodolistQuery{TodolistID: todolistID, UserID: userID})
	if err != nil {
		return nil, err
	}
	return dto.ToTodolistResponse(list), nil
}

func (s *Service) UpdateTodolist(ctx context.Context, userID, todolistID string, req dto.UpdateTodolistRequest) (*dto.TodolistResponse, error) {
	list, err := s.updateListUC.Execute(ctx, usecases.UpdateTodolistCommand{
		TodolistID:  todolistID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return dto.ToTodolistResponse(list), nil
}

func (s *Service) DeleteTodolist(ctx context.Context, userID, todolistID string) error {
	return s.deleteListUC.Execute(ctx, usecases.DeleteTodolistCommand{TodolistID: todolistID, UserID: userID})
}

func (s *Service) CreateTask(ctx context.Context, userID string, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.createTaskUC.Execute(ctx, usecases.CreateTaskCommand{
		UserID:      userID,
		TodolistID:  req.TodolistID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Order:       req.Order,
	})
	if err != nil {
		return nil, err
	}
	return dto.ToTaskResponse(task), nil
}

func (s *Service) ListTasks(ctx context.Context, userID, todolistID string, q dto.ListTasksQuery) ([]*dto.TaskResponse, error) {
	tasks, err := s.listTasksUC.Execute(ctx, usecases.ListTasksQuery{
		UserID:      userID,
		TodolistID:  todolistID,
		MinPriority: q.MinPriority,
		DueInDays:   q.DueInDays,
	})
	if err != nil {
		return nil, err
	}
	return dto.ToTaskResponses(tasks), nil
}

func (s *Service) GetTask(ctx context.Context, userID, taskID string) (*dto.TaskResponse, error) {
	task, err := s.getTaskUC.Execute(ctx, usecases.GetTaskQuery{TaskID: taskID, UserID: userID})
	if err != nil {
		return nil, err
	}
	return dto.ToTaskResponse(task), nil
}

func (s *Service) UpdateTask(ctx context.Context, userID, taskID string, req dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.updateTaskUC.Execute(ctx, usecases.UpdateTaskCommand{
		TaskID:      taskID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
		Priority:    req.Priority,
		Order:       req.Order,
	})
	if err != nil {
		return nil, err
	}
	return dto.ToTaskResponse(task), nil
}

func (s *Service) DeleteTask(ctx context.Context, userID, taskID string) error {
	return s.deleteTaskUC.Execute(ctx, usecases.DeleteTaskCommand{TaskID: taskID, UserID: userID})
}
