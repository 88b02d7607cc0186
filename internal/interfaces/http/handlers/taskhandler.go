package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasknest/tasknest/internal/application/todolist/dto"
	"github.com/tasknest/tasknest/internal/interfaces/http/middleware"
	"github.com/tasknest/tasknest/internal/shared/id"
	"github.com/tasknest/tasknest/internal/shared/logger"
	"github.com/tasknest/tasknest/internal/shared/utils"
)

type TaskHandler struct {
	service todolistService
	logger  logger.Interface
}

func NewTaskHandler(service todolistService, logger logger.Interface) *TaskHandler {
	return &TaskHandler{service: service, logger: logger}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), c.GetString(middleware.ContextKeyUserID), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, task, "task created")
}

// ListByTodolist handles GET /tasks/todolist/:todolistId with optional
// minPriority and dueInDays filters.
func (h *TaskHandler) ListByTodolist(c *gin.Context) {
	todolistID, err := utils.ParseSIDParam(c, "todolistId", id.PrefixTodolist, "todolist")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var q dto.ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), c.GetString(middleware.ContextKeyUserID), todolistID, q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	taskID, err := utils.ParseSIDParam(c, "id", id.PrefixTask, "task")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	task, err := h.service.GetTask(c.Request.Context(), c.GetString(middleware.ContextKeyUserID), taskID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := utils.ParseSIDParam(c, "id", id.PrefixTask, "task")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	task, err := h.service.UpdateTask(c.Request.Context(), c.GetString(middleware.ContextKeyUserID), taskID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "task updated", task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := utils.ParseSIDParam(c, "id", id.PrefixTask, "task")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), c.GetString(middleware.ContextKeyUserID), taskID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
