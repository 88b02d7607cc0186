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

// TodolistHandler serves /todolists. Every route requires authentication.
type TodolistHandler struct {
	service todolistService
	logger  logger.Interface
}

func NewTodolistHandler(service todolistService, logger logger.Interface) *TodolistHandler {
	return &TodolistHandler{service: service, logger: logger}
}

func (h *TodolistHandler) Create(c *gin.Context) {
	var req dto.CreateTodolistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	list, err := h.service.CreateTodolist(c.Request.Context(), c.GetString(middleware.ContextKeyUserID), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, list, "todolist created")
}

func (h *TodolistHandler) List(c *gin.Context) {
	lists, err := h.service.ListTodolists(c.Request.Context(), c.GetString(middleware.ContextKeyUserID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", lists)
}

func (h *TodolistHandler) Get(c *gin.Context) {
	todolistID, err := utils.ParseSIDParam(c, "id", id.PrefixTodolist, "todolist")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	list, err := h.service.GetTodolist(c.Request.Context(), c.GetString(middleware.ContextKeyUserID), todolistID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", list)
}

func (h *TodolistHandler) Update(c *gin.Context) {
	todolistID, err := utils.ParseSIDParam(c, "id", id.PrefixTodolist, "todolist")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateTodolistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	list, err := h.service.UpdateTodolist(c.Request.Context(), c.GetString(middleware.ContextKeyUserID), todolistID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "todolist updated", list)
}

// Delete removes the list together with its tasks.
func (h *TodolistHandler) Delete(c *gin.Context) {
	todolistID, err := utils.ParseSIDParam(c, "id", id.PrefixTodolist, "todolist")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.DeleteTodolist(c.Request.Context(), c.GetString(middleware.ContextKeyUserID), todolistID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
