package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasknest/tasknest/internal/interfaces/http/middleware"
	"github.com/tasknest/tasknest/internal/shared/logger"
	"github.com/tasknest/tasknest/internal/shared/utils"
)

type UserHandler struct {
	service accountService
	cookies utils.CookieSettings
	logger  logger.Interface
}

func NewUserHandler(service accountService, cookies utils.CookieSettings, logger logger.Interface) *UserHandler {
	return &UserHandler{service: service, cookies: cookies, logger: logger}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context(), c.GetString(middleware.ContextKeyUserID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", user)
}

// DeleteMe removes the account, its todolists and every session.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID := c.GetString(middleware.ContextKeyUserID)
	if err := h.service.DeleteAccount(c.Request.Context(), userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("account deleted", "user_id", userID)
	utils.ClearRefreshTokenCookie(c, h.cookies)
	utils.SuccessResponse(c, http.StatusOK, "account deleted", nil)
}
