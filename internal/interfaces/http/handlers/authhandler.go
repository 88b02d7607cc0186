package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasknest/tasknest/internal/application/user/usecases"
	"github.com/tasknest/tasknest/internal/interfaces/http/middleware"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
	"github.com/tasknest/tasknest/internal/shared/utils"
)

type AuthHandler struct {
	service authService
	cookies utils.CookieSettings
	observe func(operation string, err error)
	logger  logger.Interface
}

func NewAuthHandler(service authService, cookies utils.CookieSettings, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookies: cookies,
		observe: func(string, error) {},
		logger:  logger,
	}
}

// WithObserver reports the outcome of every auth operation, e.g. to metrics.
func (h *AuthHandler) WithObserver(fn func(operation string, err error)) *AuthHandler {
	if fn != nil {
		h.observe = fn
	}
	return h
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email,max=255"`
	Password   string `json:"password" binding:"required,max=128"`
	DeviceID   string `json:"deviceId" binding:"omitempty,max=64"`
	RememberMe bool   `json:"rememberMe"`
}

// RefreshTokenRequest lets non-browser clients send the refresh token in the
// body; browsers rely on the refreshToken cookie.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	h.observe("register", err)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, resp, "registration successful")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), usecases.LoginWithPasswordCommand{
		Email:      req.Email,
		Password:   req.Password,
		DeviceID:   req.DeviceID,
		RememberMe: req.RememberMe,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	h.observe("login", err)
	if err != nil {
		if errors.IsSecurityEvent(err) {
			h.logger.Infow("login rejected", "client_ip", c.ClientIP())
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetRefreshTokenCookie(c, h.cookies, resp.RefreshToken, resp.ExpiresAt)
	utils.SuccessResponse(c, http.StatusOK, "login successful", resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	token, ok := h.refreshToken(c)
	if !ok {
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), token)
	h.observe("refresh", err)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetRefreshTokenCookie(c, h.cookies, resp.RefreshToken, resp.ExpiresAt)
	utils.SuccessResponse(c, http.StatusOK, "token refreshed", resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := h.refreshToken(c)
	if !ok {
		return
	}

	err := h.service.Logout(c.Request.Context(), token)
	h.observe("logout", err)
	// The cookie is stale either way.
	utils.ClearRefreshTokenCookie(c, h.cookies)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}

func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID := c.GetString(middleware.ContextKeyUserID)

	revoked, err := h.service.LogoutAll(c.Request.Context(), userID)
	h.observe("logout_all", err)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ClearRefreshTokenCookie(c, h.cookies)
	utils.SuccessResponse(c, http.StatusOK, "all sessions revoked", gin.H{"revoked": revoked})
}

func (h *AuthHandler) LogoutOthers(c *gin.Context) {
	token, ok := h.refreshToken(c)
	if !ok {
		return
	}
	userID := c.GetString(middleware.ContextKeyUserID)

	revoked, err := h.service.LogoutOthers(c.Request.Context(), userID, token)
	h.observe("logout_others", err)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "other sessions revoked", gin.H{"revoked": revoked})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context(), c.GetString(middleware.ContextKeyUserID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", user)
}

// refreshToken reads the token from the cookie, falling back to the JSON body.
// It writes the error response itself when no token is present.
func (h *AuthHandler) refreshToken(c *gin.Context) (string, bool) {
	if token := utils.RefreshTokenFromCookie(c); token != "" {
		return token, true
	}

	var req RefreshTokenRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, utils.BindingError(err))
			return "", false
		}
	}
	if req.RefreshToken == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("refresh token is required"))
		return "", false
	}
	return req.RefreshToken, true
}
