package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userdto "github.com/tasknest/tasknest/internal/application/user/dto"
	"github.com/tasknest/tasknest/internal/application/user/usecases"
	"github.com/tasknest/tasknest/internal/interfaces/http/handlers/testutil"
	"github.com/tasknest/tasknest/internal/shared/config"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/utils"
)

// =====================================================================
// Mock auth service
// =====================================================================

type mockAuthService struct {
	register     *userdto.RegisterResponse
	login        *userdto.LoginResponse
	refresh      *userdto.RefreshResponse
	user         *userdto.UserResponse
	revoked      int64
	err          error
	gotToken     string
	gotPassword  string
	gotLoginCmd  usecases.LoginWithPasswordCommand
	logoutCalled bool
}

func (m *mockAuthService) Register(ctx context.Context, email, password string) (*userdto.RegisterResponse, error) {
	m.gotPassword = password
	return m.register, m.err
}

func (m *mockAuthService) Login(ctx context.Context, cmd usecases.LoginWithPasswordCommand) (*userdto.LoginResponse, error) {
	m.gotLoginCmd = cmd
	return m.login, m.err
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	m.gotToken = refreshToken
	m.logoutCalled = true
	return m.err
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*userdto.RefreshResponse, error) {
	m.gotToken = refreshToken
	return m.refresh, m.err
}

func (m *mockAuthService) LogoutAll(ctx context.Context, userID string) (int64, error) {
	return m.revoked, m.err
}

func (m *mockAuthService) LogoutOthers(ctx context.Context, userID, refreshToken string) (int64, error) {
	m.gotToken = refreshToken
	return m.revoked, m.err
}

func (m *mockAuthService) CurrentUser(ctx context.Context, userID string) (*userdto.UserResponse, error) {
	return m.user, m.err
}

// =====================================================================
// Test helpers
// =====================================================================

func testCookieSettings() utils.CookieSettings {
	return utils.NewCookieSettings(
		config.CookieConfig{Path: "/api/v1/auth", SameSite: "Strict"},
		config.ServerConfig{Mode: "test"},
	)
}

func newTestAuthHandler(svc authService) *AuthHandler {
	return NewAuthHandler(svc, testCookieSettings(), testutil.NewMockLogger())
}

func init() {
	if err := utils.RegisterValidators(); err != nil {
		panic(err)
	}
}

// =====================================================================
// Tests
// =====================================================================

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success returns tokens without cookie", func(t *testing.T) {
		svc := &mockAuthService{register: &userdto.RegisterResponse{
			ID: "usr_1", Email: "a@example.com", AccessToken: "at", RefreshToken: "rt",
		}}
		handler := newTestAuthHandler(svc)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/register",
			RegisterRequest{Email: "a@example.com", Password: "Str0ng!Pass"})
		handler.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Nil(t, testutil.ResponseCookie(w, utils.RefreshTokenCookie))

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.True(t, resp.Success)

		var data userdto.RegisterResponse
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "usr_1", data.ID)
		assert.Equal(t, "rt", data.RefreshToken)
	})

	t.Run("invalid email is rejected before the service", func(t *testing.T) {
		svc := &mockAuthService{}
		handler := newTestAuthHandler(svc)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/register",
			RegisterRequest{Email: "not-an-email", Password: "Str0ng!Pass"})
		handler.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("overlong password reaches the strength check", func(t *testing.T) {
		long := strings.Repeat("a", 200)
		svc := &mockAuthService{err: errors.NewValidationError("password is too weak",
			"Password must not exceed 128 characters; Password must contain at least one number")}
		handler := newTestAuthHandler(svc)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/register",
			RegisterRequest{Email: "a@example.com", Password: long})
		handler.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, long, svc.gotPassword)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Details, "must contain at least one number")
	})

	t.Run("email in use is a conflict", func(t *testing.T) {
		handler := newTestAuthHandler(&mockAuthService{err: errors.NewEmailInUseError()})

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/register",
			RegisterRequest{Email: "a@example.com", Password: "Str0ng!Pass"})
		handler.Register(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success sets refresh cookie", func(t *testing.T) {
		expires := time.Now().Add(7 * 24 * time.Hour).UTC()
		svc := &mockAuthService{login: &userdto.LoginResponse{
			ID: "usr_1", Email: "a@example.com", AccessToken: "at", RefreshToken: "rt",
			ExpiresAt: expires, SessionID: "ses_1", DeviceID: "dev-1",
		}}
		handler := newTestAuthHandler(svc)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/login",
			LoginRequest{Email: "a@example.com", Password: "Str0ng!Pass", DeviceID: "dev-1", RememberMe: true})
		c.Request.Header.Set("User-Agent", "test-agent")
		handler.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		ck := testutil.ResponseCookie(w, utils.RefreshTokenCookie)
		require.NotNil(t, ck)
		assert.Equal(t, "rt", ck.Value)
		assert.True(t, ck.HttpOnly)
		assert.Equal(t, "/api/v1/auth", ck.Path)

		assert.Equal(t, "dev-1", svc.gotLoginCmd.DeviceID)
		assert.True(t, svc.gotLoginCmd.RememberMe)
		assert.Equal(t, "test-agent", svc.gotLoginCmd.UserAgent)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		handler := newTestAuthHandler(&mockAuthService{err: errors.NewInvalidCredentialsError()})

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/login",
			LoginRequest{Email: "a@example.com", Password: "wrong"})
		handler.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, testutil.ResponseCookie(w, utils.RefreshTokenCookie))
	})

	t.Run("observer sees the outcome", func(t *testing.T) {
		var ops []string
		handler := newTestAuthHandler(&mockAuthService{err: errors.NewInvalidCredentialsError()}).
			WithObserver(func(op string, err error) {
				if err != nil {
					ops = append(ops, op+":fail")
				}
			})

		c, _ := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/login",
			LoginRequest{Email: "a@example.com", Password: "wrong"})
		handler.Login(c)

		assert.Equal(t, []string{"login:fail"}, ops)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("token from cookie", func(t *testing.T) {
		svc := &mockAuthService{refresh: &userdto.RefreshResponse{
			AccessToken: "at2", RefreshToken: "rt2", ExpiresAt: time.Now().Add(time.Hour), SessionID: "ses_1",
		}}
		handler := newTestAuthHandler(svc)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/refresh", nil)
		testutil.SetCookie(c, utils.RefreshTokenCookie, "rt1")
		handler.Refresh(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rt1", svc.gotToken)
		ck := testutil.ResponseCookie(w, utils.RefreshTokenCookie)
		require.NotNil(t, ck)
		assert.Equal(t, "rt2", ck.Value)
	})

	t.Run("token from body", func(t *testing.T) {
		svc := &mockAuthService{refresh: &userdto.RefreshResponse{RefreshToken: "rt2", ExpiresAt: time.Now().Add(time.Hour)}}
		handler := newTestAuthHandler(svc)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/refresh", RefreshTokenRequest{RefreshToken: "body-token"})
		handler.Refresh(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "body-token", svc.gotToken)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		svc := &mockAuthService{}
		handler := newTestAuthHandler(svc)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/refresh", nil)
		handler.Refresh(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, svc.gotToken)
	})

	t.Run("reused token is rejected", func(t *testing.T) {
		handler := newTestAuthHandler(&mockAuthService{err: errors.NewSessionNotFoundError()})

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/refresh", nil)
		testutil.SetCookie(c, utils.RefreshTokenCookie, "stale")
		handler.Refresh(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &mockAuthService{}
	handler := newTestAuthHandler(svc)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/logout", nil)
	testutil.SetCookie(c, utils.RefreshTokenCookie, "rt1")
	handler.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.logoutCalled)
	ck := testutil.ResponseCookie(w, utils.RefreshTokenCookie)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.Less(t, ck.MaxAge, 0)
}

func TestAuthHandler_LogoutAllAndOthers(t *testing.T) {
	t.Run("logout all clears cookie", func(t *testing.T) {
		handler := newTestAuthHandler(&mockAuthService{revoked: 3})

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/logout-all", nil)
		testutil.SetAuthContext(c, "usr_1")
		handler.LogoutAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), `"revoked":3`))
		require.NotNil(t, testutil.ResponseCookie(w, utils.RefreshTokenCookie))
	})

	t.Run("logout others keeps cookie", func(t *testing.T) {
		svc := &mockAuthService{revoked: 2}
		handler := newTestAuthHandler(svc)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/logout-others", nil)
		testutil.SetAuthContext(c, "usr_1")
		testutil.SetCookie(c, utils.RefreshTokenCookie, "current")
		handler.LogoutOthers(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "current", svc.gotToken)
		assert.Nil(t, testutil.ResponseCookie(w, utils.RefreshTokenCookie))
	})
}
