package user

import (
	"context"
	"time"

	"github.com/tasknest/tasknest/internal/application/user/dto"
	"github.com/tasknest/tasknest/internal/application/user/helpers"
	"github.com/tasknest/tasknest/internal/application/user/usecases"
	"github.com/tasknest/tasknest/internal/domain/todolist"
	domainUser "github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

// AuthService is the application service that orchestrates the auth use cases.
type AuthService struct {
	registerUC     *usecases.RegisterWithPasswordUseCase
	loginUC        *usecases.LoginWithPasswordUseCase
	logoutUC       *usecases.LogoutUseCase
	refreshUC      *usecases.RefreshTokenUseCase
	logoutAllUC    *usecases.LogoutAllUseCase
	logoutOthersUC *usecases.LogoutOthersUseCase
	authenticateUC *usecases.AuthenticateUseCase
	getUserUC      *usecases.GetUserUseCase
	deleteUC       *usecases.DeleteAccountUseCase
	sessions       *helpers.SessionStore
}

// AuthServiceDeps groups the collaborators of NewAuthService.
type AuthServiceDeps struct {
	UserRepo     domainUser.Repository
	TodolistRepo todolist.Repository
	Sessions     *helpers.SessionStore
	Passwords    usecases.PasswordService
	Tokens       usecases.TokenService
	Tx           usecases.Transactor
	RememberTTL  time.Duration
	Logger       logger.Interface
}

func NewAuthService(d AuthServiceDeps) *AuthService {
	log := d.Logger.Named("auth")
	return &AuthService{
		registerUC:     usecases.NewRegisterWithPasswordUseCase(d.UserRepo, d.Passwords, d.Tokens, log),
		loginUC:        usecases.NewLoginWithPasswordUseCase(d.UserRepo, d.Passwords, d.Tokens, d.Sessions, d.RememberTTL, log),
		logoutUC:       usecases.NewLogoutUseCase(d.Tokens, d.Sessions, log),
		refreshUC:      usecases.NewRefreshTokenUseCase(d.UserRepo, d.Tokens, d.Sessions, log),
		logoutAllUC:    usecases.NewLogoutAllUseCase(d.Sessions, log),
		logoutOthersUC: usecases.NewLogoutOthersUseCase(d.Tokens, d.Sessions, log),
		authenticateUC: usecases.NewAuthenticateUseCase(d.UserRepo, d.Tokens, log),
		getUserUC:      usecases.NewGetUserUseCase(d.UserRepo, log),
		deleteUC:       usecases.NewDeleteAccountUseCase(d.UserRepo, d.TodolistRepo, d.Sessions, d.Tx, log),
		sessions:       d.Sessions,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*dto.RegisterResponse, error) {
	res, err := s.registerUC.Execute(ctx, usecases.RegisterWithPasswordCommand{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		ID:           res.User.ID(),
		Email:        res.User.Email().String(),
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		ExpiresAt:    res.Tokens.RefreshExpiresAt,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, cmd usecases.LoginWithPasswordCommand) (*dto.LoginResponse, error) {
	res, err := s.loginUC.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		ID:           res.User.ID(),
		Email:        res.User.Email().String(),
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		ExpiresAt:    res.ExpiresAt,
		SessionID:    res.SessionID,
		DeviceID:     res.DeviceID,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.logoutUC.Execute(ctx, usecases.LogoutCommand{RefreshToken: refreshToken})
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	res, err := s.refreshUC.Execute(ctx, usecases.RefreshTokenCommand{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		ExpiresAt:    res.ExpiresAt,
		SessionID:    res.SessionID,
	}, nil
}

func (s *AuthService) LogoutAll(ctx context.Context, userID string) (int64, error) {
	return s.logoutAllUC.Execute(ctx, usecases.LogoutAllCommand{UserID: userID})
}

func (s *AuthService) LogoutOthers(ctx context.Context, userID, refreshToken string) (int64, error) {
	return s.logoutOthersUC.Execute(ctx, usecases.LogoutOthersCommand{UserID: userID, RefreshToken: refreshToken})
}

// Authenticate reports whether accessToken belongs to a live user.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*dto.UserResponse, error) {
	res, err := s.authenticateUC.Execute(ctx, usecases.AuthenticateCommand{AccessToken: accessToken})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(res.User), nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := s.getUserUC.ExecuteByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(u), nil
}

func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	return s.deleteUC.Execute(ctx, usecases.DeleteAccountCommand{UserID: userID})
}

// Execute purges expired sessions. It lets the service run as a scheduled batch job.
func (s *AuthService) Execute(ctx context.Context) (int, error) {
	n, err := s.sessions.PurgeExpired(ctx)
	return int(n), err
}
