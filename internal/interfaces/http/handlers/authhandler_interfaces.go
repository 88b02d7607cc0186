package handlers

import (
	"context"

	userdto "github.com/tasknest/tasknest/internal/application/user/dto"
	"github.com/tasknest/tasknest/internal/application/user/usecases"
)

// Service interfaces for the auth and user handlers - enables unit testing with mocks.

type authService interface {
	Register(ctx context.Context, email, password string) (*userdto.RegisterResponse, error)
	Login(ctx context.Context, cmd usecases.LoginWithPasswordCommand) (*userdto.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*userdto.RefreshResponse, error)
	LogoutAll(ctx context.Context, userID string) (int64, error)
	LogoutOthers(ctx context.Context, userID, refreshToken string) (int64, error)
	CurrentUser(ctx context.Context, userID string) (*userdto.UserResponse, error)
}

type accountService interface {
	CurrentUser(ctx context.Context, userID string) (*userdto.UserResponse, error)
	DeleteAccount(ctx context.Context, userID string) error
}
