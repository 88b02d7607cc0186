package dto

import (
	"time"

	"github.com/tasknest/tasknest/internal/domain/user"
)

// UserResponse is the public view of a user. It never carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID(),
		Email:     u.Email().String(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

// RegisterResponse is returned by registration.
type RegisterResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	// ExpiresAt is the refresh token expiry.
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoginResponse is returned by login.
type LoginResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	SessionID    string    `json:"sessionId"`
	DeviceID     string    `json:"deviceId"`
}

// RefreshResponse is returned by token refresh.
type RefreshResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	SessionID    string    `json:"sessionId"`
}

// RevokedResponse reports how many sessions a bulk logout removed.
type RevokedResponse struct {
	Revoked int64 `json:"revoked"`
}
