package user

import (
	"fmt"
	"time"

	vo "github.com/tasknest/tasknest/internal/domain/user/valueobjects"
	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/id"
)

// User is the identity aggregate. The password hash is readable only through
// PasswordHash so that DTO mappers never pick it up by accident.
type User struct {
	id           string
	email        *vo.Email
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a user with a freshly generated ID.
func NewUser(email *vo.Email, passwordHash string) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	uid, err := id.NewUserID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	now := biztime.NowUTC()
	return &User{
		id:           uid,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(userID string, email *vo.Email, passwordHash string, createdAt, updatedAt time.Time) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	return &User{
		id:           userID,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() string {
	return u.id
}

func (u *User) Email() *vo.Email {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// VerifyPassword checks plain against the stored hash.
// A mismatch is (false, nil); a malformed hash is an error.
func (u *User) VerifyPassword(plain string, hasher PasswordHasher) (bool, error) {
	if u.passwordHash == "" {
		return false, nil
	}
	return hasher.Verify(plain, u.passwordHash)
}

// ChangePassword replaces the stored hash.
func (u *User) ChangePassword(newHash string) error {
	if newHash == "" {
		return NewDomainError("password hash cannot be empty")
	}
	u.passwordHash = newHash
	u.updatedAt = biztime.NowUTC()
	return nil
}
