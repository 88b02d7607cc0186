package user

import "context"

// Repository defines the interface for user data operations.
// Lookups return (nil, nil) when no user matches.
type Repository interface {
	// Create persists a new user; a duplicate email yields a conflict error.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by canonical email, including the password hash
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// Delete removes a user by ID
	Delete(ctx context.Context, id string) error

	// ExistsByEmail checks if a user exists by canonical email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}
