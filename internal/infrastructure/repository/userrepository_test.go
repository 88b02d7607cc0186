package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/domain/user"
	vo "github.com/tasknest/tasknest/internal/domain/user/valueobjects"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

func newTestUser(t *testing.T, email string) *user.User {
	t.Helper()
	e, err := vo.NewEmail(email)
	require.NoError(t, err)
	u, err := user.NewUser(e, "$2a$04$hash")
	require.NoError(t, err)
	return u
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t), logger.NewNop())

	u := newTestUser(t, "Alice@Example.com")
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByEmail(ctx, u.Email().String())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID(), got.ID())
	assert.Equal(t, "$2a$04$hash", got.PasswordHash())

	exists, err := repo.ExistsByEmail(ctx, u.Email().String())
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, got.ChangePassword("$2a$04$other"))
	require.NoError(t, repo.Update(ctx, got))

	byID, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, "$2a$04$other", byID.PasswordHash())

	require.NoError(t, repo.Delete(ctx, u.ID()))
	missing, err := repo.GetByID(ctx, u.ID())
	assert.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.Delete(ctx, u.ID())
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUserRepository_DuplicateEmailIsConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t), logger.NewNop())

	require.NoError(t, repo.Create(ctx, newTestUser(t, "bob@example.com")))

	err := repo.Create(ctx, newTestUser(t, "BOB@example.com"))
	assert.True(t, errors.IsConflictError(err), "got %v", err)
}
