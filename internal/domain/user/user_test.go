package user

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/tasknest/tasknest/internal/domain/user/valueobjects"
	apperrors "github.com/tasknest/tasknest/internal/shared/errors"
)

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }

func (plainHasher) Verify(p, h string) (bool, error) {
	if h == "corrupt" {
		return false, errors.New("malformed hash")
	}
	return h == "h:"+p, nil
}

func TestNewUser(t *testing.T) {
	email, err := vo.NewEmail("User@Test.com")
	require.NoError(t, err)

	u, err := NewUser(email, "h:Password1")
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID())
	assert.Equal(t, "user@test.com", u.Email().String())
	assert.False(t, u.CreatedAt().IsZero())

	_, err = NewUser(nil, "h")
	assert.Error(t, err)
	_, err = NewUser(email, "")
	assert.Error(t, err)
}

func TestUser_VerifyPassword(t *testing.T) {
	email, _ := vo.NewEmail("user@test.com")
	u, _ := NewUser(email, "h:Password1")

	ok, err := u.VerifyPassword("Password1", plainHasher{})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = u.VerifyPassword("WrongPass1", plainHasher{})
	require.NoError(t, err)
	assert.False(t, ok)

	broken, _ := ReconstructUser("usr_x", email, "corrupt", u.CreatedAt(), u.UpdatedAt())
	_, err = broken.VerifyPassword("Password1", plainHasher{})
	assert.Error(t, err)
}

func TestUser_ChangePassword(t *testing.T) {
	email, _ := vo.NewEmail("user@test.com")
	u, _ := NewUser(email, "h:old")

	err := u.ChangePassword("")
	assert.True(t, apperrors.IsValidationError(err))

	require.NoError(t, u.ChangePassword("h:new"))
	assert.Equal(t, "h:new", u.PasswordHash())
}
