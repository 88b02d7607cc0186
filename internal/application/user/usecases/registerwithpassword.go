package usecases

import (
	"context"
	"strings"

	"github.com/tasknest/tasknest/internal/domain/user"
	vo "github.com/tasknest/tasknest/internal/domain/user/valueobjects"
	"github.com/tasknest/tasknest/internal/infrastructure/auth"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
)

type RegisterWithPasswordCommand struct {
	Email    string
	Password string
}

type RegisterWithPasswordResult struct {
	User   *user.User
	Tokens *auth.TokenPair
}

// RegisterWithPasswordUseCase creates an account and issues a token pair.
// No session is created; the refresh token becomes usable after the first login.
type RegisterWithPasswordUseCase struct {
	userRepo     user.Repository
	passwords    PasswordService
	tokenService TokenService
	logger       logger.Interface
}

func NewRegisterWithPasswordUseCase(
	userRepo user.Repository,
	passwords PasswordService,
	tokenService TokenService,
	logger logger.Interface,
) *RegisterWithPasswordUseCase {
	return &RegisterWithPasswordUseCase{
		userRepo:     userRepo,
		passwords:    passwords,
		tokenService: tokenService,
		logger:       logger,
	}
}

func (uc *RegisterWithPasswordUseCase) Execute(ctx context.Context, cmd RegisterWithPasswordCommand) (*RegisterWithPasswordResult, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError("Invalid email", err.Error())
	}

	if strength := uc.passwords.ValidateStrength(cmd.Password); !strength.IsValid {
		return nil, errors.NewValidationError("Password does not meet requirements",
			strings.Join(strength.Errors, "; "))
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, errors.NewOperationFailedError()
	}
	if exists {
		return nil, errors.NewEmailInUseError()
	}

	hash, err := uc.passwords.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewOperationFailedError()
	}

	newUser, err := user.NewUser(email, hash)
	if err != nil {
		uc.logger.Errorw("failed to build user", "error", err)
		return nil, errors.NewOperationFailedError()
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		if errors.IsConflictError(err) {
			return nil, errors.NewEmailInUseError()
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, errors.NewOperationFailedError()
	}

	tokens, err := uc.tokenService.GeneratePair(ctx, auth.TokenPayload{Sub: newUser.ID(), Email: email.String()}, 0)
	if err != nil {
		uc.logger.Errorw("failed to issue tokens after registration", "user_id", newUser.ID(), "error", err)
		return nil, errors.NewOperationFailedError()
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID())

	return &RegisterWithPasswordResult{User: newUser, Tokens: tokens}, nil
}
