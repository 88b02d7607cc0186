package todolist

import (
	"fmt"

	"github.com/tasknest/tasknest/internal/shared/errors"
)

func NewTooManyTodolistsError(max int) *errors.AppError {
	return errors.NewLimitExceededError(
		fmt.Sprintf("You have reached the maximum number of todolists (%d)", max))
}

func NewNotOwnerError(resource string) *errors.AppError {
	return errors.NewForbiddenError(fmt.Sprintf("You do not own this %s", resource))
}

func NewTodolistNotFoundError() *errors.AppError {
	return errors.NewNotFoundError("Todolist not found")
}

func NewTaskNotFoundError() *errors.AppError {
	return errors.NewNotFoundError("Task not found")
}
