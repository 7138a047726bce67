package repository

import "errors"

var (
	// ErrUsernameTaken is returned when a user insert hits the unique
	// constraint on `users.username`.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrNoSuchTask is returned when a task update matches no row, either
	// because the task does not exist or because it belongs to another
	// user. The two cases are deliberately indistinguishable.
	ErrNoSuchTask = errors.New("no such task")

	// ErrEmptyDescription is returned when a task is created with an
	// empty description.
	ErrEmptyDescription = errors.New("task description is empty")
)
