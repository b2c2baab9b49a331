package repository

import "errors"

// Common repository errors
var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound is returned when a task is not found, or is not owned by the given user
	ErrTaskNotFound = errors.New("task not found")
)
