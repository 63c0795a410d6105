package repository

import "errors"

// Common repository errors
var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrTagNotFound is returned when a tag is not found
	ErrTagNotFound = errors.New("tag not found")

	// ErrNoteNotFound is returned when a note is not found
	ErrNoteNotFound = errors.New("note not found")

	// ErrTodoListNotFound is returned when a to-do list is not found
	ErrTodoListNotFound = errors.New("todo list not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")
)
