package errors

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskAlreadyExists  = errors.New("task already exists")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title must be at most 100 characters")
	ErrDescriptionTooLong = errors.New("description must be at most 500 characters")
	ErrInvalidTaskStatus  = errors.New("status must be one of pending, in-progress, completed")
	ErrInvalidDueDate     = errors.New("due_date must be an RFC3339 timestamp")
)
