package errors

import "errors"

var (
	ErrTodoNotFound       = errors.New("todo not found")
	ErrOwnerRequired      = errors.New("owner is required")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title must be at most 100 characters")
	ErrDescriptionTooLong = errors.New("description must be at most 500 characters")
	ErrInvalidTodoStatus  = errors.New("status must be one of pending, in-progress, completed")
	ErrTodoAlreadyExists  = errors.New("todo already exists")
)
