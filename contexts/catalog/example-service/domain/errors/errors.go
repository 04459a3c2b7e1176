package errors

import "errors"

var (
	ErrExampleNotFound      = errors.New("example not found")
	ErrExampleAlreadyExists = errors.New("example already exists")
	ErrNameRequired         = errors.New("name is required")
	ErrInvalidExampleStatus = errors.New("status must be one of active, inactive")
	ErrStatusRequired       = errors.New("status is required")
	ErrSearchNameRequired   = errors.New("name query parameter is required")
)
