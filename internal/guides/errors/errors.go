package errors

import "errors"

var (
	ErrNotFound = errors.New("guide not found")

	ErrInvalidID = errors.New("invalid guide ID format")

	ErrDuplicateEmail = errors.New("a guide with this email already exists")
)
