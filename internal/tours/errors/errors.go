package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrYearNotFound = errors.New("no tour document for year")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrInvalidTimeRange = errors.New("end must not be before start")
)
