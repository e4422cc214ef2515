package scoring

import "errors"

var (
	// ErrEmptyInput is returned when scoring is requested without resume text.
	ErrEmptyInput = errors.New("resume text is empty")
	// ErrInvalidConfig wraps configuration validation failures.
	ErrInvalidConfig = errors.New("invalid scoring config")
)
