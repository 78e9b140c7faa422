package booking

import "errors"

var (
	ErrNotFound          = errors.New("booking not found")
	ErrForbidden         = errors.New("actor may not apply this transition")
	ErrInvalidStatus     = errors.New("unknown booking status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("booking was modified concurrently")
	ErrValidation        = errors.New("validation error")
)
