package notification

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("notification not found")
)
