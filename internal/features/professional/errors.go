package professional

import "errors"

var (
	ErrNotFound   = errors.New("professional not found")
	ErrForbidden  = errors.New("not allowed to modify this profile")
	ErrValidation = errors.New("validation error")
)
