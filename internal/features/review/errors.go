package review

import "errors"

var (
	ErrNotFound        = errors.New("review not found")
	ErrForbidden       = errors.New("not allowed to perform this action")
	ErrValidation      = errors.New("validation error")
	ErrNotCompleted    = errors.New("booking is not completed")
	ErrAlreadyReviewed = errors.New("booking already reviewed")
)
