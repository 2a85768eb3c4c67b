package review

import "errors"

var (
	ErrNotFound        = errors.New("review not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("not allowed for this review")
	ErrNotCompleted    = errors.New("booking not completed")
	ErrAlreadyReviewed = errors.New("booking already reviewed")
)
