package review

import "errors"

var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrNotWriter        = errors.New("user is not the writer of this review")
	ErrWriterExists     = errors.New("review already has a writer")
	ErrLocationAttached = errors.New("review already targets a location")
	ErrInvalidInput     = errors.New("invalid input")
)
