package location

import "errors"

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrNotCreator       = errors.New("user is not the creator of this location")
	ErrCreatorExists    = errors.New("location already has a creator")
	ErrInvalidInput     = errors.New("invalid input")
)
