package pet

import "errors"

var (
	ErrPetNotFound  = errors.New("pet not found")
	ErrNotOwner     = errors.New("user does not own this pet")
	ErrInvalidInput = errors.New("invalid input")
)
