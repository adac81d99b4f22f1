package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already taken")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrOldPasswordMismatch = errors.New("old password missing or does not match")
	ErrInvalidInput        = errors.New("invalid input")
)
