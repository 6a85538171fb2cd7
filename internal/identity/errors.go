package identity

import "errors"

// Service errors.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateUser      = errors.New("user already exists")
)
