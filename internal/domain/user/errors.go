package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("username or email already exists")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrSessionNotFound   = errors.New("session not found")
)
