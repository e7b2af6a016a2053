package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrResetTokenInvalid  = errors.New("reset token invalid")
	ErrResetTokenExpired  = errors.New("reset token expired")
)
