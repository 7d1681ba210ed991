package model

import "errors"

var (
	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")

	// Token related errors
	ErrTokenMissing = errors.New("token not provided")
	ErrTokenInvalid = errors.New("invalid or expired token")
)
