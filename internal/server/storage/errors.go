package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that username or email is already taken
	ErrUserAlreadyExists = errors.New("username or email already exists")

	// ErrSessionNotFound indicates that session token was not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrTokenNotFound indicates that no GitHub token is stored for the user
	ErrTokenNotFound = errors.New("github token not found")

	// ErrUnknownDriver indicates that the configured storage driver is not supported
	ErrUnknownDriver = errors.New("unknown storage driver")
)
