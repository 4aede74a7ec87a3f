package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no session data exists locally
	ErrSessionNotFound = errors.New("session data not found")

	// ErrTokenNotCached indicates that no GitHub token is cached locally
	ErrTokenNotCached = errors.New("github token not cached")
)
