package storage

import "context"

// TokenCache defines interface for the local copy of the GitHub token.
// The server-held token is the source of truth; the cache keeps search
// working when the server is unreachable or the user is logged out.
type TokenCache interface {
	// SaveCachedToken stores the GitHub token locally
	SaveCachedToken(ctx context.Context, token string) error

	// GetCachedToken retrieves the locally cached GitHub token
	// Returns ErrTokenNotCached if nothing is cached
	GetCachedToken(ctx context.Context) (string, error)

	// DeleteCachedToken removes the cached token
	// Deleting an absent token is not an error
	DeleteCachedToken(ctx context.Context) error
}
