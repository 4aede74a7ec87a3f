package storage

import (
	"context"

	"github.com/vintaclectic/RepoRadar/internal/models"
)

// CredentialStorage defines interface for per-account GitHub token persistence.
// At most one token per account: SaveToken has upsert semantics.
type CredentialStorage interface {
	// SaveToken inserts or replaces the account's GitHub token
	SaveToken(ctx context.Context, userID, token string) error

	// GetToken retrieves the account's GitHub token
	// Returns ErrTokenNotFound if no token is stored
	GetToken(ctx context.Context, userID string) (*models.GithubCredential, error)

	// DeleteToken removes the account's GitHub token
	// Deleting an absent token is not an error (idempotent)
	DeleteToken(ctx context.Context, userID string) error
}

// Storage aggregates the three persistence concerns behind one value.
// The sqlite implementation satisfies all of them; the concrete driver is
// chosen once at startup from configuration.
type Storage interface {
	UserStorage
	SessionStorage
	CredentialStorage

	// Close releases the underlying connection
	Close() error
}
