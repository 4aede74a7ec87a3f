package storage

import (
	"context"

	"github.com/vintaclectic/RepoRadar/internal/models"
)

// SessionStorage defines interface for session persistence
type SessionStorage interface {
	// CreateSession stores a new session
	// Token values are unique; inserting a duplicate token is an error
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSessionIdentity resolves a session token to the owning account's
	// identity, but only while expires_at is strictly in the future.
	// Returns ErrSessionNotFound for unknown or expired tokens.
	GetSessionIdentity(ctx context.Context, token string) (*models.SessionIdentity, error)

	// DeleteSession deletes a session by token value
	// Returns ErrSessionNotFound if the session doesn't exist
	DeleteSession(ctx context.Context, token string) error

	// DeleteExpiredSessions removes all sessions past their expiry
	// Returns number of deleted sessions
	DeleteExpiredSessions(ctx context.Context) (int, error)
}
