package storage

import (
	"context"

	"github.com/vintaclectic/RepoRadar/internal/models"
)

// UserStorage defines interface for account persistence
type UserStorage interface {
	// CreateUser creates a new account
	// Returns ErrUserAlreadyExists if username or email is taken
	CreateUser(ctx context.Context, user *models.User) error

	// FindUser retrieves an account by username OR email,
	// a single identifier field serves both
	// Returns ErrUserNotFound if no account matches
	FindUser(ctx context.Context, identifier string) (*models.User, error)

	// GetUserByID retrieves an account by ID
	// Returns ErrUserNotFound if account doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}
