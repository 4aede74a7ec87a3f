package storage

import (
	"context"
	"time"
)

// SessionStorage defines interface for storing the user's session on client.
// The session token is opaque: the client never inspects it, only forwards
// it in the X-Session-Token header.
type SessionStorage interface {
	// SaveSession stores session data, replacing any previous session
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession retrieves stored session data
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*SessionData, error)

	// DeleteSession removes stored session data (logout)
	// Deleting an absent session is not an error
	DeleteSession(ctx context.Context) error

	// IsAuthenticated checks if a non-expired session exists
	IsAuthenticated(ctx context.Context) (bool, error)
}

// SessionData represents the locally persisted session
type SessionData struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	SessionToken string `json:"session_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix time
}

// Expired сообщает, истекла ли сессия по локальным часам.
// Финальное слово всегда за сервером: локальная проверка лишь
// избавляет от заведомо бесполезного запроса.
func (s *SessionData) Expired() bool {
	return time.Now().Unix() >= s.ExpiresAt
}
