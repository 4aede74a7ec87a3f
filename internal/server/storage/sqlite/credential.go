package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vintaclectic/RepoRadar/internal/models"
	"github.com/vintaclectic/RepoRadar/internal/server/storage"
)

// SaveToken inserts or replaces the account's GitHub token (upsert).
// Одна строка на аккаунт: user_id — primary key таблицы github_tokens.
func (s *Storage) SaveToken(ctx context.Context, userID, token string) error {
	query := `
		INSERT INTO github_tokens (user_id, token, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, userID, token, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save github token: %w", err)
	}

	return nil
}

// GetToken retrieves the account's GitHub token
func (s *Storage) GetToken(ctx context.Context, userID string) (*models.GithubCredential, error) {
	query := `
		SELECT user_id, token, updated_at
		FROM github_tokens
		WHERE user_id = ?
	`

	cred := &models.GithubCredential{}

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&cred.UserID,
		&cred.Token,
		&cred.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get github token: %w", err)
	}

	return cred, nil
}

// DeleteToken removes the account's GitHub token.
// Удаление отсутствующего токена не ошибка — операция идемпотентна.
func (s *Storage) DeleteToken(ctx context.Context, userID string) error {
	query := `DELETE FROM github_tokens WHERE user_id = ?`

	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete github token: %w", err)
	}

	return nil
}
