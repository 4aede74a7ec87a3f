package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/vintaclectic/RepoRadar/internal/models"
	"github.com/vintaclectic/RepoRadar/internal/server/storage"
)

// sessionTokenBytes размер энтропии session token (64 hex символа на выходе)
const sessionTokenBytes = 32

// generateSessionToken создает новый opaque session token.
// Токен не несет claims — вся информация о сессии живет в БД.
func generateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// createSession генерирует токен и сохраняет новую сессию пользователя.
// Token — primary key таблицы sessions; коллизия 32 случайных байт
// практически исключена, но на ошибку insert делаем одну повторную попытку.
func createSession(
	ctx context.Context,
	sessions storage.SessionStorage,
	userID string,
	ttl time.Duration,
) (*models.Session, error) {
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		token, err := generateSessionToken()
		if err != nil {
			return nil, err
		}

		session := &models.Session{
			Token:     token,
			UserID:    userID,
			ExpiresAt: time.Now().Add(ttl),
			CreatedAt: time.Now(),
		}

		if err := sessions.CreateSession(ctx, session); err != nil {
			lastErr = err
			continue
		}

		return session, nil
	}

	return nil, fmt.Errorf("failed to create session: %w", lastErr)
}
