package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vintaclectic/RepoRadar/internal/server/handlers"
	"github.com/vintaclectic/RepoRadar/internal/server/storage"
	"github.com/vintaclectic/RepoRadar/pkg/api"
)

// AuthMiddleware создает middleware для проверки session token.
// Токен opaque: валидность определяется только наличием живой сессии в БД
// (expires_at строго в будущем). Продления сессии при использовании нет.
func AuthMiddleware(logger *slog.Logger, sessions storage.SessionStorage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка X-Session-Token
			token := r.Header.Get(api.SessionTokenHeader)
			if token == "" {
				logger.Warn("missing session token header")
				writeError(w, "missing session token", http.StatusUnauthorized)
				return
			}

			// Резолвим сессию в идентичность владельца
			identity, err := sessions.GetSessionIdentity(r.Context(), token)
			if err != nil {
				if errors.Is(err, storage.ErrSessionNotFound) {
					logger.Warn("unknown or expired session token")
					writeError(w, "invalid or expired session", http.StatusUnauthorized)
					return
				}
				logger.Error("failed to resolve session", "error", err)
				writeError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			// Добавляем идентичность в контекст
			ctx := context.WithValue(r.Context(), handlers.IdentityKey, identity)

			logger.Debug("user authenticated",
				"user_id", identity.UserID,
				"username", identity.Username)

			// Передаем запрос дальше с обновленным контекстом
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
