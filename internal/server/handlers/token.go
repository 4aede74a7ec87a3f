package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vintaclectic/RepoRadar/internal/server/storage"
	"github.com/vintaclectic/RepoRadar/internal/validation"
	"github.com/vintaclectic/RepoRadar/pkg/api"
)

// TokenHandler обрабатывает запросы к сохраненному GitHub токену.
// Все маршруты за auth middleware: identity берется из контекста.
type TokenHandler struct {
	logger      *slog.Logger
	credentials storage.CredentialStorage
}

// NewTokenHandler создает новый handler для GitHub токенов
func NewTokenHandler(logger *slog.Logger, credentials storage.CredentialStorage) *TokenHandler {
	return &TokenHandler{
		logger:      logger,
		credentials: credentials,
	}
}

// Save обрабатывает POST /api/token/save
// Сохраняет GitHub токен аккаунта (upsert)
func (h *TokenHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := IdentityFromContext(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "identity missing in authenticated route", slog.Any("error", err))
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.SaveTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode save token request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Формат проверяется до обращения к хранилищу
	if err := validation.ValidateGithubToken(req.Token); err != nil {
		h.logger.WarnContext(ctx, "invalid github token format", slog.String("user_id", identity.UserID))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.credentials.SaveToken(ctx, identity.UserID, req.Token); err != nil {
		h.logger.ErrorContext(ctx, "failed to save github token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "github token saved", slog.String("user_id", identity.UserID))

	h.sendJSON(w, api.MessageResponse{Message: "Token saved"}, http.StatusOK)
}

// Get обрабатывает GET /api/token/get
// Возвращает сохраненный токен или null, если токена нет
func (h *TokenHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := IdentityFromContext(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "identity missing in authenticated route", slog.Any("error", err))
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	cred, err := h.credentials.GetToken(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			// Отсутствие токена не ошибка: token = null
			h.sendJSON(w, api.TokenResponse{Token: nil}, http.StatusOK)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get github token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, api.TokenResponse{Token: &cred.Token}, http.StatusOK)
}

// Delete обрабатывает DELETE /api/token/delete
// Удаление идемпотентно: отсутствие токена тоже 200
func (h *TokenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := IdentityFromContext(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "identity missing in authenticated route", slog.Any("error", err))
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.credentials.DeleteToken(ctx, identity.UserID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete github token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "github token deleted", slog.String("user_id", identity.UserID))

	h.sendJSON(w, api.MessageResponse{Message: "Token deleted"}, http.StatusOK)
}

// sendJSON отправляет JSON ответ
func (h *TokenHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *TokenHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
