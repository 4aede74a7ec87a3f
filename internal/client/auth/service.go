// Пакет auth управляет сессией клиента: регистрация, вход, выход,
// статус. Session token хранится в локальной bbolt БД и пересылается
// серверу как есть.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vintaclectic/RepoRadar/internal/client/storage"
	"github.com/vintaclectic/RepoRadar/internal/validation"
	"github.com/vintaclectic/RepoRadar/pkg/api"
)

// APIClient описывает серверные вызовы, которые нужны auth сервису
type APIClient interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Logout(ctx context.Context, sessionToken string) error
}

// Service реализует клиентскую сторону аутентификации
type Service struct {
	logger    *slog.Logger
	apiClient APIClient
	sessions  storage.SessionStorage
	tokens    storage.TokenCache
}

// NewService создает auth сервис
func NewService(logger *slog.Logger, apiClient APIClient, sessions storage.SessionStorage, tokens storage.TokenCache) *Service {
	return &Service{
		logger:    logger,
		apiClient: apiClient,
		sessions:  sessions,
		tokens:    tokens,
	}
}

// Register регистрирует пользователя и сохраняет полученную сессию.
// Валидация выполняется локально до похода на сервер: те же правила,
// что и серверные, чтобы не жечь сетевой запрос на заведомый отказ.
func (s *Service) Register(ctx context.Context, username, email, password string) (*storage.SessionData, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	return s.saveSession(ctx, resp)
}

// Login аутентифицируется по username или email и сохраняет сессию
func (s *Service) Login(ctx context.Context, identifier, password string) (*storage.SessionData, error) {
	if identifier == "" {
		return nil, fmt.Errorf("identifier cannot be empty")
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	resp, err := s.apiClient.Login(ctx, api.LoginRequest{
		Identifier: identifier,
		Password:   password,
	})
	if err != nil {
		return nil, err
	}

	return s.saveSession(ctx, resp)
}

// Logout завершает сессию: best-effort запрос на сервер, затем локальная
// очистка — сессия И кэшированный GitHub токен. Недоступность сервера
// не мешает выйти локально.
func (s *Service) Logout(ctx context.Context) error {
	session, err := s.sessions.GetSession(ctx)
	if err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if session != nil {
		if err := s.apiClient.Logout(ctx, session.SessionToken); err != nil {
			// Сервер недоступен или сессия уже умерла — локальный
			// выход все равно происходит
			s.logger.Warn("server logout failed", slog.Any("error", err))
		}
	}

	if err := s.sessions.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if err := s.tokens.DeleteCachedToken(ctx); err != nil {
		return fmt.Errorf("failed to delete cached github token: %w", err)
	}

	return nil
}

// Status возвращает текущую сессию.
// (nil, nil) означает "не аутентифицирован".
func (s *Service) Status(ctx context.Context) (*storage.SessionData, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

// Session возвращает живую сессию или ошибку, если ее нет
func (s *Service) Session(ctx context.Context) (*storage.SessionData, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, fmt.Errorf("not authenticated, run 'reporadar login' first")
		}
		return nil, err
	}
	if session.Expired() {
		return nil, fmt.Errorf("session expired, run 'reporadar login' again")
	}
	return session, nil
}

func (s *Service) saveSession(ctx context.Context, resp *api.AuthResponse) (*storage.SessionData, error) {
	session := &storage.SessionData{
		UserID:       resp.User.ID,
		Username:     resp.User.Username,
		Email:        resp.User.Email,
		SessionToken: resp.SessionToken,
		ExpiresAt:    resp.ExpiresAt,
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}
