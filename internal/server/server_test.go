package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintaclectic/RepoRadar/internal/models"
	"github.com/vintaclectic/RepoRadar/internal/server/config"
	"github.com/vintaclectic/RepoRadar/internal/server/storage"
	"github.com/vintaclectic/RepoRadar/pkg/api"
)

// stubStorage реализует storage.Storage в памяти ровно настолько,
// насколько нужно маршрутным тестам
type stubStorage struct {
	identities    map[string]*models.SessionIdentity
	deletedTokens []string
}

func newStubStorage() *stubStorage {
	return &stubStorage{identities: make(map[string]*models.SessionIdentity)}
}

func (s *stubStorage) CreateUser(ctx context.Context, user *models.User) error { return nil }

func (s *stubStorage) FindUser(ctx context.Context, identifier string) (*models.User, error) {
	return nil, storage.ErrUserNotFound
}

func (s *stubStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return nil, storage.ErrUserNotFound
}

func (s *stubStorage) CreateSession(ctx context.Context, session *models.Session) error { return nil }

func (s *stubStorage) GetSessionIdentity(ctx context.Context, token string) (*models.SessionIdentity, error) {
	identity, ok := s.identities[token]
	if !ok {
		return nil, storage.ErrSessionNotFound
	}
	return identity, nil
}

func (s *stubStorage) DeleteSession(ctx context.Context, token string) error {
	s.deletedTokens = append(s.deletedTokens, token)
	if _, ok := s.identities[token]; !ok {
		return storage.ErrSessionNotFound
	}
	delete(s.identities, token)
	return nil
}

func (s *stubStorage) DeleteExpiredSessions(ctx context.Context) (int, error) { return 0, nil }

func (s *stubStorage) SaveToken(ctx context.Context, userID, token string) error { return nil }

func (s *stubStorage) GetToken(ctx context.Context, userID string) (*models.GithubCredential, error) {
	return nil, storage.ErrTokenNotFound
}

func (s *stubStorage) DeleteToken(ctx context.Context, userID string) error { return nil }

func (s *stubStorage) Close() error { return nil }

func newTestServer(store storage.Storage) *Server {
	cfg := &config.Config{}
	cfg.Session.TTL = time.Hour
	cfg.RateLimit.Rate = 100
	cfg.RateLimit.Window = time.Minute

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, logger, store, "test")
}

func TestRoutes_LogoutRequiresSession(t *testing.T) {
	store := newStubStorage()
	store.identities["live-token"] = &models.SessionIdentity{
		UserID: "id-1", Username: "alice", Email: "alice@example.com",
	}
	handler := newTestServer(store).routes()

	t.Run("valid session logs out with 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.Header.Set(api.SessionTokenHeader, "live-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, store.deletedTokens, "live-token")
	})

	t.Run("missing token is a 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown token is a 401, not a silent 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.Header.Set(api.SessionTokenHeader, "dead-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoutes_HealthIsOpen(t *testing.T) {
	handler := newTestServer(newStubStorage()).routes()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
