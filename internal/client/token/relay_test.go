package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintaclectic/RepoRadar/internal/client/storage"
)

// mockTokenAPI is a mock implementation of APIClient for testing
type mockTokenAPI struct {
	serverToken string
	getErr      error
	saveErr     error
	deleteErr   error
	getCalls    int
	saveCalls   int
	deleteCalls int
}

func (m *mockTokenAPI) SaveGithubToken(ctx context.Context, sessionToken, githubToken string) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.serverToken = githubToken
	return nil
}

func (m *mockTokenAPI) GetGithubToken(ctx context.Context, sessionToken string) (string, error) {
	m.getCalls++
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.serverToken, nil
}

func (m *mockTokenAPI) DeleteGithubToken(ctx context.Context, sessionToken string) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.serverToken = ""
	return nil
}

// mockSessions provides a fixed session or an error
type mockSessions struct {
	session *storage.SessionData
}

func (m *mockSessions) Session(ctx context.Context) (*storage.SessionData, error) {
	if m.session == nil {
		return nil, errors.New("not authenticated")
	}
	return m.session, nil
}

// mockCache is an in-memory TokenCache
type mockCache struct {
	token   string
	saveErr error
}

func (m *mockCache) SaveCachedToken(ctx context.Context, token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *mockCache) GetCachedToken(ctx context.Context) (string, error) {
	if m.token == "" {
		return "", storage.ErrTokenNotCached
	}
	return m.token, nil
}

func (m *mockCache) DeleteCachedToken(ctx context.Context) error {
	m.token = ""
	return nil
}

func liveSession() *mockSessions {
	return &mockSessions{session: &storage.SessionData{
		SessionToken: "sess-1",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
	}}
}

func TestRelay_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("server token wins and refreshes the cache", func(t *testing.T) {
		apiClient := &mockTokenAPI{serverToken: "ghp_server"}
		cache := &mockCache{token: "ghp_stale"}
		relay := NewRelay(apiClient, liveSession(), cache)

		got, source, err := relay.Resolve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ghp_server", got)
		assert.Equal(t, SourceSession, source)
		assert.Equal(t, "ghp_server", cache.token)
	})

	t.Run("session token is pinned for the process lifetime", func(t *testing.T) {
		apiClient := &mockTokenAPI{serverToken: "ghp_server"}
		cache := &mockCache{}
		relay := NewRelay(apiClient, liveSession(), cache)

		_, _, err := relay.Resolve(ctx)
		require.NoError(t, err)
		_, _, err = relay.Resolve(ctx)
		require.NoError(t, err)

		// Второй Resolve не ходит на сервер повторно
		assert.Equal(t, 1, apiClient.getCalls)
	})

	t.Run("fetch failure falls back to cache without clobbering it", func(t *testing.T) {
		apiClient := &mockTokenAPI{getErr: errors.New("server down")}
		cache := &mockCache{token: "ghp_cached"}
		relay := NewRelay(apiClient, liveSession(), cache)

		got, source, err := relay.Resolve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ghp_cached", got)
		assert.Equal(t, SourceCache, source)
		assert.Equal(t, "ghp_cached", cache.token)
	})

	t.Run("no session falls back to cache", func(t *testing.T) {
		apiClient := &mockTokenAPI{serverToken: "ghp_server"}
		cache := &mockCache{token: "ghp_cached"}
		relay := NewRelay(apiClient, &mockSessions{}, cache)

		got, source, err := relay.Resolve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ghp_cached", got)
		assert.Equal(t, SourceCache, source)
		assert.Zero(t, apiClient.getCalls)
	})

	t.Run("nothing anywhere means none, not an error", func(t *testing.T) {
		relay := NewRelay(&mockTokenAPI{}, &mockSessions{}, &mockCache{})

		got, source, err := relay.Resolve(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, SourceNone, source)
	})

	t.Run("server null with empty cache means none", func(t *testing.T) {
		relay := NewRelay(&mockTokenAPI{}, liveSession(), &mockCache{})

		got, source, err := relay.Resolve(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, SourceNone, source)
	})
}

func TestRelay_Store(t *testing.T) {
	ctx := context.Background()

	t.Run("validates format before any call", func(t *testing.T) {
		apiClient := &mockTokenAPI{}
		cache := &mockCache{}
		relay := NewRelay(apiClient, liveSession(), cache)

		err := relay.Store(ctx, "not-a-real-token")
		require.Error(t, err)
		assert.Zero(t, apiClient.saveCalls)
		assert.Empty(t, cache.token)
	})

	t.Run("with session writes server first then cache", func(t *testing.T) {
		apiClient := &mockTokenAPI{}
		cache := &mockCache{}
		relay := NewRelay(apiClient, liveSession(), cache)

		require.NoError(t, relay.Store(ctx, "ghp_new"))
		assert.Equal(t, "ghp_new", apiClient.serverToken)
		assert.Equal(t, "ghp_new", cache.token)
	})

	t.Run("server rejection leaves cache untouched", func(t *testing.T) {
		apiClient := &mockTokenAPI{saveErr: errors.New("500")}
		cache := &mockCache{token: "ghp_old"}
		relay := NewRelay(apiClient, liveSession(), cache)

		err := relay.Store(ctx, "ghp_new")
		require.Error(t, err)
		assert.Equal(t, "ghp_old", cache.token)
	})

	t.Run("without session stores only in cache", func(t *testing.T) {
		apiClient := &mockTokenAPI{}
		cache := &mockCache{}
		relay := NewRelay(apiClient, &mockSessions{}, cache)

		require.NoError(t, relay.Store(ctx, "github_pat_local"))
		assert.Zero(t, apiClient.saveCalls)
		assert.Equal(t, "github_pat_local", cache.token)
	})
}

func TestRelay_Clear(t *testing.T) {
	ctx := context.Background()

	t.Run("removes server and cache copies", func(t *testing.T) {
		apiClient := &mockTokenAPI{serverToken: "ghp_server"}
		cache := &mockCache{token: "ghp_cached"}
		relay := NewRelay(apiClient, liveSession(), cache)

		require.NoError(t, relay.Clear(ctx))
		assert.Empty(t, apiClient.serverToken)
		assert.Empty(t, cache.token)

		got, source, err := relay.Resolve(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, SourceNone, source)
	})

	t.Run("without session clears only the cache", func(t *testing.T) {
		apiClient := &mockTokenAPI{serverToken: "ghp_server"}
		cache := &mockCache{token: "ghp_cached"}
		relay := NewRelay(apiClient, &mockSessions{}, cache)

		require.NoError(t, relay.Clear(ctx))
		assert.Zero(t, apiClient.deleteCalls)
		assert.Empty(t, cache.token)
	})
}
