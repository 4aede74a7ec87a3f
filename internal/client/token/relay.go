// Пакет token определяет, каким GitHub токеном подписывать поисковые
// запросы. Источник в порядке приоритета: серверная копия под живой
// сессией, локальный кэш, без токена.
package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/vintaclectic/RepoRadar/internal/client/storage"
	"github.com/vintaclectic/RepoRadar/internal/validation"
)

// Source указывает, откуда взялся токен
type Source string

const (
	// SourceSession — токен получен с сервера по сессии
	SourceSession Source = "session"
	// SourceCache — локальная копия из bbolt
	SourceCache Source = "cache"
	// SourceNone — токена нет, запросы идут без аутентификации
	SourceNone Source = "none"
)

// APIClient описывает серверные вызовы, которые нужны relay
type APIClient interface {
	SaveGithubToken(ctx context.Context, sessionToken, githubToken string) error
	GetGithubToken(ctx context.Context, sessionToken string) (string, error)
	DeleteGithubToken(ctx context.Context, sessionToken string) error
}

// SessionProvider отдает токен живой сессии, если она есть
type SessionProvider interface {
	Session(ctx context.Context) (*storage.SessionData, error)
}

// Relay выбирает и хранит GitHub токен
type Relay struct {
	apiClient APIClient
	sessions  SessionProvider
	cache     storage.TokenCache

	// resolved — токен, однажды полученный с сервера. Пока процесс
	// живет, он выигрывает у локального кэша: сервер — источник истины.
	resolved       string
	resolvedSource Source
}

// NewRelay создает relay поверх API клиента и локального кэша
func NewRelay(apiClient APIClient, sessions SessionProvider, cache storage.TokenCache) *Relay {
	return &Relay{
		apiClient: apiClient,
		sessions:  sessions,
		cache:     cache,
	}
}

// Resolve возвращает токен для поисковых запросов и его источник.
// Пустой токен с SourceNone не ошибка: поиск работает и без токена,
// просто с урезанной квотой.
func (r *Relay) Resolve(ctx context.Context) (string, Source, error) {
	if r.resolvedSource == SourceSession {
		return r.resolved, SourceSession, nil
	}

	// Пытаемся взять серверный токен под сессией
	if session, err := r.sessions.Session(ctx); err == nil {
		serverToken, err := r.apiClient.GetGithubToken(ctx, session.SessionToken)
		if err == nil {
			if serverToken != "" {
				// Обновляем локальный кэш свежей серверной копией
				if cacheErr := r.cache.SaveCachedToken(ctx, serverToken); cacheErr != nil {
					return "", SourceNone, fmt.Errorf("failed to cache github token: %w", cacheErr)
				}
				r.resolved = serverToken
				r.resolvedSource = SourceSession
				return serverToken, SourceSession, nil
			}
		}
		// Неудачный запрос не трогает кэш: проваливаемся на локальную копию
	}

	cached, err := r.cache.GetCachedToken(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotCached) {
			return "", SourceNone, nil
		}
		return "", SourceNone, err
	}

	return cached, SourceCache, nil
}

// Store сохраняет токен: формат проверяется до любых вызовов, затем
// сервер (если есть сессия), затем локальный кэш
func (r *Relay) Store(ctx context.Context, githubToken string) error {
	if err := validation.ValidateGithubToken(githubToken); err != nil {
		return err
	}

	if session, err := r.sessions.Session(ctx); err == nil {
		if err := r.apiClient.SaveGithubToken(ctx, session.SessionToken, githubToken); err != nil {
			return fmt.Errorf("failed to save token on server: %w", err)
		}
		r.resolved = githubToken
		r.resolvedSource = SourceSession
	} else {
		// Без сессии токен живет только локально
		r.resolved = ""
		r.resolvedSource = SourceNone
	}

	if err := r.cache.SaveCachedToken(ctx, githubToken); err != nil {
		return fmt.Errorf("failed to cache github token: %w", err)
	}

	return nil
}

// Clear удаляет токен с сервера (при живой сессии) и из кэша
func (r *Relay) Clear(ctx context.Context) error {
	if session, err := r.sessions.Session(ctx); err == nil {
		if err := r.apiClient.DeleteGithubToken(ctx, session.SessionToken); err != nil {
			return fmt.Errorf("failed to delete token on server: %w", err)
		}
	}

	if err := r.cache.DeleteCachedToken(ctx); err != nil {
		return fmt.Errorf("failed to delete cached github token: %w", err)
	}

	r.resolved = ""
	r.resolvedSource = SourceNone

	return nil
}
