// Пакет server собирает HTTP сервер: маршруты, middleware цепочку,
// фоновую очистку сессий и graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/vintaclectic/RepoRadar/internal/server/config"
	"github.com/vintaclectic/RepoRadar/internal/server/handlers"
	"github.com/vintaclectic/RepoRadar/internal/server/middleware"
	"github.com/vintaclectic/RepoRadar/internal/server/storage"
)

// Server владеет зависимостями HTTP слоя
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   storage.Storage
	version string
}

// New создает сервер поверх готового хранилища.
// Хранилищем владеет вызывающий: Close на стороне main.
func New(cfg *config.Config, logger *slog.Logger, store storage.Storage, version string) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		version: version,
	}
}

// routes собирает mux и middleware цепочку:
// recovery -> logging -> rate limit -> (auth на защищенных маршрутах)
func (s *Server) routes() http.Handler {
	authHandler := handlers.NewAuthHandler(s.logger, s.store, s.store, s.cfg.Session.TTL)
	tokenHandler := handlers.NewTokenHandler(s.logger, s.store)
	healthHandler := handlers.NewHealthHandler(s.logger, s.version)

	requireAuth := middleware.AuthMiddleware(s.logger, s.store)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", healthHandler.Health)

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("POST /api/auth/logout", requireAuth(http.HandlerFunc(authHandler.Logout)))

	mux.Handle("POST /api/token/save", requireAuth(http.HandlerFunc(tokenHandler.Save)))
	mux.Handle("GET /api/token/get", requireAuth(http.HandlerFunc(tokenHandler.Get)))
	mux.Handle("DELETE /api/token/delete", requireAuth(http.HandlerFunc(tokenHandler.Delete)))

	// Жесткий лимит только на auth маршруты: login/register — мишень
	// для перебора. Остальные пути идут через щедрый дефолт.
	limits := []middleware.PathRateLimit{
		{Path: "/api/auth/login", Rate: s.cfg.RateLimit.Rate, Window: s.cfg.RateLimit.Window},
		{Path: "/api/auth/register", Rate: s.cfg.RateLimit.Rate, Window: s.cfg.RateLimit.Window},
	}

	var handler http.Handler = mux
	handler = middleware.RateLimitByPathMiddleware(limits, s.cfg.RateLimit.Rate*10, s.cfg.RateLimit.Window, s.logger)(handler)
	handler = middleware.LoggingWithSkip(s.logger, []string{"/api/health"})(handler)
	handler = middleware.RecoveryMiddleware(s.logger)(handler)

	return handler
}

// Run запускает сервер и блокируется до отмены контекста или ошибки.
// Отмена контекста запускает graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.routes(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	go s.sweepSessions(ctx)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("addr", s.cfg.Server.Addr),
			slog.String("version", s.version))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("server stopped gracefully")
		return nil
	}
}

// sweepSessions чистит истекшие сессии: один проход при старте и затем
// по тикеру, если очистка не отключена конфигом
func (s *Server) sweepSessions(ctx context.Context) {
	s.sweepOnce(ctx)

	if s.cfg.Session.SweepInterval <= 0 {
		s.logger.Info("periodic session sweep disabled")
		return
	}

	ticker := time.NewTicker(s.cfg.Session.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) sweepOnce(ctx context.Context) {
	count, err := s.store.DeleteExpiredSessions(ctx)
	if err != nil {
		s.logger.Error("failed to sweep expired sessions", slog.Any("error", err))
		return
	}
	if count > 0 {
		s.logger.Info("expired sessions swept", slog.Int("count", count))
	}
}
