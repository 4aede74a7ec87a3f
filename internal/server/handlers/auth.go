package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vintaclectic/RepoRadar/internal/models"
	"github.com/vintaclectic/RepoRadar/internal/server/storage"
	"github.com/vintaclectic/RepoRadar/internal/validation"
	"github.com/vintaclectic/RepoRadar/pkg/api"
)

// dummyPasswordHash — bcrypt хеш фиксированной строки. Сравнение с ним
// выполняется, когда пользователь не найден, чтобы время ответа не выдавало
// существование аккаунта.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthHandler обрабатывает запросы регистрации и аутентификации
type AuthHandler struct {
	logger     *slog.Logger
	users      storage.UserStorage
	sessions   storage.SessionStorage
	sessionTTL time.Duration
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(
	logger *slog.Logger,
	users storage.UserStorage,
	sessions storage.SessionStorage,
	sessionTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		logger:     logger,
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Register обрабатывает POST /api/auth/register
// Регистрация нового пользователя с автоматическим созданием сессии
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация до любых обращений к хранилищу
	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Хешируем пароль; в БД и в ответах только хеш/ничего
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now(),
	}

	// Сохраняем в БД
	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", req.Username))
			h.sendError(w, "username or email already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Регистрация сразу открывает сессию
	session, err := createSession(ctx, h.sessions, user.ID, h.sessionTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create session", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", req.Username),
		slog.String("user_id", user.ID))

	resp := api.AuthResponse{
		Message:      "Registration successful",
		User:         userPayload(user),
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt.Unix(),
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// Login обрабатывает POST /api/auth/login
// Аутентификация по username ИЛИ email
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Identifier == "" || req.Password == "" {
		h.sendError(w, "identifier and password are required", http.StatusBadRequest)
		return
	}

	// Получаем пользователя по username или email
	user, err := h.users.FindUser(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Сравнение с фиктивным хешем: неизвестный identifier и неверный
			// пароль должны стоить одинаково
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(req.Password))
			h.logger.WarnContext(ctx, "login failed: user not found")
			h.sendError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to find user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Единый ответ для неверного пароля и неизвестного пользователя
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WarnContext(ctx, "login failed: invalid password", slog.String("user_id", user.ID))
		h.sendError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	session, err := createSession(ctx, h.sessions, user.ID, h.sessionTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create session", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	resp := api.AuthResponse{
		Message:      "Login successful",
		User:         userPayload(user),
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt.Unix(),
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Logout обрабатывает POST /api/auth/logout. Маршрут за auth
// middleware: невалидный токен получает 401 до этого кода. Само
// удаление терпимо к сессии, умершей между проверкой и delete.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := r.Header.Get(api.SessionTokenHeader)
	if token != "" {
		if err := h.sessions.DeleteSession(ctx, token); err != nil {
			if !errors.Is(err, storage.ErrSessionNotFound) {
				h.logger.ErrorContext(ctx, "failed to delete session", slog.Any("error", err))
				h.sendError(w, "internal server error", http.StatusInternalServerError)
				return
			}
			// Сессии уже нет — logout все равно успешен
		} else {
			h.logger.InfoContext(ctx, "user logged out successfully")
		}
	}

	h.sendJSON(w, api.MessageResponse{Message: "Logged out"}, http.StatusOK)
}

// userPayload возвращает публичную проекцию аккаунта для API ответов.
// PasswordHash наружу не уходит никогда.
func userPayload(u *models.User) api.UserPayload {
	return api.UserPayload{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// sendJSON отправляет JSON ответ
func (h *AuthHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *AuthHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
