package models

import "time"

// User представляет аккаунт пользователя в системе
type User struct {
	ID           string    `json:"id"`       // UUID пользователя
	Username     string    `json:"username"` // уникальный username
	Email        string    `json:"email"`    // уникальный email
	PasswordHash string    `json:"-"`        // bcrypt хеш пароля, не сериализуется
	CreatedAt    time.Time `json:"created_at"`
}

// Public возвращает проекцию аккаунта без password hash.
// Только эта форма уходит наружу через API.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// PublicUser представляет публичную проекцию аккаунта
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session представляет браузерную сессию пользователя.
// Token — opaque hex строка (32 байта энтропии), не несет claims.
type Session struct {
	Token     string    `json:"token"`      // opaque session token (64 hex символа)
	UserID    string    `json:"user_id"`    // ID пользователя
	ExpiresAt time.Time `json:"expires_at"` // абсолютное время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
}

// SessionIdentity — идентичность, которую middleware прикрепляет к запросу
// после успешной валидации сессии
type SessionIdentity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// GithubCredential представляет сохраненный GitHub API токен пользователя.
// Максимум одна запись на аккаунт, upsert семантика.
type GithubCredential struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	UpdatedAt time.Time `json:"updated_at"` // время последнего обновления
}
