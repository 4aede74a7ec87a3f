package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"` // username пользователя
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль (хешируется на сервере)
}

// LoginRequest представляет запрос на аутентификацию.
// Identifier — username ИЛИ email, одно поле на оба случая.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// UserPayload представляет публичную проекцию аккаунта в ответах
type UserPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse представляет ответ на успешный register/login
type AuthResponse struct {
	Message      string      `json:"message"`
	User         UserPayload `json:"user"`
	SessionToken string      `json:"sessionToken"` // opaque session token
	ExpiresAt    int64       `json:"expiresAt"`    // unix time истечения сессии
}

// MessageResponse представляет простой ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
