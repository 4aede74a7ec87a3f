package api

// SessionTokenHeader — заголовок, в котором клиент передает session token.
// Именно заголовок, не cookie: клиент сам хранит и пересылает токен.
const SessionTokenHeader = "X-Session-Token"

// SaveTokenRequest представляет запрос на сохранение GitHub токена
type SaveTokenRequest struct {
	Token string `json:"token"` // GitHub token (ghp_... или github_pat_...)
}

// TokenResponse представляет ответ с сохраненным GitHub токеном.
// Token == nil означает, что токен не сохранен.
type TokenResponse struct {
	Token *string `json:"token"`
}
