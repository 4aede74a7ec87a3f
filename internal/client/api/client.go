package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vintaclectic/RepoRadar/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Register регистрирует нового пользователя.
// Успешная регистрация сразу возвращает session token.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию по username или email
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Logout завершает сессию на сервере
func (c *Client) Logout(ctx context.Context, sessionToken string) error {
	err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout", sessionToken, nil, nil)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// SaveGithubToken сохраняет GitHub токен на сервере
func (c *Client) SaveGithubToken(ctx context.Context, sessionToken, githubToken string) error {
	req := api.SaveTokenRequest{Token: githubToken}
	err := c.doRequest(ctx, http.MethodPost, "/api/token/save", sessionToken, req, nil)
	if err != nil {
		return fmt.Errorf("save token request failed: %w", err)
	}
	return nil
}

// GetGithubToken запрашивает сохраненный GitHub токен.
// Пустая строка без ошибки означает, что токен на сервере не сохранен.
func (c *Client) GetGithubToken(ctx context.Context, sessionToken string) (string, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/token/get", sessionToken, nil, &resp)
	if err != nil {
		return "", fmt.Errorf("get token request failed: %w", err)
	}
	if resp.Token == nil {
		return "", nil
	}
	return *resp.Token, nil
}

// DeleteGithubToken удаляет GitHub токен на сервере
func (c *Client) DeleteGithubToken(ctx context.Context, sessionToken string) error {
	err := c.doRequest(ctx, http.MethodDelete, "/api/token/delete", sessionToken, nil, nil)
	if err != nil {
		return fmt.Errorf("delete token request failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос.
// Непустой sessionToken уходит в заголовке X-Session-Token.
func (c *Client) doRequest(ctx context.Context, method, path, sessionToken string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionToken != "" {
		req.Header.Set(api.SessionTokenHeader, sessionToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
