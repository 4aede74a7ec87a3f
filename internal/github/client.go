// Пакет github реализует вызовы GitHub Search API: поиск репозиториев
// с постраничной выборкой, разбор rate limit заголовков и проверку токена.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vintaclectic/RepoRadar/internal/models"
)

const (
	// DefaultBaseURL публичный GitHub API
	DefaultBaseURL = "https://api.github.com"

	// maxPerPage потолок GitHub Search API на размер страницы
	maxPerPage = 100

	// searchWindow — GitHub отдает максимум 1000 результатов на запрос,
	// сколько бы их ни нашлось
	searchWindow = 1000
)

// Client вызывает GitHub API. Токен опционален: без него работают
// те же запросы с урезанной квотой (10 поисков в минуту против 30).
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	token      string
}

// NewClient создает клиент GitHub API. Пустой token означает
// неаутентифицированные запросы.
func NewClient(logger *slog.Logger, baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:  logger,
		baseURL: baseURL,
		token:   token,
	}
}

// SearchResult — результат поиска вместе с метаданными ответа
type SearchResult struct {
	Repos             []*models.Repo
	TotalCount        int
	IncompleteResults bool
	RateLimit         models.RateLimit
	// Truncated true, когда выдача уперлась в окно поиска GitHub
	// (1000 результатов) и часть найденного недоступна
	Truncated bool
}

// searchResponse — форма ответа /search/repositories
type searchResponse struct {
	TotalCount        int            `json:"total_count"`
	IncompleteResults bool           `json:"incomplete_results"`
	Items             []*models.Repo `json:"items"`
}

// apiError — форма ответа GitHub при ошибке
type apiError struct {
	Message string `json:"message"`
}

// Search выполняет поиск репозиториев и возвращает до limit результатов.
// GitHub отдает максимум 100 на страницу, поэтому выборка идет постранично
// до limit, конца выдачи или границы окна поиска.
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if limit <= 0 {
		limit = maxPerPage
	}
	if limit > searchWindow {
		limit = searchWindow
	}

	result := &SearchResult{}

	for page := 1; len(result.Repos) < limit; page++ {
		perPage := limit - len(result.Repos)
		if perPage > maxPerPage {
			perPage = maxPerPage
		}

		resp, rateLimit, err := c.searchPage(ctx, query, page, perPage)
		if err != nil {
			return nil, err
		}

		result.TotalCount = resp.TotalCount
		result.IncompleteResults = result.IncompleteResults || resp.IncompleteResults
		result.RateLimit = rateLimit
		result.Repos = append(result.Repos, resp.Items...)

		// Конец выдачи: страница пришла неполной
		if len(resp.Items) < perPage {
			break
		}
	}

	if result.TotalCount > searchWindow {
		result.Truncated = true
		c.logger.WarnContext(ctx, "search results truncated by GitHub search window",
			slog.Int("total_count", result.TotalCount),
			slog.Int("window", searchWindow))
	}

	return result, nil
}

// searchPage выполняет запрос одной страницы поиска
func (c *Client) searchPage(ctx context.Context, query string, page, perPage int) (*searchResponse, models.RateLimit, error) {
	var rateLimit models.RateLimit

	params := url.Values{}
	params.Set("q", query)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))

	fullURL := fmt.Sprintf("%s/search/repositories?%s", c.baseURL, params.Encode())

	c.logger.DebugContext(ctx, "calling GitHub search API",
		slog.Int("page", page),
		slog.Int("per_page", perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, rateLimit, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, rateLimit, fmt.Errorf("failed to call GitHub API: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	rateLimit = parseRateLimit(resp.Header)

	if resp.StatusCode != http.StatusOK {
		return nil, rateLimit, c.decodeError(resp)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, rateLimit, fmt.Errorf("failed to decode search response: %w", err)
	}

	return &parsed, rateLimit, nil
}

// CheckToken проверяет токен запросом /rate_limit: endpoint не тратит
// квоту и возвращает 401 на невалидный токен. Используется перед
// сохранением токена.
func (c *Client) CheckToken(ctx context.Context) (models.RateLimit, error) {
	var rateLimit models.RateLimit

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rate_limit", nil)
	if err != nil {
		return rateLimit, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return rateLimit, fmt.Errorf("failed to call GitHub API: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	rateLimit = parseRateLimit(resp.Header)

	if resp.StatusCode != http.StatusOK {
		return rateLimit, c.decodeError(resp)
	}

	return rateLimit, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s", c.token))
	}
}

// decodeError превращает не-2xx ответ в ошибку с сообщением GitHub
func (c *Client) decodeError(resp *http.Response) error {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("github api error: %s (status %d)", apiErr.Message, resp.StatusCode)
	}
	return fmt.Errorf("github api error: status %d", resp.StatusCode)
}

// parseRateLimit читает X-RateLimit-* заголовки ответа
func parseRateLimit(h http.Header) models.RateLimit {
	var rl models.RateLimit

	if v, err := strconv.Atoi(h.Get("X-RateLimit-Limit")); err == nil {
		rl.Limit = v
	}
	if v, err := strconv.Atoi(h.Get("X-RateLimit-Remaining")); err == nil {
		rl.Remaining = v
	}
	if v, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		rl.Reset = time.Unix(v, 0)
	}

	return rl
}
