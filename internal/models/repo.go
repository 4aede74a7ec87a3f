package models

import "time"

// RepoOwner представляет владельца репозитория
type RepoOwner struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
}

// Repo представляет результат поиска репозитория из GitHub Search API.
// Система никогда не мутирует эти поля — только аннотирует результат
// производным relevance score на уровне ранжирования.
type Repo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Owner           RepoOwner `json:"owner"`
	Description     string    `json:"description"`
	Topics          []string  `json:"topics"`
	Language        string    `json:"language"`
	StargazersCount int64     `json:"stargazers_count"`
	ForksCount      int64     `json:"forks_count"`
	WatchersCount   int64     `json:"watchers_count"`
	HTMLURL         string    `json:"html_url"`
	DefaultBranch   string    `json:"default_branch"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Activity возвращает суммарную активность репозитория (сортировка "active")
func (r *Repo) Activity() int64 {
	return r.StargazersCount + r.ForksCount + r.WatchersCount
}

// RateLimit представляет состояние квоты GitHub API из заголовков ответа
type RateLimit struct {
	Limit     int       `json:"limit"`     // X-RateLimit-Limit
	Remaining int       `json:"remaining"` // X-RateLimit-Remaining
	Reset     time.Time `json:"reset"`     // X-RateLimit-Reset (unix time)
}
