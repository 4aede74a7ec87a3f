package search

import (
	"sort"

	"github.com/vintaclectic/RepoRadar/internal/models"
)

// SortMode определяет порядок выдачи
type SortMode string

const (
	// SortRelevance — по убыванию релевантности (по умолчанию)
	SortRelevance SortMode = "relevance"
	// SortStars — по убыванию звезд
	SortStars SortMode = "stars"
	// SortRecent — по убыванию времени последнего обновления
	SortRecent SortMode = "recent"
	// SortActive — по убыванию суммарной активности (stars+forks+watchers)
	SortActive SortMode = "active"
)

// Options — явные параметры ранжирования. Никакого пакетного состояния:
// один и тот же вход всегда дает один и тот же выход.
type Options struct {
	Sort SortMode
	// Languages — фильтр по языку, точное совпадение.
	// Пустой набор означает отсутствие фильтра.
	Languages []string
}

// ScoredRepo — репозиторий с вычисленной релевантностью
type ScoredRepo struct {
	Repo      *models.Repo
	Breakdown Breakdown
	Score     int
}

// RankResult несет отранжированную выдачу и счетчик до фильтрации,
// чтобы вызывающий мог отличить "поиск ничего не нашел" от
// "фильтр скрыл все результаты".
type RankResult struct {
	Repos             []ScoredRepo
	TotalBeforeFilter int
}

// Rank оценивает, фильтрует и сортирует выдачу.
// Оценка считается всегда, даже при сортировке не по релевантности:
// score показывается в каждой строке выдачи.
func Rank(repos []*models.Repo, query string, opts Options) RankResult {
	scored := make([]ScoredRepo, 0, len(repos))
	for _, repo := range repos {
		breakdown := Score(repo, query)
		scored = append(scored, ScoredRepo{
			Repo:      repo,
			Breakdown: breakdown,
			Score:     breakdown.Total(),
		})
	}

	result := RankResult{TotalBeforeFilter: len(scored)}

	if len(opts.Languages) > 0 {
		allowed := make(map[string]struct{}, len(opts.Languages))
		for _, lang := range opts.Languages {
			allowed[lang] = struct{}{}
		}
		filtered := scored[:0]
		for _, sr := range scored {
			if _, ok := allowed[sr.Repo.Language]; ok {
				filtered = append(filtered, sr)
			}
		}
		scored = filtered
	}

	// Стабильная сортировка: равные ключи сохраняют исходный порядок
	switch opts.Sort {
	case SortStars:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Repo.StargazersCount > scored[j].Repo.StargazersCount
		})
	case SortRecent:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Repo.UpdatedAt.After(scored[j].Repo.UpdatedAt)
		})
	case SortActive:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Repo.Activity() > scored[j].Repo.Activity()
		})
	default:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score > scored[j].Score
		})
	}

	result.Repos = scored
	return result
}
