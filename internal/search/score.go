package search

import (
	"math"
	"strings"

	"github.com/vintaclectic/RepoRadar/internal/models"
)

// Веса компонентов релевантности
const (
	namePoints          = 40
	descPointsPerToken  = 10
	descPointsMax       = 30
	topicPoints         = 20
	popularityPointsMax = 10
	scoreMax            = 100
)

// Breakdown содержит покомпонентную раскладку релевантности.
// Каждый компонент воспроизводим отдельно, чтобы клиент мог показать
// пользователю, из чего сложилась оценка.
type Breakdown struct {
	NamePoints        int     `json:"name_points"`
	DescriptionPoints int     `json:"description_points"`
	TopicPoints       int     `json:"topic_points"`
	PopularityPoints  float64 `json:"popularity_points"`
}

// Total возвращает итоговую оценку: round(сумма), обрезанная в [0, 100].
// Округление только здесь — popularity до этого момента дробная.
func (b Breakdown) Total() int {
	sum := float64(b.NamePoints+b.DescriptionPoints+b.TopicPoints) + b.PopularityPoints
	total := int(math.Round(sum))
	if total < 0 {
		return 0
	}
	if total > scoreMax {
		return scoreMax
	}
	return total
}

// Score вычисляет релевантность репозитория для запроса.
// Детерминированная чистая функция: без состояния, без внешних вызовов.
//
// Семантика подстрочных совпадений:
//   - name: хотя бы один токен запроса входит в имя -> +40
//   - description: +10 за каждый РАЗЛИЧНЫЙ входящий токен, максимум 30;
//     пустое описание всегда 0
//   - topics: хотя бы один токен входит хотя бы в один топик -> +20
//   - popularity: min(10, 2*log10(stars+1)), не округляется до Total
func Score(repo *models.Repo, query string) Breakdown {
	var b Breakdown

	tokens := tokenize(query)
	if len(tokens) == 0 {
		b.PopularityPoints = popularity(repo.StargazersCount)
		return b
	}

	name := strings.ToLower(repo.Name)
	for _, token := range tokens {
		if strings.Contains(name, token) {
			b.NamePoints = namePoints
			break
		}
	}

	if repo.Description != "" {
		description := strings.ToLower(repo.Description)
		matched := 0
		for _, token := range tokens {
			if strings.Contains(description, token) {
				matched++
			}
		}
		b.DescriptionPoints = matched * descPointsPerToken
		if b.DescriptionPoints > descPointsMax {
			b.DescriptionPoints = descPointsMax
		}
	}

	for _, topic := range repo.Topics {
		lowered := strings.ToLower(topic)
		for _, token := range tokens {
			if strings.Contains(lowered, token) {
				b.TopicPoints = topicPoints
				break
			}
		}
		if b.TopicPoints > 0 {
			break
		}
	}

	b.PopularityPoints = popularity(repo.StargazersCount)

	return b
}

// tokenize разбивает запрос по пробелам, приводит к нижнему регистру
// и убирает повторы: токен дает очки один раз
func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := make(map[string]struct{}, len(fields))
	tokens := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// popularity — логарифмический вклад звезд, насыщается на 10 очках
func popularity(stars int64) float64 {
	points := 2 * math.Log10(float64(stars)+1)
	if points > popularityPointsMax {
		return popularityPointsMax
	}
	return points
}
