package search

// Paginate возвращает страницу выдачи. Страницы нумеруются с 1.
// Выход за пределы выдачи — пустой срез, не ошибка: клиент сам
// показывает "ничего нет" вместо обработки краевого случая.
func Paginate(repos []ScoredRepo, pageSize, page int) []ScoredRepo {
	if pageSize <= 0 || page <= 0 {
		return nil
	}

	start := (page - 1) * pageSize
	if start >= len(repos) {
		return nil
	}

	end := start + pageSize
	if end > len(repos) {
		end = len(repos)
	}

	return repos[start:end]
}
