package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/vintaclectic/RepoRadar/internal/search"
)

// допустимые размеры страницы
var pageSizes = map[int]bool{10: true, 25: true, 50: true, 100: true}

// langList — повторяемый флаг --lang
type langList []string

func (l *langList) String() string {
	return strings.Join(*l, ",")
}

func (l *langList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type searchOptions struct {
	query   string
	sort    search.SortMode
	langs   []string
	page    int
	perPage int
	explain bool
}

func parseSearchArgs(args []string) (*searchOptions, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return nil, fmt.Errorf("usage: reporadar search <query> [flags]")
	}

	opts := &searchOptions{query: args[0]}

	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	sortMode := fs.String("sort", string(search.SortRelevance), "sort mode: relevance, stars, recent, active")
	var langs langList
	fs.Var(&langs, "lang", "language filter, exact match (repeatable)")
	fs.IntVar(&opts.page, "page", 1, "page number, 1-based")
	fs.IntVar(&opts.perPage, "per-page", 25, "page size: 10, 25, 50 or 100")
	fs.BoolVar(&opts.explain, "explain", false, "show score breakdown")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	switch search.SortMode(*sortMode) {
	case search.SortRelevance, search.SortStars, search.SortRecent, search.SortActive:
		opts.sort = search.SortMode(*sortMode)
	default:
		return nil, fmt.Errorf("unknown sort mode: %s", *sortMode)
	}

	if opts.page < 1 {
		return nil, fmt.Errorf("page must be at least 1")
	}
	if !pageSizes[opts.perPage] {
		return nil, fmt.Errorf("per-page must be 10, 25, 50 or 100")
	}

	opts.langs = langs
	return opts, nil
}

func (c *Cli) runSearch(ctx context.Context, args []string) error {
	opts, err := parseSearchArgs(args)
	if err != nil {
		return err
	}

	githubToken, _, err := c.relay.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve github token: %w", err)
	}

	// Выбираем достаточно результатов, чтобы покрыть запрошенную страницу
	// и дать фильтру из чего отсеивать
	fetchLimit := opts.page * opts.perPage
	if fetchLimit < 100 {
		fetchLimit = 100
	}

	searcher := c.newSearcher(githubToken)
	result, err := searcher.Search(ctx, opts.query, fetchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	ranked := search.Rank(result.Repos, opts.query, search.Options{
		Sort:      opts.sort,
		Languages: opts.langs,
	})
	page := search.Paginate(ranked.Repos, opts.perPage, opts.page)

	c.renderSearch(opts, result.TotalCount, ranked, page)

	if result.Truncated {
		fmt.Fprintf(c.out, "Note: GitHub reports %d matches but only the first 1000 are reachable.\n", result.TotalCount)
	}
	if result.RateLimit.Limit > 0 {
		fmt.Fprintf(c.out, "API quota: %d/%d remaining\n", result.RateLimit.Remaining, result.RateLimit.Limit)
	}

	return nil
}

func (c *Cli) renderSearch(opts *searchOptions, totalCount int, ranked search.RankResult, page []search.ScoredRepo) {
	// "Фильтр скрыл все" показывается иначе, чем пустая выдача поиска
	if len(ranked.Repos) == 0 {
		if ranked.TotalBeforeFilter > 0 {
			fmt.Fprintf(c.out, "No results: the language filter hid all %d matches.\n", ranked.TotalBeforeFilter)
			fmt.Fprintln(c.out, "Drop --lang or pick another language to see them.")
		} else {
			fmt.Fprintf(c.out, "No repositories found for %q.\n", opts.query)
		}
		return
	}

	if len(page) == 0 {
		fmt.Fprintf(c.out, "Page %d is past the end: only %d result(s).\n", opts.page, len(ranked.Repos))
		return
	}

	for i, sr := range page {
		rank := (opts.page-1)*opts.perPage + i + 1
		lang := sr.Repo.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(c.out, "%3d. %-45s %-12s ★ %-7d score %d\n",
			rank, sr.Repo.FullName, lang, sr.Repo.StargazersCount, sr.Score)
		if opts.explain {
			fmt.Fprintf(c.out, "     name %d + description %d + topics %d + popularity %.1f\n",
				sr.Breakdown.NamePoints,
				sr.Breakdown.DescriptionPoints,
				sr.Breakdown.TopicPoints,
				sr.Breakdown.PopularityPoints)
		}
	}

	first := (opts.page-1)*opts.perPage + 1
	last := first + len(page) - 1
	fmt.Fprintf(c.out, "\nShowing %d-%d of %d (GitHub total: %d)\n", first, last, len(ranked.Repos), totalCount)
}
