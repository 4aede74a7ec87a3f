package cli

import (
	"context"
	"fmt"

	"github.com/vintaclectic/RepoRadar/internal/client/token"
	"github.com/vintaclectic/RepoRadar/internal/validation"
)

func (c *Cli) runToken(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("token subcommand is required: set, show or clear")
	}

	switch args[0] {
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("usage: reporadar token set <token>")
		}
		return c.runTokenSet(ctx, args[1])
	case "show":
		return c.runTokenShow(ctx)
	case "clear":
		return c.runTokenClear(ctx)
	default:
		return fmt.Errorf("unknown token subcommand: %s", args[0])
	}
}

func (c *Cli) runTokenSet(ctx context.Context, githubToken string) error {
	// Формат проверяем до любых сетевых вызовов
	if err := validation.ValidateGithubToken(githubToken); err != nil {
		return err
	}

	// Живая проверка через /rate_limit: невалидный токен GitHub
	// отвергает с 401, сохранять такой нет смысла
	fmt.Fprintln(c.out, "Verifying token with GitHub...")
	quota, err := c.verifyToken(ctx, githubToken)
	if err != nil {
		return fmt.Errorf("github rejected the token: %w", err)
	}

	if err := c.relay.Store(ctx, githubToken); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "✓ GitHub token saved.")
	fmt.Fprintf(c.out, "API quota with this token: %d requests per hour (%d remaining)\n",
		quota.Limit, quota.Remaining)
	return nil
}

func (c *Cli) runTokenShow(ctx context.Context) error {
	resolved, source, err := c.relay.Resolve(ctx)
	if err != nil {
		return err
	}

	switch source {
	case token.SourceSession:
		fmt.Fprintf(c.out, "Active token: %s (from server)\n", maskToken(resolved))
	case token.SourceCache:
		fmt.Fprintf(c.out, "Active token: %s (from local cache)\n", maskToken(resolved))
	default:
		fmt.Fprintln(c.out, "No GitHub token configured.")
		fmt.Fprintln(c.out, "Run 'reporadar token set <token>' to add one.")
	}

	return nil
}

func (c *Cli) runTokenClear(ctx context.Context) error {
	if err := c.relay.Clear(ctx); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "✓ GitHub token removed.")
	return nil
}

// maskToken показывает только последние 4 символа токена
func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
