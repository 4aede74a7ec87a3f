package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/vintaclectic/RepoRadar/internal/client/token"
)

func (c *Cli) runStatus(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Status ===")
	fmt.Fprintln(c.out)

	session, err := c.authService.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}

	if session == nil {
		fmt.Fprintln(c.out, "Session: not authenticated")
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Run 'reporadar login' to authenticate.")
	} else {
		expiresAt := time.Unix(session.ExpiresAt, 0)
		remaining := time.Until(expiresAt)

		fmt.Fprintf(c.out, "Session: %s <%s>\n", session.Username, session.Email)
		fmt.Fprintf(c.out, "Expires: %s\n", expiresAt.Format(time.RFC3339))
		if remaining > 0 {
			fmt.Fprintf(c.out, "Time remaining: %s\n", remaining.Round(time.Second))
		} else {
			fmt.Fprintln(c.out, "Session has expired. Please login again.")
		}
	}

	fmt.Fprintln(c.out)

	_, source, err := c.relay.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve github token: %w", err)
	}

	switch source {
	case token.SourceSession:
		fmt.Fprintln(c.out, "GitHub token: from server (account)")
	case token.SourceCache:
		fmt.Fprintln(c.out, "GitHub token: from local cache")
	default:
		fmt.Fprintln(c.out, "GitHub token: none (searches run unauthenticated, lower quota)")
	}

	return nil
}
