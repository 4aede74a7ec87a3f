package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "✓ Logged out.")
	fmt.Fprintln(c.out, "Local session and cached GitHub token removed.")

	return nil
}
