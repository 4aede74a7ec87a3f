package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runLogin(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Login ===")
	fmt.Fprintln(c.out)

	identifier, err := readInput("Username or email: ")
	if err != nil {
		return fmt.Errorf("failed to read identifier: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Authenticating...")

	session, err := c.authService.Login(ctx, identifier, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "✓ Login successful!")
	fmt.Fprintf(c.out, "Username: %s\n", session.Username)
	fmt.Fprintf(c.out, "Session expires: %s\n", time.Unix(session.ExpiresAt, 0).Format(time.RFC3339))

	return nil
}
