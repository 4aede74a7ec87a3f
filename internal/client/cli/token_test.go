package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintaclectic/RepoRadar/internal/client/token"
	"github.com/vintaclectic/RepoRadar/internal/models"
)

// stubVerifier имитирует живую проверку токена через GitHub
type stubVerifier struct {
	quota models.RateLimit
	err   error
	calls int
}

func (v *stubVerifier) verify(_ context.Context, _ string) (models.RateLimit, error) {
	v.calls++
	if v.err != nil {
		return models.RateLimit{}, v.err
	}
	return v.quota, nil
}

func newTokenTestCli(cache *stubCache, verifier *stubVerifier) (*Cli, *bytes.Buffer) {
	out := &bytes.Buffer{}
	c := &Cli{
		relay:       token.NewRelay(stubTokenAPI{}, &stubSessions{}, cache),
		verifyToken: verifier.verify,
		out:         out,
	}
	return c, out
}

func TestRunToken_Set(t *testing.T) {
	cache := &stubCache{}
	verifier := &stubVerifier{quota: models.RateLimit{Limit: 5000, Remaining: 4999}}
	c, out := newTokenTestCli(cache, verifier)

	err := c.runToken(context.Background(), []string{"set", "ghp_abcdef123456"})
	require.NoError(t, err)

	assert.Equal(t, 1, verifier.calls, "token should be verified against GitHub before save")
	assert.Equal(t, "ghp_abcdef123456", cache.token)
	assert.Contains(t, out.String(), "GitHub token saved")
	assert.Contains(t, out.String(), "5000 requests per hour")
}

func TestRunToken_SetRejectedByGithub(t *testing.T) {
	cache := &stubCache{}
	verifier := &stubVerifier{err: fmt.Errorf("github api error: Bad credentials (status 401)")}
	c, _ := newTokenTestCli(cache, verifier)

	err := c.runToken(context.Background(), []string{"set", "ghp_expiredtoken"})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "github rejected the token")
	assert.Empty(t, cache.token, "rejected token must not reach the store")
}

func TestRunToken_SetInvalid(t *testing.T) {
	cache := &stubCache{}
	verifier := &stubVerifier{}
	c, _ := newTokenTestCli(cache, verifier)

	err := c.runToken(context.Background(), []string{"set", "not-a-token"})
	require.Error(t, err)

	assert.Zero(t, verifier.calls, "malformed token must be rejected before any network call")
	assert.Empty(t, cache.token)
}

func TestRunToken_Show(t *testing.T) {
	c, out := newTokenTestCli(&stubCache{token: "ghp_abcdef123456"}, &stubVerifier{})

	err := c.runToken(context.Background(), []string{"show"})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "****3456")
	assert.NotContains(t, output, "ghp_abcdef123456")
	assert.Contains(t, output, "local cache")
}

func TestRunToken_ShowNone(t *testing.T) {
	c, out := newTokenTestCli(&stubCache{}, &stubVerifier{})

	err := c.runToken(context.Background(), []string{"show"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "No GitHub token configured")
}

func TestRunToken_Clear(t *testing.T) {
	cache := &stubCache{token: "ghp_abcdef123456"}
	c, out := newTokenTestCli(cache, &stubVerifier{})

	err := c.runToken(context.Background(), []string{"clear"})
	require.NoError(t, err)

	assert.Empty(t, cache.token)
	assert.Contains(t, out.String(), "GitHub token removed")
}

func TestRunToken_BadUsage(t *testing.T) {
	c, _ := newTokenTestCli(&stubCache{}, &stubVerifier{})

	tests := []struct {
		name string
		args []string
	}{
		{name: "no subcommand", args: []string{}},
		{name: "unknown subcommand", args: []string{"rotate"}},
		{name: "set without token", args: []string{"set"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.runToken(context.Background(), tt.args)
			assert.Error(t, err)
		})
	}
}
