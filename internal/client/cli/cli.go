package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/vintaclectic/RepoRadar/internal/client/auth"
	"github.com/vintaclectic/RepoRadar/internal/client/token"
	"github.com/vintaclectic/RepoRadar/internal/github"
	"github.com/vintaclectic/RepoRadar/internal/models"
)

// Searcher абстрагирует GitHub поиск, чтобы CLI тестировался без сети
type Searcher interface {
	Search(ctx context.Context, query string, limit int) (*github.SearchResult, error)
}

// SearcherFactory создает Searcher под конкретный GitHub токен
type SearcherFactory func(githubToken string) Searcher

// TokenVerifier проверяет токен живым запросом к GitHub (/rate_limit)
// и возвращает квоту, которую токен дает
type TokenVerifier func(ctx context.Context, githubToken string) (models.RateLimit, error)

type Cli struct {
	authService *auth.Service
	relay       *token.Relay
	newSearcher SearcherFactory
	verifyToken TokenVerifier
	out         io.Writer
}

func New(authService *auth.Service, relay *token.Relay, newSearcher SearcherFactory, verifyToken TokenVerifier) *Cli {
	return &Cli{
		authService: authService,
		relay:       relay,
		newSearcher: newSearcher,
		verifyToken: verifyToken,
		out:         os.Stdout,
	}
}

// Run разбирает команду и выполняет ее
func (c *Cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		PrintUsage()
		return fmt.Errorf("command is required")
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "search":
		return c.runSearch(ctx, rest)
	case "token":
		return c.runToken(ctx, rest)
	default:
		PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func PrintUsage() {
	fmt.Println("RepoRadar Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  reporadar [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version        Show version information")
	fmt.Println("  --server URL     Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH        Path to local database (default: reporadar-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                Register new account")
	fmt.Println("  login                   Login with username or email")
	fmt.Println("  logout                  Logout and wipe local session")
	fmt.Println("  status                  Show session and token status")
	fmt.Println("  search <query>          Search GitHub repositories")
	fmt.Println("  token set <token>       Save GitHub API token")
	fmt.Println("  token show              Show where the active token comes from")
	fmt.Println("  token clear             Remove GitHub API token")
	fmt.Println()
	fmt.Println("Search flags:")
	fmt.Println("  --sort MODE      relevance (default), stars, recent, active")
	fmt.Println("  --lang LANG      Filter by language, exact match (repeatable)")
	fmt.Println("  --page N         Page number, 1-based (default: 1)")
	fmt.Println("  --per-page N     Page size: 10, 25, 50 or 100 (default: 25)")
	fmt.Println("  --explain        Show the score breakdown for each row")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  reporadar register")
	fmt.Println("  reporadar search 'web framework' --lang Go --sort stars")
	fmt.Println("  reporadar search cli --page 2 --per-page 50 --explain")
	fmt.Println("  reporadar token set ghp_yourtokenhere")
	fmt.Println("  reporadar --server https://example.com login")
}

// readInput читает строку из stdin
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// readPassword читает пароль без отображения на экране.
// Когда stdin не терминал (пайп, CI), откатывается на обычное чтение.
func readPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return readInput(prompt)
	}

	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(passwordBytes), nil
}
