package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vintaclectic/RepoRadar/internal/client/api"
	"github.com/vintaclectic/RepoRadar/internal/client/auth"
	"github.com/vintaclectic/RepoRadar/internal/client/cli"
	"github.com/vintaclectic/RepoRadar/internal/client/storage/boltdb"
	"github.com/vintaclectic/RepoRadar/internal/client/token"
	"github.com/vintaclectic/RepoRadar/internal/github"
	"github.com/vintaclectic/RepoRadar/internal/models"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "reporadar-client.db", "Path to local database")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	// Открываем локальное хранилище
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Собираем сервисы клиента. Предупреждения сервисов (например,
	// недоступный при logout сервер) идут в stderr текстом
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	apiClient := api.NewClient(*serverURL)
	authService := auth.NewService(logger, apiClient, boltStorage, boltStorage)
	tokenRelay := token.NewRelay(apiClient, authService, boltStorage)

	// GitHub клиент для поиска: не шумит в терминал
	quietLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	newSearcher := func(githubToken string) cli.Searcher {
		return github.NewClient(quietLogger, "", githubToken)
	}
	verifyToken := func(ctx context.Context, githubToken string) (models.RateLimit, error) {
		return github.NewClient(quietLogger, "", githubToken).CheckToken(ctx)
	}

	app := cli.New(authService, tokenRelay, newSearcher, verifyToken)
	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("RepoRadar Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
