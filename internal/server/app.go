// Package server initializes and runs the backend: it wires the GitHub
// document store, the domain services, and the HTTP API, and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/logging"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/analytics"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/broadcasts"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/config"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/httpapi"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/keys"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/state"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/storage/githubapi"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/users"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	client := githubapi.NewClient(cfg.GitHubToken, cfg.RepoOwner, cfg.RepoName, cfg.Branch)
	repo := state.NewGitHubRepository(client, cfg.DBPath, logger)

	srv := httpapi.NewServer(cfg, logger,
		users.NewService(repo, cfg, logger),
		keys.NewService(repo, logger),
		broadcasts.NewService(repo, logger),
		analytics.NewService(repo, logger),
	)

	return &App{config: cfg, logger: logger, httpServer: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"repository", app.config.RepoOwner+"/"+app.config.RepoName,
		"db_path", app.config.DBPath,
	)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
