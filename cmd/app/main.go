// @title AICore Challenges API
// @version 1.0
// @description Challenge participation and reward settlement.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/AICore_Go/internal/bootstrap"
	"github.com/osse101/AICore_Go/internal/challenge"
	"github.com/osse101/AICore_Go/internal/config"
	"github.com/osse101/AICore_Go/internal/eventlog"
	"github.com/osse101/AICore_Go/internal/handler"
	"github.com/osse101/AICore_Go/internal/server"
	"github.com/osse101/AICore_Go/internal/verification"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Service exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn("Configuration warning", "warning", w)
	}

	handler.InitValidator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := bootstrap.ConnectDatabase(ctx, cfg)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	eventLogService := eventlog.NewService(repos.EventLog)

	eventBus, err := bootstrap.InitializeEventSystem(eventLogService)
	if err != nil {
		dbPool.Close()
		return err
	}

	registry := verification.DefaultRegistry()
	verifier := verification.NewDispatcher(registry, repos.ChallengeStore)
	slog.Info("Verification registry ready", "keys", registry.Keys())

	challengeService := challenge.NewService(repos.Challenge, verifier, eventBus, challenge.Config{
		CatalogCacheSize: cfg.CatalogCacheSize,
		CatalogCacheTTL:  cfg.CatalogCacheTTL,
	})

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		AdminKey:       cfg.AdminKey,
		TrustedProxies: cfg.TrustedProxies,
		ServiceName:    cfg.ServiceName,
		Version:        cfg.Version,
		RequestTimeout: cfg.RequestTimeout,
	}, dbPool, challengeService, eventLogService)

	workers := bootstrap.StartBackgroundWorkers(cfg, challengeService, eventLogService)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:  srv,
		Workers: workers,
		DBPool:  dbPool,
	})

	return err
}
