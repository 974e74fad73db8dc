package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/AICore_Go/internal/database"
)

// Stopper is anything that drains in-flight work on shutdown, e.g. *server.Server
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown
type ShutdownComponents struct {
	Server  Stopper
	Workers *BackgroundWorkers
	DBPool  database.Pool
}

// GracefulShutdown stops the HTTP server first so in-flight requests finish against
// a live pool, then the background workers, then closes the pool. Errors are logged
// and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Workers != nil {
		slog.Info(LogMsgStoppingWorkers)
		components.Workers.Stop()
	}

	if components.DBPool != nil {
		slog.Info(LogMsgClosingDatabase)
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
