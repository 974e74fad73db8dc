package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/AICore_Go/internal/config"
	"github.com/osse101/AICore_Go/internal/database"
	"github.com/osse101/AICore_Go/internal/database/postgres"
	"github.com/osse101/AICore_Go/internal/eventlog"
	"github.com/osse101/AICore_Go/internal/repository"
)

// Repositories holds the repository implementations used by the application
type Repositories struct {
	Challenge repository.Challenge
	// ChallengeStore is the concrete repository, which also serves verifier reads
	ChallengeStore *postgres.ChallengeRepository
	EventLog       eventlog.Repository
}

// ConnectDatabase opens the pool and, unless disabled, applies pending migrations
func ConnectDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, DatabaseStartupTimeout)
	defer cancel()

	pool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:  cfg.GetDBConnString(),
		MaxConns:    cfg.DBMaxConns,
		MaxConnIdle: cfg.DBMaxConnIdleTime,
		MaxConnLife: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}
	slog.Info(LogMsgDatabaseConnected, "host", cfg.DBHost, "db", cfg.DBName)

	if !cfg.RunMigrations {
		slog.Info(LogMsgMigrationsSkipped)
		return pool, nil
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRunMigration, err)
	}
	return pool, nil
}

// InitializeRepositories creates the repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	store := postgres.NewChallengeRepository(dbPool)
	return &Repositories{
		Challenge:      store,
		ChallengeStore: store,
		EventLog:       postgres.NewEventLogRepository(dbPool),
	}
}
