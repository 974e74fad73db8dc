package bootstrap

import (
	"log/slog"

	"github.com/osse101/AICore_Go/internal/config"
	"github.com/osse101/AICore_Go/internal/eventlog"
	"github.com/osse101/AICore_Go/internal/scheduler"
	"github.com/osse101/AICore_Go/internal/worker"
)

// BackgroundWorkers are the periodic jobs running beside the HTTP server
type BackgroundWorkers struct {
	Scheduler *scheduler.Scheduler
	Pool      *worker.Pool
}

// StartBackgroundWorkers schedules settlement reconciliation and event log cleanup.
// Each is skipped when its setting is zero; nil is returned when both are.
func StartBackgroundWorkers(cfg *config.Config, reconciler worker.Reconciler, eventLog eventlog.Service) *BackgroundWorkers {
	reconcile := cfg.ReconcileInterval > 0
	cleanup := cfg.EventRetentionDays > 0 && eventLog != nil

	if !reconcile {
		slog.Info(LogMsgReconcilerDisabled)
	}
	if !cleanup {
		slog.Info(LogMsgEventCleanupDisabled)
	}
	if !reconcile && !cleanup {
		return nil
	}

	pool := worker.NewPool(worker.BackgroundWorkers, worker.BackgroundQueueSize)
	pool.Start()
	sched := scheduler.New(pool)

	if reconcile {
		sched.Schedule(JobSettlementReconcile, cfg.ReconcileInterval, worker.NewReconcileJob(reconciler, cfg.ReconcileBatchSize))
		slog.Info(LogMsgReconcilerStarted,
			"interval", cfg.ReconcileInterval,
			"batch_size", cfg.ReconcileBatchSize)
	}

	if cleanup {
		sched.Schedule(JobEventLogCleanup, EventCleanupInterval, eventlog.NewCleanupJob(eventLog, cfg.EventRetentionDays))
		slog.Info(LogMsgEventCleanupStarted, "retention_days", cfg.EventRetentionDays)
	}

	return &BackgroundWorkers{Scheduler: sched, Pool: pool}
}

// Stop halts the schedule first so no new run is queued, then cancels the pool
func (b *BackgroundWorkers) Stop() {
	if b == nil {
		return
	}
	b.Scheduler.Stop()
	b.Pool.Stop()
}
