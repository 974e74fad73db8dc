package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/AICore_Go/internal/logger"
	"github.com/osse101/AICore_Go/internal/metrics"
)

// CleanupJob enforces event log retention. It is scheduled on the background
// worker pool and records each run in the event_log_* metrics.
type CleanupJob struct {
	service       Service
	retentionDays int
	now           func() time.Time
}

// NewCleanupJob creates a retention job keeping retentionDays of history
func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	return &CleanupJob{
		service:       service,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// Process deletes events past retention. A non-positive retention is a no-op so a
// misconfigured job never empties the log.
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx).With(LogFieldRetentionDays, j.retentionDays)
	if j.retentionDays <= 0 {
		log.Debug(LogMsgCleanupJobSkipped)
		return nil
	}

	started := j.now()
	log.Info(LogMsgCleanupJobStarting, LogFieldCutoff, started.AddDate(0, 0, -j.retentionDays).UTC())

	deleted, err := j.service.CleanupOldEvents(ctx, j.retentionDays)
	elapsed := j.now().Sub(started)
	if err != nil {
		metrics.EventLogCleanupRuns.WithLabelValues(metrics.CleanupResultError).Inc()
		log.Error(LogMsgCleanupJobFailed, LogFieldError, err, LogFieldDuration, elapsed)
		return fmt.Errorf("%s: %w", ErrMsgCleanupFailed, err)
	}

	metrics.EventLogCleanupRuns.WithLabelValues(metrics.CleanupResultSuccess).Inc()
	metrics.EventLogRowsDeleted.Add(float64(deleted))
	metrics.EventLogLastCleanup.Set(float64(started.Unix()))

	log.Info(LogMsgCleanupJobCompleted, LogFieldDeletedCount, deleted, LogFieldDuration, elapsed)
	return nil
}
