package worker

import (
	"context"
	"fmt"

	"github.com/osse101/AICore_Go/internal/challenge"
	"github.com/osse101/AICore_Go/internal/logger"
)

// Reconciler is the part of challenge.Service the reconciliation job drives
type Reconciler interface {
	ReconcileUnsettled(ctx context.Context, limit int) (*challenge.ReconcileResult, error)
}

// ReconcileJob settles one batch of completed participations that are missing
// their reward marker
type ReconcileJob struct {
	reconciler Reconciler
	limit      int
}

// NewReconcileJob creates a job that processes at most limit rows per pass
func NewReconcileJob(reconciler Reconciler, limit int) *ReconcileJob {
	if limit <= 0 {
		limit = challenge.DefaultReconcileLimit
	}
	return &ReconcileJob{reconciler: reconciler, limit: limit}
}

func (j *ReconcileJob) Process(ctx context.Context) error {
	res, err := j.reconciler.ReconcileUnsettled(ctx, j.limit)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgReconcileFailed, err)
	}

	// Quiet when there was nothing to do
	if res.Scanned > 0 {
		logger.FromContext(ctx).Info(LogMsgReconcileCompleted,
			"scanned", res.Scanned,
			"settled", res.Settled,
			"skipped", res.Skipped,
			"failed", res.Failed)
	}
	return nil
}
