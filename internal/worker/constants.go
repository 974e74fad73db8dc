package worker

// Log messages - worker pool
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgWorkerQueueFull   = "Worker queue full, job dropped"
)

// Log messages - reconciliation
const (
	LogMsgReconcileCompleted = "Settlement reconciliation pass completed"
	ErrMsgReconcileFailed    = "settlement reconciliation failed"
)

// Background pool sizing. One worker keeps reconciliation passes serial; the queue
// holds at most one pending run per scheduled job and further ticks are dropped.
const (
	BackgroundWorkers   = 1
	BackgroundQueueSize = 2
)
