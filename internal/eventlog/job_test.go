package eventlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AICore_Go/internal/eventlog"
	"github.com/osse101/AICore_Go/internal/metrics"
	"github.com/osse101/AICore_Go/mocks"
)

func TestCleanupJob_Process(t *testing.T) {
	t.Run("records deleted rows", func(t *testing.T) {
		svc := mocks.NewMockEventLogService(t)
		svc.On("CleanupOldEvents", mock.Anything, 30).Return(int64(100), nil).Once()

		runsBefore := testutil.ToFloat64(metrics.EventLogCleanupRuns.WithLabelValues(metrics.CleanupResultSuccess))
		rowsBefore := testutil.ToFloat64(metrics.EventLogRowsDeleted)
		start := time.Now().Unix()

		require.NoError(t, eventlog.NewCleanupJob(svc, 30).Process(context.Background()))

		assert.Equal(t, runsBefore+1, testutil.ToFloat64(metrics.EventLogCleanupRuns.WithLabelValues(metrics.CleanupResultSuccess)))
		assert.Equal(t, rowsBefore+100, testutil.ToFloat64(metrics.EventLogRowsDeleted))
		assert.GreaterOrEqual(t, testutil.ToFloat64(metrics.EventLogLastCleanup), float64(start))
	})

	t.Run("failure is wrapped and counted", func(t *testing.T) {
		svc := mocks.NewMockEventLogService(t)
		svc.On("CleanupOldEvents", mock.Anything, 30).Return(int64(0), assert.AnError).Once()

		errorsBefore := testutil.ToFloat64(metrics.EventLogCleanupRuns.WithLabelValues(metrics.CleanupResultError))
		rowsBefore := testutil.ToFloat64(metrics.EventLogRowsDeleted)

		err := eventlog.NewCleanupJob(svc, 30).Process(context.Background())

		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), eventlog.ErrMsgCleanupFailed)
		assert.Equal(t, errorsBefore+1, testutil.ToFloat64(metrics.EventLogCleanupRuns.WithLabelValues(metrics.CleanupResultError)))
		assert.Equal(t, rowsBefore, testutil.ToFloat64(metrics.EventLogRowsDeleted))
	})

	t.Run("disabled retention never deletes", func(t *testing.T) {
		svc := mocks.NewMockEventLogService(t)

		assert.NoError(t, eventlog.NewCleanupJob(svc, 0).Process(context.Background()))
	})
}
