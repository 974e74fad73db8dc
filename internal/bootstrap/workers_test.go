package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AICore_Go/internal/challenge"
	"github.com/osse101/AICore_Go/internal/config"
	"github.com/osse101/AICore_Go/mocks"
)

func TestStartBackgroundWorkers(t *testing.T) {
	restoreDefaultLogger(t)

	t.Run("nothing scheduled", func(t *testing.T) {
		svc := mocks.NewMockChallengeService(t)
		eventLog := mocks.NewMockEventLogService(t)

		workers := StartBackgroundWorkers(&config.Config{}, svc, eventLog)

		assert.Nil(t, workers)
		assert.NotPanics(t, workers.Stop)
	})

	t.Run("cleanup needs an event log", func(t *testing.T) {
		svc := mocks.NewMockChallengeService(t)

		assert.Nil(t, StartBackgroundWorkers(&config.Config{EventRetentionDays: 30}, svc, nil))
	})

	t.Run("runs reconciliation on the interval", func(t *testing.T) {
		svc := mocks.NewMockChallengeService(t)
		ran := make(chan struct{}, 8)
		svc.On("ReconcileUnsettled", mock.Anything, 7).
			Return(&challenge.ReconcileResult{}, nil).
			Run(func(mock.Arguments) {
				select {
				case ran <- struct{}{}:
				default:
				}
			})

		workers := StartBackgroundWorkers(&config.Config{
			ReconcileInterval:  10 * time.Millisecond,
			ReconcileBatchSize: 7,
		}, svc, nil)
		require.NotNil(t, workers)

		select {
		case <-ran:
		case <-time.After(2 * time.Second):
			t.Fatal("reconcile job never ran")
		}
		workers.Stop()
	})

	t.Run("cleanup alone starts the pool", func(t *testing.T) {
		svc := mocks.NewMockChallengeService(t)
		eventLog := mocks.NewMockEventLogService(t)

		workers := StartBackgroundWorkers(&config.Config{EventRetentionDays: 30}, svc, eventLog)
		require.NotNil(t, workers)
		workers.Stop()
	})
}
