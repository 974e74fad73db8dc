package eventlog_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/event"
	"github.com/osse101/AICore_Go/internal/eventlog"
	"github.com/osse101/AICore_Go/mocks"
)

func subscribedBus(t *testing.T, repo eventlog.Repository) *event.MemoryBus {
	t.Helper()
	bus := event.NewMemoryBus()
	require.NoError(t, eventlog.NewService(repo).Subscribe(bus))
	return bus
}

func TestService_LogsChallengeEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("join carries challenge and user", func(t *testing.T) {
		repo := mocks.NewMockEventLogRepository(t)
		repo.On("LogEvent", ctx, mock.MatchedBy(func(e eventlog.Entry) bool {
			return e.EventType == domain.EventTypeChallengeJoined &&
				*e.ChallengeID == "c1" && *e.UserID == "u1" &&
				e.Metadata == nil
		})).Return(nil).Once()

		require.NoError(t, subscribedBus(t, repo).Publish(ctx, event.NewChallengeJoinedEvent("c1", "u1", 3)))
	})

	t.Run("catalog events record the actor as user", func(t *testing.T) {
		repo := mocks.NewMockEventLogRepository(t)
		repo.On("LogEvent", ctx, mock.MatchedBy(func(e eventlog.Entry) bool {
			return e.EventType == domain.EventTypeChallengeDeleted && *e.UserID == "admin-1"
		})).Return(nil).Once()

		require.NoError(t, subscribedBus(t, repo).Publish(ctx, event.NewChallengeCatalogEvent(event.ChallengeDeleted, "c1", "admin-1")))
	})

	t.Run("settlement keeps payload and metadata", func(t *testing.T) {
		repo := mocks.NewMockEventLogRepository(t)
		var got eventlog.Entry
		repo.On("LogEvent", ctx, mock.Anything).Return(nil).Once().
			Run(func(args mock.Arguments) { got = args.Get(1).(eventlog.Entry) })

		evt := event.NewRewardSettledEvent("c1", "u1", decimal.NewFromInt(5), decimal.Zero, 2, true)
		require.NoError(t, subscribedBus(t, repo).Publish(ctx, evt))

		var payload event.RewardSettledPayloadV1
		require.NoError(t, json.Unmarshal(got.Payload, &payload))
		assert.True(t, payload.AicoreCredited.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, 2, payload.ItemsCredited)
		assert.JSONEq(t, `{"reconciled":true}`, string(got.Metadata))
	})

	t.Run("store failure surfaces through publish", func(t *testing.T) {
		repo := mocks.NewMockEventLogRepository(t)
		repo.On("LogEvent", ctx, mock.Anything).Return(assert.AnError).Once()

		assert.Error(t, subscribedBus(t, repo).Publish(ctx, event.NewChallengeCompletedEvent("c1", "u1")))
	})

	t.Run("unrelated event types are ignored", func(t *testing.T) {
		repo := mocks.NewMockEventLogRepository(t)

		require.NoError(t, subscribedBus(t, repo).Publish(ctx, event.Event{Type: "user.renamed"}))
	})
}

func TestService_GetEvents(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"default limit", 0, eventlog.DefaultQueryLimit},
		{"caps large limit", 10_000, eventlog.MaxQueryLimit},
		{"keeps valid limit", 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockEventLogRepository(t)
			repo.On("GetEvents", ctx, eventlog.EventFilter{Limit: tt.wantLimit}).Return(nil, nil).Once()

			events, err := eventlog.NewService(repo).GetEvents(ctx, eventlog.EventFilter{Limit: tt.limit})

			require.NoError(t, err)
			assert.NotNil(t, events)
			assert.Empty(t, events)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		repo := mocks.NewMockEventLogRepository(t)
		repo.On("GetEvents", ctx, mock.Anything).Return(nil, assert.AnError).Once()

		_, err := eventlog.NewService(repo).GetEvents(ctx, eventlog.EventFilter{})

		assert.ErrorIs(t, err, domain.ErrStore)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestService_CleanupOldEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes past retention", func(t *testing.T) {
		repo := mocks.NewMockEventLogRepository(t)
		repo.On("CleanupOldEvents", ctx, 10).Return(int64(5), nil).Once()

		count, err := eventlog.NewService(repo).CleanupOldEvents(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})

	t.Run("rejects non-positive retention", func(t *testing.T) {
		repo := mocks.NewMockEventLogRepository(t)

		_, err := eventlog.NewService(repo).CleanupOldEvents(ctx, 0)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
