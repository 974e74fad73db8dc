package event

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_DeliversToSubscribersOfType(t *testing.T) {
	bus := NewMemoryBus()
	var joined, completed int

	bus.Subscribe(ChallengeJoined, func(_ context.Context, evt Event) error {
		payload, err := DecodePayload[ChallengeJoinedPayloadV1](evt.Payload)
		require.NoError(t, err)
		assert.Equal(t, "c1", payload.ChallengeID)
		joined++
		return nil
	})
	bus.Subscribe(ChallengeCompleted, func(context.Context, Event) error {
		completed++
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewChallengeJoinedEvent("c1", "u1", 1)))

	assert.Equal(t, 1, joined)
	assert.Equal(t, 0, completed)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), NewChallengeCompletedEvent("c1", "u1")))
}

func TestMemoryBus_AggregatesHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	bus.Subscribe(ChallengeDeleted, func(context.Context, Event) error {
		calls++
		return errors.New("first")
	})
	bus.Subscribe(ChallengeDeleted, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), NewChallengeCatalogEvent(ChallengeDeleted, "c1", "u1"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "encountered 1 errors")
	assert.Equal(t, 2, calls, "later handlers still run after an error")
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]interface{}{
		"challenge_id":    "c1",
		"user_id":         "u1",
		"aicore_credited": "7",
		"wallet_credited": "3",
		"items_credited":  2,
		"reconciled":      true,
	}

	got, err := DecodePayload[RewardSettledPayloadV1](raw)

	require.NoError(t, err)
	assert.Equal(t, "c1", got.ChallengeID)
	assert.True(t, got.AicoreCredited.Equal(decimal.NewFromInt(7)))
	assert.True(t, got.WalletCredited.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 2, got.ItemsCredited)
	assert.True(t, got.Reconciled)
}
