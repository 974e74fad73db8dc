package metrics

import (
	"context"

	"github.com/osse101/AICore_Go/internal/event"
	"github.com/osse101/AICore_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all challenge events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.ChallengeJoined,
		event.ChallengeCompleted,
		event.RewardSettled,
		event.ChallengeCreated,
		event.ChallengeDeleted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ChallengeJoined:
		ChallengeJoins.WithLabelValues(JoinResultJoined).Inc()

	case event.ChallengeCompleted:
		ChallengeCompletions.Inc()

	case event.RewardSettled:
		payload, err := event.DecodePayload[event.RewardSettledPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		if payload.AicoreCredited.IsPositive() {
			RewardCoreCredited.WithLabelValues(BalanceAicore).Add(payload.AicoreCredited.InexactFloat64())
		}
		if payload.WalletCredited.IsPositive() {
			RewardCoreCredited.WithLabelValues(BalanceWallet).Add(payload.WalletCredited.InexactFloat64())
		}
		if payload.ItemsCredited > 0 {
			RewardItemsCredited.Add(float64(payload.ItemsCredited))
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
