package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/AICore_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// Challenge event types
const (
	ChallengeJoined    Type = domain.EventTypeChallengeJoined
	ChallengeCompleted Type = domain.EventTypeChallengeCompleted
	RewardSettled      Type = domain.EventTypeRewardSettled
	ChallengeCreated   Type = domain.EventTypeChallengeCreated
	ChallengeDeleted   Type = domain.EventTypeChallengeDeleted
)

// Typed event payloads for type safety

// ChallengeJoinedPayloadV1 is the typed payload for join events
type ChallengeJoinedPayloadV1 struct {
	ChallengeID         string `json:"challenge_id"`
	UserID              string `json:"user_id"`
	CurrentParticipants int    `json:"current_participants"`
	Timestamp           int64  `json:"timestamp"`
}

// ChallengeCompletedPayloadV1 is the typed payload for completion events
type ChallengeCompletedPayloadV1 struct {
	ChallengeID string `json:"challenge_id"`
	UserID      string `json:"user_id"`
	Timestamp   int64  `json:"timestamp"`
}

// RewardSettledPayloadV1 is the typed payload for settlement events
type RewardSettledPayloadV1 struct {
	ChallengeID    string          `json:"challenge_id"`
	UserID         string          `json:"user_id"`
	AicoreCredited decimal.Decimal `json:"aicore_credited"`
	WalletCredited decimal.Decimal `json:"wallet_credited"`
	ItemsCredited  int             `json:"items_credited"`
	Reconciled     bool            `json:"reconciled"`
	Timestamp      int64           `json:"timestamp"`
}

// ChallengeCatalogPayloadV1 is the typed payload for create/delete events
type ChallengeCatalogPayloadV1 struct {
	ChallengeID string `json:"challenge_id"`
	ActorID     string `json:"actor_id"`
	Timestamp   int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewChallengeJoinedEvent creates a join event
func NewChallengeJoinedEvent(challengeID, userID string, currentParticipants int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChallengeJoined,
		Payload: ChallengeJoinedPayloadV1{
			ChallengeID:         challengeID,
			UserID:              userID,
			CurrentParticipants: currentParticipants,
			Timestamp:           time.Now().Unix(),
		},
	}
}

// NewChallengeCompletedEvent creates a completion event
func NewChallengeCompletedEvent(challengeID, userID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChallengeCompleted,
		Payload: ChallengeCompletedPayloadV1{
			ChallengeID: challengeID,
			UserID:      userID,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewRewardSettledEvent creates a settlement event
func NewRewardSettledEvent(challengeID, userID string, aicore, wallet decimal.Decimal, items int, reconciled bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardSettled,
		Payload: RewardSettledPayloadV1{
			ChallengeID:    challengeID,
			UserID:         userID,
			AicoreCredited: aicore,
			WalletCredited: wallet,
			ItemsCredited:  items,
			Reconciled:     reconciled,
			Timestamp:      time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"reconciled": reconciled,
		},
	}
}

// NewChallengeCatalogEvent creates a created/deleted event
func NewChallengeCatalogEvent(eventType Type, challengeID, actorID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: ChallengeCatalogPayloadV1{
			ChallengeID: challengeID,
			ActorID:     actorID,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
