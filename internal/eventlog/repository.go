package eventlog

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is a challenge event ready to be written
type Entry struct {
	EventType   string
	ChallengeID *string
	UserID      *string
	Payload     json.RawMessage
	Metadata    json.RawMessage
}

// Event represents a logged event
type Event struct {
	ID          int64           `json:"id"`
	EventType   string          `json:"event_type"`
	ChallengeID *string         `json:"challenge_id,omitempty"`
	UserID      *string         `json:"user_id,omitempty"`
	Payload     json.RawMessage `json:"payload"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EventFilter filters events for queries. Nil fields are not applied.
type EventFilter struct {
	UserID      *string
	ChallengeID *string
	EventType   *string
	Since       *time.Time
	Limit       int
}

// Repository defines the interface for event logging storage
type Repository interface {
	// LogEvent stores an event
	LogEvent(ctx context.Context, entry Entry) error

	// GetEvents retrieves events newest first
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// CleanupOldEvents removes events older than the specified number of days
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
