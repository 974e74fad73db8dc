package eventlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/event"
	"github.com/osse101/AICore_Go/internal/logger"
)

// Service records challenge events and serves the audit trail
type Service interface {
	// Subscribe registers the event logger for every challenge event type
	Subscribe(bus event.Bus) error

	// GetEvents returns logged events matching filter, newest first
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

// LoggedEventTypes are the event types persisted to the audit trail
var LoggedEventTypes = []event.Type{
	event.ChallengeJoined,
	event.ChallengeCompleted,
	event.RewardSettled,
	event.ChallengeCreated,
	event.ChallengeDeleted,
}

// subject is the part of every challenge payload the log indexes on
type subject struct {
	ChallengeID string `json:"challenge_id"`
	UserID      string `json:"user_id"`
	ActorID     string `json:"actor_id"`
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range LoggedEventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent persists evt. Catalog events carry the actor in place of a user.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodePayload, err)
	}

	var metadata json.RawMessage
	if evt.Metadata != nil {
		if metadata, err = json.Marshal(evt.Metadata); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgEncodePayload, err)
		}
	}

	entry := Entry{
		EventType: string(evt.Type),
		Payload:   payload,
		Metadata:  metadata,
	}

	subj, err := event.DecodePayload[subject](evt.Payload)
	if err != nil {
		log.Debug(LogMsgEventUndecodable, LogFieldType, evt.Type, LogFieldError, err)
	} else {
		entry.ChallengeID = optional(subj.ChallengeID)
		entry.UserID = optional(subj.UserID)
		if entry.UserID == nil {
			entry.UserID = optional(subj.ActorID)
		}
	}

	if err := s.repo.LogEvent(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return domain.StoreError("log event", err)
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldChallengeID, subj.ChallengeID)
	return nil
}

func (s *service) GetEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultQueryLimit
	case filter.Limit > MaxQueryLimit:
		filter.Limit = MaxQueryLimit
	}

	events, err := s.repo.GetEvents(ctx, filter)
	if err != nil {
		return nil, domain.StoreError("get events", err)
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgRetention)
	}
	count, err := s.repo.CleanupOldEvents(ctx, retentionDays)
	if err != nil {
		return 0, domain.StoreError("cleanup events", err)
	}
	return count, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
