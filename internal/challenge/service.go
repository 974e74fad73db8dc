// Package challenge owns the challenge catalog and the participation lifecycle:
// join, progress, completion with verification, and reward settlement.
package challenge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/event"
	"github.com/osse101/AICore_Go/internal/logger"
	"github.com/osse101/AICore_Go/internal/repository"
	"github.com/osse101/AICore_Go/internal/verification"
)

// Service defines the challenge catalog and participation operations
type Service interface {
	// Lifecycle
	Join(ctx context.Context, challengeID, userID string) (*domain.Participant, error)
	RequestStatusChange(ctx context.Context, challengeID, userID string, target domain.ParticipantStatus, progress json.RawMessage) (*domain.Participant, error)
	GetParticipation(ctx context.Context, challengeID, userID string) (*domain.Participant, error)
	ListUserParticipations(ctx context.Context, userID string) ([]domain.Participant, error)
	ReconcileUnsettled(ctx context.Context, limit int) (*ReconcileResult, error)

	// Catalog
	List(ctx context.Context) ([]domain.Challenge, error)
	ListAll(ctx context.Context) ([]domain.Challenge, error)
	Create(ctx context.Context, def domain.ChallengeDefinition, ownerID string) (*domain.Challenge, error)
	Delete(ctx context.Context, challengeID, requesterID string) error
}

// Verifier checks completion requests; *verification.Dispatcher implements it
type Verifier interface {
	Verify(ctx context.Context, req verification.Request) bool
	Supports(key string) bool
	ValidateParams(key string, params json.RawMessage) error
}

// Config tunes the service
type Config struct {
	CatalogCacheSize int
	CatalogCacheTTL  time.Duration
}

// ReconcileResult summarises one reconciliation pass
type ReconcileResult struct {
	Scanned int `json:"scanned"`
	Settled int `json:"settled"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type service struct {
	repo     repository.Challenge
	verifier Verifier
	eventBus event.Bus
	cache    *catalogCache
	now      func() time.Time
}

// NewService creates a new challenge service. eventBus may be nil.
func NewService(repo repository.Challenge, verifier Verifier, eventBus event.Bus, cfg Config) Service {
	return &service{
		repo:     repo,
		verifier: verifier,
		eventBus: eventBus,
		cache:    newCatalogCache(cfg.CatalogCacheSize, cfg.CatalogCacheTTL),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// publish sends evt on the bus. Events are notifications only, so failures are logged, not returned.
func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func requireUser(userID string) error {
	if userID == "" {
		return domain.ErrNotAuthenticated
	}
	return nil
}
