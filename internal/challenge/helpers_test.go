package challenge

import (
	"context"
	"sync"
	"testing"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/event"
	"github.com/osse101/AICore_Go/internal/verification"
)

// eventRecorder captures published events for assertions
type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *eventRecorder) handle(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *eventRecorder) ofType(t event.Type) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, evt := range r.events {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

type testEnv struct {
	svc    Service
	repo   *FakeRepository
	events *eventRecorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := NewFakeRepository()
	bus := event.NewMemoryBus()
	rec := &eventRecorder{}
	for _, typ := range []event.Type{
		event.ChallengeJoined,
		event.ChallengeCompleted,
		event.RewardSettled,
		event.ChallengeCreated,
		event.ChallengeDeleted,
	} {
		bus.Subscribe(typ, rec.handle)
	}

	dispatcher := verification.NewDispatcher(verification.DefaultRegistry(), repo)
	svc := NewService(repo, dispatcher, bus, Config{})
	return &testEnv{svc: svc, repo: repo, events: rec}
}

func strPtr(s string) *string { return &s }

func activeChallenge(title string, maxParticipants int, rewardCore string) domain.Challenge {
	return domain.Challenge{
		Title:            title,
		IsActive:         true,
		MaxParticipants:  maxParticipants,
		VerificationType: domain.VerificationTypeManual,
		RewardCore:       rewardCore,
		RewardItems:      []domain.RewardItem{},
	}
}
