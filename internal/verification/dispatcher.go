package verification

import (
	"context"
	"encoding/json"

	"github.com/osse101/AICore_Go/internal/logger"
	"github.com/osse101/AICore_Go/internal/metrics"
)

// Dispatcher runs the verifier registered for a challenge's key.
// It never returns an error: every failure mode is reported as false.
type Dispatcher struct {
	registry *Registry
	store    Store
}

// NewDispatcher creates a dispatcher reading user state through store
func NewDispatcher(registry *Registry, store Store) *Dispatcher {
	return &Dispatcher{registry: registry, store: store}
}

// Supports reports whether key has a registered verifier
func (d *Dispatcher) Supports(key string) bool {
	_, ok := d.registry.Lookup(key)
	return ok
}

// ValidateParams checks verification params for key at challenge creation
func (d *Dispatcher) ValidateParams(key string, params json.RawMessage) error {
	return d.registry.ValidateParams(key, params)
}

// Verify evaluates req against the verifier named by the challenge's key.
// A challenge without a key always passes.
func (d *Dispatcher) Verify(ctx context.Context, req Request) (passed bool) {
	if req.Challenge == nil || !req.Challenge.HasVerification() {
		return true
	}

	key := *req.Challenge.VerificationKey
	log := logger.FromContext(ctx).With("verification_key", key, "challenge_id", req.Challenge.ID, "user_id", req.UserID)

	v, ok := d.registry.Lookup(key)
	if !ok {
		log.Warn(LogMsgUnknownVerifier)
		metrics.ChallengeVerifications.WithLabelValues(key, ResultUnknownKey).Inc()
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error(LogMsgVerifierPanicked, "panic", r)
			metrics.ChallengeVerifications.WithLabelValues(key, ResultPanic).Inc()
			passed = false
		}
	}()

	ok, err := v.Verify(ctx, d.store, req)
	if err != nil {
		log.Warn(LogMsgVerifierError, "error", err)
		metrics.ChallengeVerifications.WithLabelValues(key, ResultError).Inc()
		return false
	}

	result := ResultRejected
	if ok {
		result = ResultPassed
	}
	metrics.ChallengeVerifications.WithLabelValues(key, result).Inc()
	log.Debug(LogMsgVerifierResult, "passed", ok)
	return ok
}
