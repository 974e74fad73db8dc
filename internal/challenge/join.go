package challenge

import (
	"context"
	"errors"
	"log/slog"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/event"
	"github.com/osse101/AICore_Go/internal/logger"
	"github.com/osse101/AICore_Go/internal/metrics"
	"github.com/osse101/AICore_Go/internal/repository"
)

// Join adds userID to an active challenge with free capacity
func (s *service) Join(ctx context.Context, challengeID, userID string) (*domain.Participant, error) {
	log := logger.FromContext(ctx).With("challenge_id", challengeID, "user_id", userID)

	if err := requireUser(userID); err != nil {
		return nil, err
	}

	c, err := s.repo.GetChallenge(ctx, challengeID)
	if err != nil {
		metrics.ChallengeJoins.WithLabelValues(metrics.JoinResultError).Inc()
		return nil, domain.StoreError(ErrContextLoadChallenge, err)
	}
	if c == nil || !c.IsActive {
		s.rejectJoin(log, metrics.JoinResultNotFound)
		return nil, domain.ErrChallengeNotFound
	}

	// Fast rejections; the transaction below is authoritative
	existing, err := s.repo.GetParticipant(ctx, challengeID, userID)
	if err != nil {
		metrics.ChallengeJoins.WithLabelValues(metrics.JoinResultError).Inc()
		return nil, domain.StoreError(ErrContextLoadParticipant, err)
	}
	if existing != nil {
		s.rejectJoin(log, metrics.JoinResultAlreadyJoined)
		return nil, domain.ErrAlreadyJoined
	}
	if c.IsFull() {
		s.rejectJoin(log, metrics.JoinResultFull)
		return nil, domain.ErrChallengeFull
	}

	participant, current, err := s.executeJoinTx(ctx, challengeID, userID)
	if errors.Is(err, errIncrementRejected) {
		err = s.classifyRejectedIncrement(ctx, challengeID)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyJoined):
			s.rejectJoin(log, metrics.JoinResultAlreadyJoined)
		case errors.Is(err, domain.ErrChallengeFull):
			s.rejectJoin(log, metrics.JoinResultFull)
		case errors.Is(err, domain.ErrNotFound):
			s.rejectJoin(log, metrics.JoinResultNotFound)
		default:
			metrics.ChallengeJoins.WithLabelValues(metrics.JoinResultError).Inc()
			log.Error(ErrContextInsertParticipant, "error", err)
		}
		return nil, err
	}

	s.cache.Invalidate()
	log.Info(LogMsgJoined, "current_participants", current)
	s.publish(ctx, event.NewChallengeJoinedEvent(challengeID, userID, current))

	return participant, nil
}

// errIncrementRejected means the guarded increment matched no row: the challenge is
// full, inactive or gone. Join decides which after the transaction ends.
var errIncrementRejected = errors.New("participant increment rejected")

// executeJoinTx inserts the participant and applies the guarded increment in one transaction.
// The unique (challenge_id, user_id) constraint closes the double-join race and the
// guarded increment closes the over-capacity race.
func (s *service) executeJoinTx(ctx context.Context, challengeID, userID string) (*domain.Participant, int, error) {
	tx, err := s.repo.BeginChallengeTx(ctx)
	if err != nil {
		return nil, 0, domain.StoreError(ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	participant := &domain.Participant{
		ChallengeID: challengeID,
		UserID:      userID,
		Status:      domain.ParticipantStatusActive,
	}
	if err := tx.InsertParticipant(ctx, participant); err != nil {
		if errors.Is(err, domain.ErrAlreadyJoined) {
			return nil, 0, domain.ErrAlreadyJoined
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrChallengeNotFound
		}
		return nil, 0, domain.StoreError(ErrContextInsertParticipant, err)
	}

	current, ok, err := tx.IncrementParticipants(ctx, challengeID)
	if err != nil {
		return nil, 0, domain.StoreError(ErrContextIncrement, err)
	}
	if !ok {
		return nil, 0, errIncrementRejected
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, domain.StoreError(ErrContextCommit, err)
	}
	return participant, current, nil
}

// classifyRejectedIncrement tells a challenge that filled up from one deactivated or
// deleted after the pre-checks. It runs after the join transaction has rolled back.
func (s *service) classifyRejectedIncrement(ctx context.Context, challengeID string) error {
	c, err := s.repo.GetChallenge(ctx, challengeID)
	if err != nil {
		return domain.StoreError(ErrContextLoadChallenge, err)
	}
	if c == nil || !c.IsActive {
		return domain.ErrChallengeNotFound
	}
	return domain.ErrChallengeFull
}

func (s *service) rejectJoin(log *slog.Logger, result string) {
	metrics.ChallengeJoins.WithLabelValues(result).Inc()
	log.Warn(LogMsgJoinRejected, "reason", result)
}
