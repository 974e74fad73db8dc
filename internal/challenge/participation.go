package challenge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/logger"
	"github.com/osse101/AICore_Go/internal/verification"
)

// RequestStatusChange records progress (target active) or completes the participation
// (target completed). Completion runs verification first and settles the reward in the
// same transaction as the status write. Completing an already-completed row is a no-op.
func (s *service) RequestStatusChange(ctx context.Context, challengeID, userID string, target domain.ParticipantStatus, progress json.RawMessage) (*domain.Participant, error) {
	log := logger.FromContext(ctx).With("challenge_id", challengeID, "user_id", userID, "target_status", target)

	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, target)
	}
	if len(progress) > 0 && !json.Valid(progress) {
		return nil, fmt.Errorf("%w: progress_data is not valid JSON", domain.ErrInvalidInput)
	}
	// An explicit JSON null keeps the stored progress, same as an absent value
	if isJSONNull(progress) {
		progress = nil
	}

	c, err := s.repo.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, domain.StoreError(ErrContextLoadChallenge, err)
	}
	if c == nil {
		return nil, domain.ErrChallengeNotFound
	}

	p, err := s.repo.GetParticipant(ctx, challengeID, userID)
	if err != nil {
		return nil, domain.StoreError(ErrContextLoadParticipant, err)
	}
	if p == nil {
		return nil, domain.ErrParticipationNotFound
	}

	merged := p.ProgressData
	if len(progress) > 0 {
		merged = progress
	}

	if target == domain.ParticipantStatusActive {
		return s.updateProgress(ctx, p, merged)
	}

	if p.IsCompleted() {
		log.Info(LogMsgAlreadyCompleted)
		return p, nil
	}

	if c.HasVerification() {
		passed := s.verifier.Verify(ctx, verification.Request{
			UserID:    userID,
			Challenge: c,
			Progress:  merged,
		})
		if !passed {
			log.Warn(LogMsgVerificationRejected, "verification_key", *c.VerificationKey)
			return nil, domain.ErrVerificationFailed
		}
	}

	return s.completeAndSettle(ctx, c, userID, merged)
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (s *service) updateProgress(ctx context.Context, p *domain.Participant, progress json.RawMessage) (*domain.Participant, error) {
	if p.IsCompleted() {
		return nil, fmt.Errorf("%w: participation already completed", domain.ErrInvalidTransition)
	}

	updated, err := s.repo.UpdateProgress(ctx, p.ChallengeID, p.UserID, progress)
	if err != nil {
		return nil, domain.StoreError(ErrContextUpdateProgress, err)
	}
	if updated == nil {
		// Completed between our read and the write
		return nil, fmt.Errorf("%w: participation already completed", domain.ErrInvalidTransition)
	}

	logger.FromContext(ctx).Info(LogMsgProgressUpdated, "challenge_id", p.ChallengeID, "user_id", p.UserID)
	return updated, nil
}

// GetParticipation returns the caller's participation row
func (s *service) GetParticipation(ctx context.Context, challengeID, userID string) (*domain.Participant, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	p, err := s.repo.GetParticipant(ctx, challengeID, userID)
	if err != nil {
		return nil, domain.StoreError(ErrContextLoadParticipant, err)
	}
	if p == nil {
		return nil, domain.ErrParticipationNotFound
	}
	return p, nil
}

// ListUserParticipations returns every participation of userID
func (s *service) ListUserParticipations(ctx context.Context, userID string) ([]domain.Participant, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListUserParticipants(ctx, userID)
	if err != nil {
		return nil, domain.StoreError(ErrContextListParticipants, err)
	}
	if rows == nil {
		rows = []domain.Participant{}
	}
	return rows, nil
}
