package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/event"
	"github.com/osse101/AICore_Go/internal/logger"
)

// List returns active challenges, highest priority then newest first
func (s *service) List(ctx context.Context) ([]domain.Challenge, error) {
	return s.list(ctx, cacheKeyActive, false)
}

// ListAll includes inactive challenges; callers gate it to administrators
func (s *service) ListAll(ctx context.Context) ([]domain.Challenge, error) {
	return s.list(ctx, cacheKeyAll, true)
}

func (s *service) list(ctx context.Context, key string, includeInactive bool) ([]domain.Challenge, error) {
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	challenges, err := s.repo.ListChallenges(ctx, includeInactive)
	if err != nil {
		return nil, domain.StoreError(ErrContextListChallenges, err)
	}
	if challenges == nil {
		challenges = []domain.Challenge{}
	}

	s.cache.Set(key, challenges)
	return challenges, nil
}

// Create stores a user-created challenge owned by ownerID
func (s *service) Create(ctx context.Context, def domain.ChallengeDefinition, ownerID string) (*domain.Challenge, error) {
	if err := requireUser(ownerID); err != nil {
		return nil, err
	}
	if err := s.validateDefinition(&def); err != nil {
		return nil, err
	}

	owner := ownerID
	c := &domain.Challenge{
		Title:               def.Title,
		Description:         def.Description,
		IsActive:            true,
		MaxParticipants:     def.MaxParticipants,
		CurrentParticipants: 0,
		VerificationType:    def.VerificationType,
		VerificationKey:     def.VerificationKey,
		VerificationParams:  def.VerificationParams,
		RewardCore:          strings.TrimSpace(def.RewardCore),
		RewardItems:         def.RewardItems,
		OwnerID:             &owner,
		Type:                domain.ChallengeTypeUserCreated,
		Priority:            def.Priority,
	}
	if c.RewardItems == nil {
		c.RewardItems = []domain.RewardItem{}
	}

	if err := s.repo.CreateChallenge(ctx, c); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.StoreError(ErrContextCreateChallenge, err)
	}

	s.cache.Invalidate()
	logger.FromContext(ctx).Info(LogMsgChallengeCreated, "challenge_id", c.ID, "user_id", ownerID)
	s.publish(ctx, event.NewChallengeCatalogEvent(event.ChallengeCreated, c.ID, ownerID))
	return c, nil
}

// validateDefinition normalises def in place and rejects what the store or registry can't honour
func (s *service) validateDefinition(def *domain.ChallengeDefinition) error {
	def.Title = strings.TrimSpace(def.Title)
	if def.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if def.MaxParticipants < 0 {
		return fmt.Errorf("%w: max_participants must not be negative", domain.ErrInvalidInput)
	}

	if def.VerificationType == "" {
		def.VerificationType = domain.VerificationTypeManual
	}

	if def.VerificationKey != nil {
		key := strings.TrimSpace(*def.VerificationKey)
		if key == "" {
			def.VerificationKey = nil
		} else {
			if !s.verifier.Supports(key) {
				return fmt.Errorf("%w: unknown verification key %q", domain.ErrInvalidInput, key)
			}
			if err := s.verifier.ValidateParams(key, def.VerificationParams); err != nil {
				return fmt.Errorf("%w: verification_params for %s: %v", domain.ErrInvalidInput, key, err)
			}
			def.VerificationKey = &key
		}
	}

	if len(def.VerificationParams) > 0 && !json.Valid(def.VerificationParams) {
		return fmt.Errorf("%w: verification_params is not valid JSON", domain.ErrInvalidInput)
	}

	for i, item := range def.RewardItems {
		if strings.TrimSpace(item.ItemID) == "" {
			return fmt.Errorf("%w: reward_items[%d].item_id is required", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

// Delete removes a challenge and its participants. Owners may delete their own
// challenges and system challenges may be deleted by any caller.
func (s *service) Delete(ctx context.Context, challengeID, requesterID string) error {
	log := logger.FromContext(ctx).With("challenge_id", challengeID, "user_id", requesterID)

	if err := requireUser(requesterID); err != nil {
		return err
	}

	c, err := s.repo.GetChallenge(ctx, challengeID)
	if err != nil {
		return domain.StoreError(ErrContextLoadChallenge, err)
	}
	if c == nil {
		return domain.ErrChallengeNotFound
	}
	if !c.CanBeDeletedBy(requesterID) {
		log.Warn(LogMsgDeleteRejected)
		return domain.ErrUnauthorized
	}

	deleted, err := s.repo.DeleteChallenge(ctx, challengeID)
	if err != nil {
		return domain.StoreError(ErrContextDeleteChallenge, err)
	}
	if !deleted {
		return domain.ErrChallengeNotFound
	}

	s.cache.Invalidate()
	log.Info(LogMsgChallengeDeleted)
	s.publish(ctx, event.NewChallengeCatalogEvent(event.ChallengeDeleted, challengeID, requesterID))
	return nil
}
