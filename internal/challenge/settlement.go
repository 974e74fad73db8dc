package challenge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/event"
	"github.com/osse101/AICore_Go/internal/logger"
	"github.com/osse101/AICore_Go/internal/metrics"
	"github.com/osse101/AICore_Go/internal/repository"
	"github.com/osse101/AICore_Go/internal/reward"
)

// completeAndSettle writes the completion, applies the reward and stamps the settled
// marker in one transaction. Any failure rolls all of it back, leaving the row active.
func (s *service) completeAndSettle(ctx context.Context, c *domain.Challenge, userID string, progress json.RawMessage) (*domain.Participant, error) {
	log := logger.FromContext(ctx).With("challenge_id", c.ID, "user_id", userID)

	tx, err := s.repo.BeginChallengeTx(ctx)
	if err != nil {
		return nil, domain.StoreError(ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	now := s.now()
	done, err := tx.CompleteParticipant(ctx, c.ID, userID, progress, now)
	if err != nil {
		return nil, domain.StoreError(ErrContextComplete, err)
	}
	if done == nil {
		// Another request completed it first; that request owns the settlement
		repository.SafeRollback(ctx, tx)
		log.Info(LogMsgCompletionRaced)
		return s.GetParticipation(ctx, c.ID, userID)
	}

	res, settled, err := s.settleInTx(ctx, tx, done, c, now)
	if err != nil {
		metrics.SettlementFailures.Inc()
		log.Error(LogMsgSettlementFailed, "error", err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		metrics.SettlementFailures.Inc()
		return nil, domain.StoreError(ErrContextCommit, err)
	}

	log.Info(LogMsgCompleted,
		"aicore_credited", res.AicoreCredited.String(),
		"wallet_credited", res.WalletCredited.String(),
		"items_credited", res.ItemsCredited)

	s.publish(ctx, event.NewChallengeCompletedEvent(c.ID, userID))
	if settled {
		done.RewardSettledAt = &now
		s.publish(ctx, event.NewRewardSettledEvent(c.ID, userID, res.AicoreCredited, res.WalletCredited, res.ItemsCredited, false))
	}
	return done, nil
}

// settleInTx claims the settled marker and applies the reward. settled is false when
// the marker was already set, in which case nothing is credited.
func (s *service) settleInTx(ctx context.Context, tx repository.ChallengeTx, p *domain.Participant, c *domain.Challenge, now time.Time) (reward.Result, bool, error) {
	claimed, err := tx.MarkRewardSettled(ctx, p.ID, now)
	if err != nil {
		return reward.Result{}, false, domain.StoreError(ErrContextMarkSettled, err)
	}
	if !claimed {
		return reward.Result{}, false, nil
	}

	res, err := reward.Settle(ctx, tx, p.UserID, c)
	if err != nil {
		return reward.Result{}, false, domain.StoreError(ErrContextSettle, err)
	}
	return res, true, nil
}

// ReconcileUnsettled settles completed participations whose reward marker is unset.
// Each row gets its own transaction; the guarded marker update keeps it at most once
// even when several reconcilers run.
func (s *service) ReconcileUnsettled(ctx context.Context, limit int) (*ReconcileResult, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = DefaultReconcileLimit
	}
	if limit > MaxReconcileLimit {
		limit = MaxReconcileLimit
	}

	pending, err := s.repo.ListUnsettledCompletions(ctx, limit)
	if err != nil {
		return nil, domain.StoreError(ErrContextListUnsettled, err)
	}

	result := &ReconcileResult{Scanned: len(pending)}
	for i := range pending {
		p := &pending[i]
		settled, err := s.reconcileOne(ctx, p)
		switch {
		case err != nil:
			result.Failed++
			metrics.SettlementFailures.Inc()
			log.Error(LogMsgReconcileFailed, "participant_id", p.ID, "challenge_id", p.ChallengeID, "user_id", p.UserID, "error", err)
		case settled:
			result.Settled++
		default:
			result.Skipped++
		}
	}

	log.Info(LogMsgReconcileDone, "scanned", result.Scanned, "settled", result.Settled, "skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

func (s *service) reconcileOne(ctx context.Context, p *domain.Participant) (bool, error) {
	c, err := s.repo.GetChallenge(ctx, p.ChallengeID)
	if err != nil {
		return false, domain.StoreError(ErrContextLoadChallenge, err)
	}
	if c == nil {
		return false, nil
	}

	tx, err := s.repo.BeginChallengeTx(ctx)
	if err != nil {
		return false, domain.StoreError(ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	res, settled, err := s.settleInTx(ctx, tx, p, c, s.now())
	if err != nil {
		return false, err
	}
	if !settled {
		return false, nil
	}
	if err := tx.Commit(ctx); err != nil {
		return false, domain.StoreError(ErrContextCommit, err)
	}

	logger.FromContext(ctx).Info(LogMsgReconciled, "participant_id", p.ID, "challenge_id", p.ChallengeID, "user_id", p.UserID)
	s.publish(ctx, event.NewRewardSettledEvent(p.ChallengeID, p.UserID, res.AicoreCredited, res.WalletCredited, res.ItemsCredited, true))
	return true, nil
}
