package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/repository"
)

// challengeTx implements repository.ChallengeTx over a pgx transaction
type challengeTx struct {
	tx pgx.Tx
}

var _ repository.ChallengeTx = (*challengeTx)(nil)

func (t *challengeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *challengeTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// InsertParticipant creates an active participation row
func (t *challengeTx) InsertParticipant(ctx context.Context, participant *domain.Participant) error {
	cid, ok := parseID(participant.ChallengeID)
	if !ok {
		return domain.ErrChallengeNotFound
	}
	uid, ok := parseID(participant.UserID)
	if !ok {
		return domain.ErrUserNotFound
	}

	p, err := scanParticipant(t.tx.QueryRow(ctx, SQLInsertParticipant,
		cid, uid, string(domain.ParticipantStatusActive), nullableJSON(participant.ProgressData)))
	if err != nil {
		switch pgErrorCode(err) {
		case PgErrorCodeUniqueViolation:
			return domain.ErrAlreadyJoined
		case PgErrorCodeForeignKeyViolation:
			return fmt.Errorf("%w: challenge or user", domain.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertPart, err)
	}

	*participant = *p
	return nil
}

// IncrementParticipants applies the capacity-guarded increment
func (t *challengeTx) IncrementParticipants(ctx context.Context, challengeID string) (int, bool, error) {
	cid, ok := parseID(challengeID)
	if !ok {
		return 0, false, nil
	}

	var current int
	err := t.tx.QueryRow(ctx, SQLIncrementParticipants, cid).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%s: %w", ErrMsgFailedToIncrement, err)
	}
	return current, true, nil
}

// CompleteParticipant transitions an active row to completed
func (t *challengeTx) CompleteParticipant(ctx context.Context, challengeID, userID string, progress json.RawMessage, completedAt time.Time) (*domain.Participant, error) {
	cid, ok := parseID(challengeID)
	if !ok {
		return nil, nil
	}
	uid, ok := parseID(userID)
	if !ok {
		return nil, nil
	}

	p, err := getParticipant(ctx, t.tx, SQLCompleteParticipant, cid, uid, nullableJSON(progress), completedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToComplete, err)
	}
	return p, nil
}

// MarkRewardSettled stamps reward_settled_at once
func (t *challengeTx) MarkRewardSettled(ctx context.Context, participantID string, settledAt time.Time) (bool, error) {
	id, ok := parseID(participantID)
	if !ok {
		return false, nil
	}

	tag, err := t.tx.Exec(ctx, SQLMarkRewardSettled, id, settledAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToMarkSettled, err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetBalanceForUpdate locks the user's balance row for the rest of the transaction
func (t *challengeTx) GetBalanceForUpdate(ctx context.Context, userID string) (*domain.UserBalance, error) {
	return getUserBalance(ctx, t.tx, SQLGetUserBalanceForUpdate, userID)
}

// UpdateBalance writes both balances
func (t *challengeTx) UpdateBalance(ctx context.Context, userID string, wallet, aicore decimal.Decimal) error {
	uid, ok := parseID(userID)
	if !ok {
		return domain.ErrUserNotFound
	}

	tag, err := t.tx.Exec(ctx, SQLUpdateUserBalance, uid, wallet.String(), aicore.String())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetInventoryForUpdate locks the user's inventory row, creating an empty one first
// so concurrent settlements for a new user serialize on it
func (t *challengeTx) GetInventoryForUpdate(ctx context.Context, userID string) (*domain.Inventory, error) {
	uid, ok := parseID(userID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	if _, err := t.tx.Exec(ctx, SQLEnsureUserResults, uid); err != nil {
		if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	return getInventory(ctx, t.tx, SQLGetInventoryForUpdate, userID)
}

// UpdateInventory persists the whole slot list
func (t *challengeTx) UpdateInventory(ctx context.Context, userID string, inventory domain.Inventory) error {
	uid, ok := parseID(userID)
	if !ok {
		return domain.ErrUserNotFound
	}

	slots := inventory.Slots
	if slots == nil {
		slots = []domain.InventorySlot{}
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeJSON, err)
	}

	if _, err := t.tx.Exec(ctx, SQLUpsertInventory, uid, data); err != nil {
		if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateInventory, err)
	}
	return nil
}
