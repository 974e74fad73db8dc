package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/AICore_Go/internal/domain"
)

// Challenge defines the data access required by the challenge service.
// Lookups return (nil, nil) when the row does not exist.
type Challenge interface {
	// Catalog
	ListChallenges(ctx context.Context, includeInactive bool) ([]domain.Challenge, error)
	GetChallenge(ctx context.Context, challengeID string) (*domain.Challenge, error)
	CreateChallenge(ctx context.Context, challenge *domain.Challenge) error
	// DeleteChallenge removes the participants and then the challenge in one transaction.
	// Returns false when the challenge did not exist.
	DeleteChallenge(ctx context.Context, challengeID string) (bool, error)

	// Participation reads and progress-only writes
	GetParticipant(ctx context.Context, challengeID, userID string) (*domain.Participant, error)
	ListUserParticipants(ctx context.Context, userID string) ([]domain.Participant, error)
	// UpdateProgress replaces progress_data on an active row; returns nil when no active row matched
	UpdateProgress(ctx context.Context, challengeID, userID string, progress json.RawMessage) (*domain.Participant, error)
	ListUnsettledCompletions(ctx context.Context, limit int) ([]domain.Participant, error)

	// Read-only user state for verifiers
	GetUserBalance(ctx context.Context, userID string) (*domain.UserBalance, error)
	GetInventory(ctx context.Context, userID string) (*domain.Inventory, error)

	// Transaction support
	BeginChallengeTx(ctx context.Context) (ChallengeTx, error)
}

// ChallengeTx extends Tx with the writes that must commit together:
// join (insert + guarded increment) and completion (status + reward + settled marker)
type ChallengeTx interface {
	Tx // Commit, Rollback

	// InsertParticipant creates an active row. Returns domain.ErrAlreadyJoined on a
	// (challenge_id, user_id) conflict and domain.ErrNotFound when the challenge or user is gone.
	InsertParticipant(ctx context.Context, participant *domain.Participant) error
	// IncrementParticipants bumps current_participants only while the challenge is active
	// and below capacity. Returns the new count and false when the guard rejected the update.
	IncrementParticipants(ctx context.Context, challengeID string) (int, bool, error)

	// CompleteParticipant moves an active row to completed; returns nil when no active row matched
	CompleteParticipant(ctx context.Context, challengeID, userID string, progress json.RawMessage, completedAt time.Time) (*domain.Participant, error)
	// MarkRewardSettled stamps reward_settled_at if still unset; false means already settled
	MarkRewardSettled(ctx context.Context, participantID string, settledAt time.Time) (bool, error)

	// Settlement writes
	GetBalanceForUpdate(ctx context.Context, userID string) (*domain.UserBalance, error)
	UpdateBalance(ctx context.Context, userID string, wallet, aicore decimal.Decimal) error
	GetInventoryForUpdate(ctx context.Context, userID string) (*domain.Inventory, error)
	UpdateInventory(ctx context.Context, userID string, inventory domain.Inventory) error
}
