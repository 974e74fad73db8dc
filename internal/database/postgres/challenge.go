package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/repository"
)

// ChallengeRepository implements repository.Challenge for PostgreSQL
type ChallengeRepository struct {
	db *pgxpool.Pool
}

// NewChallengeRepository creates a new ChallengeRepository
func NewChallengeRepository(db *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

var _ repository.Challenge = (*ChallengeRepository)(nil)

// ListChallenges returns challenges ordered by priority then recency
func (r *ChallengeRepository) ListChallenges(ctx context.Context, includeInactive bool) ([]domain.Challenge, error) {
	sql := SQLListActiveChallenges
	if includeInactive {
		sql = SQLListAllChallenges
	}

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListChallenges, err)
	}
	defer rows.Close()

	challenges := []domain.Challenge{}
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListChallenges, err)
		}
		challenges = append(challenges, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListChallenges, err)
	}
	return challenges, nil
}

// GetChallenge retrieves a challenge by ID
func (r *ChallengeRepository) GetChallenge(ctx context.Context, challengeID string) (*domain.Challenge, error) {
	id, ok := parseID(challengeID)
	if !ok {
		return nil, nil
	}

	c, err := scanChallenge(r.db.QueryRow(ctx, SQLGetChallenge, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetChallenge, err)
	}
	return c, nil
}

// CreateChallenge inserts challenge and fills in its generated ID and creation time
func (r *ChallengeRepository) CreateChallenge(ctx context.Context, challenge *domain.Challenge) error {
	ownerID, err := parseOptionalID(challenge.OwnerID)
	if err != nil {
		return err
	}

	items := challenge.RewardItems
	if items == nil {
		items = []domain.RewardItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeJSON, err)
	}

	err = r.db.QueryRow(ctx, SQLInsertChallenge,
		challenge.Title,
		challenge.Description,
		challenge.IsActive,
		challenge.MaxParticipants,
		challenge.CurrentParticipants,
		string(challenge.VerificationType),
		challenge.VerificationKey,
		nullableJSON(challenge.VerificationParams),
		challenge.RewardCore,
		itemsJSON,
		ownerID,
		string(challenge.Type),
		challenge.Priority,
	).Scan(&challenge.ID, &challenge.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
			return fmt.Errorf("%w: owner", domain.ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateChallenge, err)
	}
	return nil
}

// DeleteChallenge removes participants first, then the challenge, atomically
func (r *ChallengeRepository) DeleteChallenge(ctx context.Context, challengeID string) (bool, error) {
	id, ok := parseID(challengeID)
	if !ok {
		return false, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, SQLDeleteChallengeParticipants, id); err != nil {
		return false, fmt.Errorf("%s: participants: %w", ErrMsgFailedToDeleteChallenge, err)
	}

	tag, err := tx.Exec(ctx, SQLDeleteChallenge, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteChallenge, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteChallenge, err)
	}
	return true, nil
}

// GetParticipant retrieves the (challenge, user) participation row
func (r *ChallengeRepository) GetParticipant(ctx context.Context, challengeID, userID string) (*domain.Participant, error) {
	cid, ok := parseID(challengeID)
	if !ok {
		return nil, nil
	}
	uid, ok := parseID(userID)
	if !ok {
		return nil, nil
	}

	p, err := getParticipant(ctx, r.db, SQLGetParticipant, cid, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetParticipant, err)
	}
	return p, nil
}

// ListUserParticipants lists every participation row for userID, newest first
func (r *ChallengeRepository) ListUserParticipants(ctx context.Context, userID string) ([]domain.Participant, error) {
	uid, ok := parseID(userID)
	if !ok {
		return []domain.Participant{}, nil
	}

	rows, err := r.db.Query(ctx, SQLListUserParticipants, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListParticipants, err)
	}
	out, err := collectParticipants(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListParticipants, err)
	}
	if out == nil {
		out = []domain.Participant{}
	}
	return out, nil
}

// UpdateProgress replaces progress_data on an active row
func (r *ChallengeRepository) UpdateProgress(ctx context.Context, challengeID, userID string, progress json.RawMessage) (*domain.Participant, error) {
	cid, ok := parseID(challengeID)
	if !ok {
		return nil, nil
	}
	uid, ok := parseID(userID)
	if !ok {
		return nil, nil
	}

	p, err := getParticipant(ctx, r.db, SQLUpdateProgress, cid, uid, nullableJSON(progress))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateProgress, err)
	}
	return p, nil
}

// ListUnsettledCompletions returns completed rows whose reward was never applied, oldest first
func (r *ChallengeRepository) ListUnsettledCompletions(ctx context.Context, limit int) ([]domain.Participant, error) {
	rows, err := r.db.Query(ctx, SQLListUnsettledCompletions, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListParticipants, err)
	}
	out, err := collectParticipants(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListParticipants, err)
	}
	return out, nil
}

// GetUserBalance reads balances without locking
func (r *ChallengeRepository) GetUserBalance(ctx context.Context, userID string) (*domain.UserBalance, error) {
	return getUserBalance(ctx, r.db, SQLGetUserBalance, userID)
}

// GetInventory reads the inventory without locking
func (r *ChallengeRepository) GetInventory(ctx context.Context, userID string) (*domain.Inventory, error) {
	return getInventory(ctx, r.db, SQLGetInventory, userID)
}

// BeginChallengeTx starts a transaction for join or completion writes
func (r *ChallengeRepository) BeginChallengeTx(ctx context.Context) (repository.ChallengeTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &challengeTx{tx: tx}, nil
}
