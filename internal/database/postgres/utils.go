package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/logger"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// parseID parses an identifier. ok is false for strings that cannot name a row,
// so callers can report "not found" without a round trip.
func parseID(id string) (uuid.UUID, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return u, true
}

// parseOptionalID parses a nullable identifier
func parseOptionalID(id *string) (*uuid.UUID, error) {
	if id == nil {
		return nil, nil
	}
	u, err := uuid.Parse(*id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidInput, *id)
	}
	return &u, nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// nullableJSON returns nil for empty input so the column is stored as SQL NULL
func nullableJSON(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}

func scanChallenge(row pgx.Row) (*domain.Challenge, error) {
	var (
		c           domain.Challenge
		vType       string
		cType       string
		params      []byte
		rewardItems []byte
	)
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.IsActive, &c.MaxParticipants, &c.CurrentParticipants,
		&vType, &c.VerificationKey, &params, &c.RewardCore, &rewardItems,
		&c.OwnerID, &cType, &c.Priority, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.VerificationType = domain.VerificationType(vType)
	c.Type = domain.ChallengeType(cType)
	c.VerificationParams = rawJSON(params)
	if len(rewardItems) > 0 {
		if err := json.Unmarshal(rewardItems, &c.RewardItems); err != nil {
			return nil, fmt.Errorf("%s: reward_items: %w", ErrMsgFailedToDecodeJSON, err)
		}
	}
	return &c, nil
}

func scanParticipant(row pgx.Row) (*domain.Participant, error) {
	var (
		p        domain.Participant
		status   string
		progress []byte
	)
	err := row.Scan(
		&p.ID, &p.ChallengeID, &p.UserID, &status, &progress,
		&p.JoinedAt, &p.CompletedAt, &p.RewardSettledAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.ParticipantStatus(status)
	p.ProgressData = rawJSON(progress)
	return &p, nil
}

func collectParticipants(rows pgx.Rows) ([]domain.Participant, error) {
	defer rows.Close()

	var out []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// getParticipant returns (nil, nil) when no row matches
func getParticipant(ctx context.Context, q querier, sql string, args ...any) (*domain.Participant, error) {
	p, err := scanParticipant(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func getUserBalance(ctx context.Context, q querier, sql string, userID string) (*domain.UserBalance, error) {
	id, ok := parseID(userID)
	if !ok {
		return nil, nil
	}

	var (
		b              domain.UserBalance
		wallet, aicore string
	)
	err := q.QueryRow(ctx, sql, id).Scan(&b.UserID, &wallet, &aicore, &b.Level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBalance, err)
	}

	if b.WalletBalance, err = decimal.NewFromString(wallet); err != nil {
		return nil, fmt.Errorf("%s: wallet_balance: %w", ErrMsgFailedToGetBalance, err)
	}
	if b.AicoreBalance, err = decimal.NewFromString(aicore); err != nil {
		return nil, fmt.Errorf("%s: aicore_balance: %w", ErrMsgFailedToGetBalance, err)
	}
	return &b, nil
}

// getInventory returns an empty inventory when the user has no user_results row yet
func getInventory(ctx context.Context, q querier, sql string, userID string) (*domain.Inventory, error) {
	id, ok := parseID(userID)
	if !ok {
		return &domain.Inventory{}, nil
	}

	var raw []byte
	err := q.QueryRow(ctx, sql, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Inventory{}, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}

	inv := &domain.Inventory{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &inv.Slots); err != nil {
			return nil, fmt.Errorf("%s: inventory: %w", ErrMsgFailedToDecodeJSON, err)
		}
	}
	return inv, nil
}
