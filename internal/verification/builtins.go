package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/AICore_Go/internal/domain"
)

var (
	ErrMissingParams = errors.New(ErrMsgMissingParams)
	ErrInvalidParams = errors.New(ErrMsgInvalidParams)
)

type minLevelParams struct {
	MinLevel int `json:"min_level"`
}

type minCoreBalanceParams struct {
	Amount decimal.Decimal `json:"amount"`
}

type holdsItemParams struct {
	ItemID string `json:"item_id"`
	Count  int    `json:"count"`
}

type progressCounterParams struct {
	Target int `json:"target"`
}

type checklistParams struct {
	Steps []string `json:"steps"`
}

// decodeParams reads the challenge's verification_params into T
func decodeParams[T any](c *domain.Challenge) (T, error) {
	var p T
	if len(c.VerificationParams) == 0 || string(c.VerificationParams) == "null" {
		return p, ErrMissingParams
	}
	if err := json.Unmarshal(c.VerificationParams, &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return p, nil
}

func verifyNone(_ context.Context, _ Store, _ Request) (bool, error) {
	return true, nil
}

func verifyMinLevel(ctx context.Context, store Store, req Request) (bool, error) {
	p, err := decodeParams[minLevelParams](req.Challenge)
	if err != nil {
		return false, err
	}

	bal, err := store.GetUserBalance(ctx, req.UserID)
	if err != nil {
		return false, err
	}
	if bal == nil {
		return false, domain.ErrUserNotFound
	}
	return bal.Level >= p.MinLevel, nil
}

func verifyMinCoreBalance(ctx context.Context, store Store, req Request) (bool, error) {
	p, err := decodeParams[minCoreBalanceParams](req.Challenge)
	if err != nil {
		return false, err
	}

	bal, err := store.GetUserBalance(ctx, req.UserID)
	if err != nil {
		return false, err
	}
	if bal == nil {
		return false, domain.ErrUserNotFound
	}
	return bal.AicoreBalance.GreaterThanOrEqual(p.Amount), nil
}

func verifyHoldsItem(ctx context.Context, store Store, req Request) (bool, error) {
	p, err := decodeParams[holdsItemParams](req.Challenge)
	if err != nil {
		return false, err
	}
	if p.ItemID == "" {
		return false, fmt.Errorf("%w: item_id required", ErrInvalidParams)
	}
	if p.Count <= 0 {
		p.Count = 1
	}

	inv, err := store.GetInventory(ctx, req.UserID)
	if err != nil {
		return false, err
	}
	if inv == nil {
		return false, nil
	}
	return inv.CountOf(p.ItemID) >= p.Count, nil
}

func verifyProgressCounter(_ context.Context, _ Store, req Request) (bool, error) {
	p, err := decodeParams[progressCounterParams](req.Challenge)
	if err != nil {
		return false, err
	}

	progress, err := domain.DecodeProgress[domain.CounterProgress](req.Progress)
	if err != nil {
		return false, err
	}
	return progress.Current >= p.Target, nil
}

func verifyChecklist(_ context.Context, _ Store, req Request) (bool, error) {
	p, err := decodeParams[checklistParams](req.Challenge)
	if err != nil {
		return false, err
	}
	if len(p.Steps) == 0 {
		return false, fmt.Errorf("%w: steps required", ErrInvalidParams)
	}

	progress, err := domain.DecodeProgress[domain.ChecklistProgress](req.Progress)
	if err != nil {
		return false, err
	}

	done := make(map[string]struct{}, len(progress.Done))
	for _, step := range progress.Done {
		done[step] = struct{}{}
	}
	for _, step := range p.Steps {
		if _, ok := done[step]; !ok {
			return false, nil
		}
	}
	return true, nil
}
