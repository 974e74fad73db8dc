package reward

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/AICore_Go/internal/domain"
)

// Store is the transaction-scoped surface settlement writes through.
// Implementations must lock the rows they return until the surrounding
// transaction ends.
type Store interface {
	GetBalanceForUpdate(ctx context.Context, userID string) (*domain.UserBalance, error)
	UpdateBalance(ctx context.Context, userID string, wallet, aicore decimal.Decimal) error
	GetInventoryForUpdate(ctx context.Context, userID string) (*domain.Inventory, error)
	UpdateInventory(ctx context.Context, userID string, inventory domain.Inventory) error
}

// Result describes what a settlement credited
type Result struct {
	AicoreCredited decimal.Decimal `json:"aicore_credited"`
	WalletCredited decimal.Decimal `json:"wallet_credited"`
	ItemsCredited  int             `json:"items_credited"`
}

// Settle applies a challenge's reward to userID through store.
// It must run inside the same transaction that marks the completion settled;
// it does not commit.
func Settle(ctx context.Context, store Store, userID string, challenge *domain.Challenge) (Result, error) {
	var res Result

	grant := ParseRewardCore(challenge.RewardCore)
	if !grant.IsZero() {
		bal, err := store.GetBalanceForUpdate(ctx, userID)
		if err != nil {
			return res, fmt.Errorf("%s: %w", ErrContextFailedToLoadBalance, err)
		}
		if bal == nil {
			return res, domain.ErrUserNotFound
		}

		wallet := bal.WalletBalance.Add(grant.Wallet)
		aicore := bal.AicoreBalance.Add(grant.Aicore)
		if err := store.UpdateBalance(ctx, userID, wallet, aicore); err != nil {
			return res, fmt.Errorf("%s: %w", ErrContextFailedToSaveBalance, err)
		}
		res.AicoreCredited = grant.Aicore
		res.WalletCredited = grant.Wallet
	}

	if len(challenge.RewardItems) > 0 {
		inv, err := store.GetInventoryForUpdate(ctx, userID)
		if err != nil {
			return res, fmt.Errorf("%s: %w", ErrContextFailedToLoadInventory, err)
		}
		if inv == nil {
			inv = &domain.Inventory{}
		}

		res.ItemsCredited = MergeItems(inv, challenge.RewardItems)
		if err := store.UpdateInventory(ctx, userID, *inv); err != nil {
			return res, fmt.Errorf("%s: %w", ErrContextFailedToSaveInventory, err)
		}
	}

	return res, nil
}
