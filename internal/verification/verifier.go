// Package verification maps verification keys to completion checks.
package verification

import (
	"context"
	"encoding/json"

	"github.com/osse101/AICore_Go/internal/domain"
)

// Store is the read-only view of user state a verifier may inspect
type Store interface {
	GetUserBalance(ctx context.Context, userID string) (*domain.UserBalance, error)
	GetInventory(ctx context.Context, userID string) (*domain.Inventory, error)
}

// Request carries everything a verifier needs; verifiers keep no state of their own
type Request struct {
	UserID    string
	Challenge *domain.Challenge
	// Progress is the merged progress: the caller's payload if supplied, else the stored one
	Progress json.RawMessage
}

// Verifier decides whether a completion request may proceed
type Verifier interface {
	Verify(ctx context.Context, store Store, req Request) (bool, error)
}

// VerifierFunc adapts a plain function to Verifier
type VerifierFunc func(ctx context.Context, store Store, req Request) (bool, error)

// Verify calls f
func (f VerifierFunc) Verify(ctx context.Context, store Store, req Request) (bool, error) {
	return f(ctx, store, req)
}
