package verification

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/AICore_Go/internal/domain"
)

// MockStore
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetUserBalance(ctx context.Context, userID string) (*domain.UserBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserBalance), args.Error(1)
}

func (m *MockStore) GetInventory(ctx context.Context, userID string) (*domain.Inventory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}
