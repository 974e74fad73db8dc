package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/AICore_Go/internal/database"
)

// MockPool is a mock type for the database.Pool type
type MockPool struct {
	mock.Mock
}

var _ database.Pool = (*MockPool)(nil)

func NewMockPool(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPool {
	m := &MockPool{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockPool) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func (_m *MockPool) Close() {
	_m.Called()
}
