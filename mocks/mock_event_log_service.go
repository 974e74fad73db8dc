package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/AICore_Go/internal/event"
	"github.com/osse101/AICore_Go/internal/eventlog"
)

// MockEventLogService is a mock type for the eventlog.Service type
type MockEventLogService struct {
	mock.Mock
}

var _ eventlog.Service = (*MockEventLogService)(nil)

func NewMockEventLogService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventLogService {
	m := &MockEventLogService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockEventLogService) Subscribe(bus event.Bus) error {
	ret := _m.Called(bus)
	return ret.Error(0)
}

func (_m *MockEventLogService) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	ret := _m.Called(ctx, filter)

	var r0 []eventlog.Event
	if rf, ok := ret.Get(0).(func(context.Context, eventlog.EventFilter) []eventlog.Event); ok {
		r0 = rf(ctx, filter)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]eventlog.Event)
	}
	return r0, ret.Error(1)
}

func (_m *MockEventLogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	ret := _m.Called(ctx, retentionDays)
	return ret.Get(0).(int64), ret.Error(1)
}
