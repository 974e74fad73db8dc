package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/AICore_Go/internal/eventlog"
)

// MockEventLogRepository is a mock type for the eventlog.Repository type
type MockEventLogRepository struct {
	mock.Mock
}

var _ eventlog.Repository = (*MockEventLogRepository)(nil)

func NewMockEventLogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventLogRepository {
	m := &MockEventLogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockEventLogRepository) LogEvent(ctx context.Context, entry eventlog.Entry) error {
	ret := _m.Called(ctx, entry)
	return ret.Error(0)
}

func (_m *MockEventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	ret := _m.Called(ctx, filter)

	var r0 []eventlog.Event
	if rf, ok := ret.Get(0).(func(context.Context, eventlog.EventFilter) []eventlog.Event); ok {
		r0 = rf(ctx, filter)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]eventlog.Event)
	}
	return r0, ret.Error(1)
}

func (_m *MockEventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	ret := _m.Called(ctx, retentionDays)
	return ret.Get(0).(int64), ret.Error(1)
}
