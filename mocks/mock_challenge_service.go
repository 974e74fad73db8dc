package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/AICore_Go/internal/challenge"
	"github.com/osse101/AICore_Go/internal/domain"
)

// MockChallengeService is a mock type for the challenge.Service type
type MockChallengeService struct {
	mock.Mock
}

var _ challenge.Service = (*MockChallengeService)(nil)

// NewMockChallengeService creates a new instance of MockChallengeService and
// asserts its expectations when the test finishes
func NewMockChallengeService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockChallengeService {
	m := &MockChallengeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockChallengeService) Join(ctx context.Context, challengeID, userID string) (*domain.Participant, error) {
	ret := _m.Called(ctx, challengeID, userID)
	var r0 *domain.Participant
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Participant)
	}
	return r0, ret.Error(1)
}

func (_m *MockChallengeService) RequestStatusChange(ctx context.Context, challengeID, userID string, target domain.ParticipantStatus, progress json.RawMessage) (*domain.Participant, error) {
	ret := _m.Called(ctx, challengeID, userID, target, progress)
	var r0 *domain.Participant
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Participant)
	}
	return r0, ret.Error(1)
}

func (_m *MockChallengeService) GetParticipation(ctx context.Context, challengeID, userID string) (*domain.Participant, error) {
	ret := _m.Called(ctx, challengeID, userID)
	var r0 *domain.Participant
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Participant)
	}
	return r0, ret.Error(1)
}

func (_m *MockChallengeService) ListUserParticipations(ctx context.Context, userID string) ([]domain.Participant, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.Participant
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Participant)
	}
	return r0, ret.Error(1)
}

func (_m *MockChallengeService) ReconcileUnsettled(ctx context.Context, limit int) (*challenge.ReconcileResult, error) {
	ret := _m.Called(ctx, limit)
	var r0 *challenge.ReconcileResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*challenge.ReconcileResult)
	}
	return r0, ret.Error(1)
}

func (_m *MockChallengeService) List(ctx context.Context) ([]domain.Challenge, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Challenge
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Challenge)
	}
	return r0, ret.Error(1)
}

func (_m *MockChallengeService) ListAll(ctx context.Context) ([]domain.Challenge, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Challenge
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Challenge)
	}
	return r0, ret.Error(1)
}

func (_m *MockChallengeService) Create(ctx context.Context, def domain.ChallengeDefinition, ownerID string) (*domain.Challenge, error) {
	ret := _m.Called(ctx, def, ownerID)
	var r0 *domain.Challenge
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Challenge)
	}
	return r0, ret.Error(1)
}

func (_m *MockChallengeService) Delete(ctx context.Context, challengeID, requesterID string) error {
	ret := _m.Called(ctx, challengeID, requesterID)
	return ret.Error(0)
}
