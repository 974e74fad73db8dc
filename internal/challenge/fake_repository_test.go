package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/repository"
)

var errFakeTxClosed = errors.New(domain.ErrMsgTxClosed)

// fakeState is the whole store; transactions work on a clone and swap it in on commit
type fakeState struct {
	challenges   map[string]domain.Challenge
	participants map[string]domain.Participant // keyed by challengeID|userID
	balances     map[string]domain.UserBalance
	inventories  map[string][]domain.InventorySlot
}

func (s *fakeState) clone() *fakeState {
	out := &fakeState{
		challenges:   make(map[string]domain.Challenge, len(s.challenges)),
		participants: make(map[string]domain.Participant, len(s.participants)),
		balances:     make(map[string]domain.UserBalance, len(s.balances)),
		inventories:  make(map[string][]domain.InventorySlot, len(s.inventories)),
	}
	for k, v := range s.challenges {
		out.challenges[k] = v
	}
	for k, v := range s.participants {
		out.participants[k] = v
	}
	for k, v := range s.balances {
		out.balances[k] = v
	}
	for k, v := range s.inventories {
		out.inventories[k] = append([]domain.InventorySlot(nil), v...)
	}
	return out
}

func participantKey(challengeID, userID string) string {
	return challengeID + "|" + userID
}

// FakeRepository is a stateful in-memory implementation of repository.Challenge.
// A transaction holds the store lock from begin to commit/rollback, which gives the
// same guarantees the service relies on from Postgres: unique participation,
// guarded increments and an at-most-once settled marker.
type FakeRepository struct {
	mu    sync.Mutex
	state *fakeState
	seq   int
	base  time.Time

	failMu   sync.RWMutex
	failures map[string]error

	beforeTx func()
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		state: &fakeState{
			challenges:   map[string]domain.Challenge{},
			participants: map[string]domain.Participant{},
			balances:     map[string]domain.UserBalance{},
			inventories:  map[string][]domain.InventorySlot{},
		},
		base:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		failures: map[string]error{},
	}
}

// ---- test helpers ----

func (f *FakeRepository) FailOn(method string, err error) {
	f.failMu.Lock()
	defer f.failMu.Unlock()
	if err == nil {
		delete(f.failures, method)
		return
	}
	f.failures[method] = err
}

// OnBeginTx runs fn at the start of the next transaction, before the store lock is
// taken, to interleave a concurrent write between the service's reads and its tx.
func (f *FakeRepository) OnBeginTx(fn func()) {
	f.failMu.Lock()
	defer f.failMu.Unlock()
	f.beforeTx = fn
}

// SetActive flips a challenge's is_active flag
func (f *FakeRepository) SetActive(challengeID string, active bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.state.challenges[challengeID]
	c.IsActive = active
	f.state.challenges[challengeID] = c
}

func (f *FakeRepository) failure(method string) error {
	f.failMu.RLock()
	defer f.failMu.RUnlock()
	return f.failures[method]
}

func (f *FakeRepository) nextID(prefix string) (string, time.Time) {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq), f.base.Add(time.Duration(f.seq) * time.Second)
}

func (f *FakeRepository) AddUser(userID string, level int, wallet, aicore int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.balances[userID] = domain.UserBalance{
		UserID:        userID,
		Level:         level,
		WalletBalance: decimal.NewFromInt(wallet),
		AicoreBalance: decimal.NewFromInt(aicore),
	}
}

// AddChallenge seeds a challenge directly, bypassing the service
func (f *FakeRepository) AddChallenge(c domain.Challenge) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, created := f.nextID("ch")
	if c.ID == "" {
		c.ID = id
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = created
	}
	if c.Type == "" {
		c.Type = domain.ChallengeTypeSystem
	}
	f.state.challenges[c.ID] = c
	return c.ID
}

// ForceCompleted writes a completed, unsettled row as an older writer would have
func (f *FakeRepository) ForceCompleted(challengeID, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, at := f.nextID("p")
	f.state.participants[participantKey(challengeID, userID)] = domain.Participant{
		ID:          id,
		ChallengeID: challengeID,
		UserID:      userID,
		Status:      domain.ParticipantStatusCompleted,
		JoinedAt:    at,
		CompletedAt: &at,
	}
}

func (f *FakeRepository) SnapshotChallenge(id string) domain.Challenge {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.challenges[id]
}

func (f *FakeRepository) SnapshotParticipant(challengeID, userID string) (domain.Participant, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.state.participants[participantKey(challengeID, userID)]
	return p, ok
}

func (f *FakeRepository) SnapshotBalance(userID string) domain.UserBalance {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.balances[userID]
}

func (f *FakeRepository) SnapshotInventory(userID string) []domain.InventorySlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.InventorySlot(nil), f.state.inventories[userID]...)
}

func (f *FakeRepository) ParticipantCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.state.participants)
}

// ---- repository.Challenge ----

func (f *FakeRepository) ListChallenges(_ context.Context, includeInactive bool) ([]domain.Challenge, error) {
	if err := f.failure("ListChallenges"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []domain.Challenge{}
	for _, c := range f.state.challenges {
		if includeInactive || c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *FakeRepository) GetChallenge(_ context.Context, challengeID string) (*domain.Challenge, error) {
	if err := f.failure("GetChallenge"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.state.challenges[challengeID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *FakeRepository) CreateChallenge(_ context.Context, challenge *domain.Challenge) error {
	if err := f.failure("CreateChallenge"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	challenge.ID, challenge.CreatedAt = f.nextID("ch")
	f.state.challenges[challenge.ID] = *challenge
	return nil
}

func (f *FakeRepository) DeleteChallenge(_ context.Context, challengeID string) (bool, error) {
	if err := f.failure("DeleteChallenge"); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.state.challenges[challengeID]; !ok {
		return false, nil
	}
	for k, p := range f.state.participants {
		if p.ChallengeID == challengeID {
			delete(f.state.participants, k)
		}
	}
	delete(f.state.challenges, challengeID)
	return true, nil
}

func (f *FakeRepository) GetParticipant(_ context.Context, challengeID, userID string) (*domain.Participant, error) {
	if err := f.failure("GetParticipant"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.state.participants[participantKey(challengeID, userID)]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *FakeRepository) ListUserParticipants(_ context.Context, userID string) ([]domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []domain.Participant{}
	for _, p := range f.state.participants {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.After(out[j].JoinedAt) })
	return out, nil
}

func (f *FakeRepository) UpdateProgress(_ context.Context, challengeID, userID string, progress json.RawMessage) (*domain.Participant, error) {
	if err := f.failure("UpdateProgress"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	key := participantKey(challengeID, userID)
	p, ok := f.state.participants[key]
	if !ok || p.Status != domain.ParticipantStatusActive {
		return nil, nil
	}
	p.ProgressData = progress
	f.state.participants[key] = p
	return &p, nil
}

func (f *FakeRepository) ListUnsettledCompletions(_ context.Context, limit int) ([]domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []domain.Participant{}
	for _, p := range f.state.participants {
		if p.Status == domain.ParticipantStatusCompleted && p.RewardSettledAt == nil {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(*out[j].CompletedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *FakeRepository) GetUserBalance(_ context.Context, userID string) (*domain.UserBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.state.balances[userID]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (f *FakeRepository) GetInventory(_ context.Context, userID string) (*domain.Inventory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &domain.Inventory{Slots: append([]domain.InventorySlot(nil), f.state.inventories[userID]...)}, nil
}

func (f *FakeRepository) BeginChallengeTx(_ context.Context) (repository.ChallengeTx, error) {
	if err := f.failure("BeginChallengeTx"); err != nil {
		return nil, err
	}
	f.failMu.Lock()
	hook := f.beforeTx
	f.beforeTx = nil
	f.failMu.Unlock()
	if hook != nil {
		hook()
	}
	f.mu.Lock()
	return &fakeTx{repo: f, staged: f.state.clone()}, nil
}

// ---- repository.ChallengeTx ----

type fakeTx struct {
	repo   *FakeRepository
	staged *fakeState
	done   bool
}

func (t *fakeTx) Commit(_ context.Context) error {
	if t.done {
		return errFakeTxClosed
	}
	t.done = true
	if err := t.repo.failure("Commit"); err != nil {
		t.repo.mu.Unlock()
		return err
	}
	t.repo.state = t.staged
	t.repo.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.done {
		return errFakeTxClosed
	}
	t.done = true
	t.repo.mu.Unlock()
	return nil
}

func (t *fakeTx) InsertParticipant(_ context.Context, participant *domain.Participant) error {
	if err := t.repo.failure("InsertParticipant"); err != nil {
		return err
	}
	if _, ok := t.staged.challenges[participant.ChallengeID]; !ok {
		return fmt.Errorf("%w: challenge", domain.ErrNotFound)
	}
	if _, ok := t.staged.balances[participant.UserID]; !ok {
		return fmt.Errorf("%w: user", domain.ErrNotFound)
	}
	key := participantKey(participant.ChallengeID, participant.UserID)
	if _, exists := t.staged.participants[key]; exists {
		return domain.ErrAlreadyJoined
	}

	participant.ID, participant.JoinedAt = t.repo.nextID("p")
	participant.Status = domain.ParticipantStatusActive
	t.staged.participants[key] = *participant
	return nil
}

func (t *fakeTx) IncrementParticipants(_ context.Context, challengeID string) (int, bool, error) {
	c, ok := t.staged.challenges[challengeID]
	if !ok || !c.IsActive {
		return 0, false, nil
	}
	if c.MaxParticipants > 0 && c.CurrentParticipants >= c.MaxParticipants {
		return 0, false, nil
	}
	c.CurrentParticipants++
	t.staged.challenges[challengeID] = c
	return c.CurrentParticipants, true, nil
}

func (t *fakeTx) CompleteParticipant(_ context.Context, challengeID, userID string, progress json.RawMessage, completedAt time.Time) (*domain.Participant, error) {
	if err := t.repo.failure("CompleteParticipant"); err != nil {
		return nil, err
	}
	key := participantKey(challengeID, userID)
	p, ok := t.staged.participants[key]
	if !ok || p.Status != domain.ParticipantStatusActive {
		return nil, nil
	}
	at := completedAt
	p.Status = domain.ParticipantStatusCompleted
	p.ProgressData = progress
	p.CompletedAt = &at
	t.staged.participants[key] = p
	return &p, nil
}

func (t *fakeTx) MarkRewardSettled(_ context.Context, participantID string, settledAt time.Time) (bool, error) {
	for k, p := range t.staged.participants {
		if p.ID != participantID {
			continue
		}
		if p.Status != domain.ParticipantStatusCompleted || p.RewardSettledAt != nil {
			return false, nil
		}
		at := settledAt
		p.RewardSettledAt = &at
		t.staged.participants[k] = p
		return true, nil
	}
	return false, nil
}

func (t *fakeTx) GetBalanceForUpdate(_ context.Context, userID string) (*domain.UserBalance, error) {
	b, ok := t.staged.balances[userID]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (t *fakeTx) UpdateBalance(_ context.Context, userID string, wallet, aicore decimal.Decimal) error {
	if err := t.repo.failure("UpdateBalance"); err != nil {
		return err
	}
	b, ok := t.staged.balances[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	b.WalletBalance = wallet
	b.AicoreBalance = aicore
	t.staged.balances[userID] = b
	return nil
}

func (t *fakeTx) GetInventoryForUpdate(_ context.Context, userID string) (*domain.Inventory, error) {
	if _, ok := t.staged.balances[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.Inventory{Slots: append([]domain.InventorySlot(nil), t.staged.inventories[userID]...)}, nil
}

func (t *fakeTx) UpdateInventory(_ context.Context, userID string, inventory domain.Inventory) error {
	if err := t.repo.failure("UpdateInventory"); err != nil {
		return err
	}
	t.staged.inventories[userID] = append([]domain.InventorySlot(nil), inventory.Slots...)
	return nil
}
