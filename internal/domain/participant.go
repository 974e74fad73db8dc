package domain

import (
	"encoding/json"
	"time"
)

// ParticipantStatus is the lifecycle state of a participation row
type ParticipantStatus string

const (
	ParticipantStatusActive    ParticipantStatus = "active"
	ParticipantStatusCompleted ParticipantStatus = "completed" // terminal
)

// IsValid reports whether s is a known status
func (s ParticipantStatus) IsValid() bool {
	return s == ParticipantStatusActive || s == ParticipantStatusCompleted
}

// Participant links a user to a challenge they joined
type Participant struct {
	ID              string            `json:"id"`
	ChallengeID     string            `json:"challenge_id"`
	UserID          string            `json:"user_id"`
	Status          ParticipantStatus `json:"status"`
	ProgressData    json.RawMessage   `json:"progress_data,omitempty"`
	JoinedAt        time.Time         `json:"joined_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	RewardSettledAt *time.Time        `json:"reward_settled_at,omitempty"`
}

// IsCompleted reports whether the participant reached the terminal state
func (p *Participant) IsCompleted() bool {
	return p.Status == ParticipantStatusCompleted
}

// IsSettled reports whether the completion reward has been applied
func (p *Participant) IsSettled() bool {
	return p.RewardSettledAt != nil
}
