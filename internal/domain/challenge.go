package domain

import (
	"encoding/json"
	"time"
)

// ChallengeType distinguishes operator-seeded challenges from user-submitted ones
type ChallengeType string

const (
	ChallengeTypeSystem      ChallengeType = "system"
	ChallengeTypeUserCreated ChallengeType = "user_created"
)

// VerificationType is descriptive only; dispatch is driven by VerificationKey
type VerificationType string

const (
	VerificationTypeManual    VerificationType = "manual"
	VerificationTypeAutomatic VerificationType = "automatic"
	VerificationTypeProgress  VerificationType = "progress"
)

// RewardItem is one inventory grant attached to a challenge
type RewardItem struct {
	ItemID string `json:"item_id" validate:"required,max=100"`
	Slot   int    `json:"slot" validate:"min=0"`
	Count  int    `json:"count" validate:"min=0"`
}

// Challenge represents a joinable challenge definition
type Challenge struct {
	ID                  string           `json:"id"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	IsActive            bool             `json:"is_active"`
	MaxParticipants     int              `json:"max_participants"`     // 0 = unlimited
	CurrentParticipants int              `json:"current_participants"` // maintained by join, never decremented
	VerificationType    VerificationType `json:"verification_type"`
	VerificationKey     *string          `json:"verification_key,omitempty"`
	VerificationParams  json.RawMessage  `json:"verification_params,omitempty"`
	RewardCore          string           `json:"reward_core"`
	RewardItems         []RewardItem     `json:"reward_items"`
	OwnerID             *string          `json:"owner_id,omitempty"`
	Type                ChallengeType    `json:"type"`
	Priority            int              `json:"priority"`
	CreatedAt           time.Time        `json:"created_at"`
}

// IsFull reports whether the challenge has reached its participant cap
func (c *Challenge) IsFull() bool {
	return c.MaxParticipants > 0 && c.CurrentParticipants >= c.MaxParticipants
}

// HasVerification reports whether completion must pass the verification registry
func (c *Challenge) HasVerification() bool {
	return c.VerificationKey != nil && *c.VerificationKey != ""
}

// CanBeDeletedBy reports whether requesterID may delete this challenge.
// Owners may delete their own challenges; system challenges are deletable by any caller
// that reaches the catalog service.
func (c *Challenge) CanBeDeletedBy(requesterID string) bool {
	if c.Type == ChallengeTypeSystem {
		return true
	}
	return c.OwnerID != nil && *c.OwnerID == requesterID
}

// ChallengeDefinition is the caller-supplied part of a new challenge
type ChallengeDefinition struct {
	Title              string           `json:"title" validate:"required,max=200"`
	Description        string           `json:"description" validate:"max=2000"`
	VerificationType   VerificationType `json:"verification_type" validate:"omitempty,oneof=manual automatic progress"`
	VerificationKey    *string          `json:"verification_key,omitempty" validate:"omitempty,max=100"`
	VerificationParams json.RawMessage  `json:"verification_params,omitempty"`
	RewardCore         string           `json:"reward_core" validate:"max=50"`
	RewardItems        []RewardItem     `json:"reward_items" validate:"omitempty,dive"`
	MaxParticipants    int              `json:"max_participants" validate:"min=0"`
	Priority           int              `json:"priority"`
}
