package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Auth errors
	ErrMsgNotAuthenticated = "not authenticated"
	ErrMsgUnauthorized     = "not allowed to perform this action"

	// Lookup errors
	ErrMsgNotFound              = "not found"
	ErrMsgChallengeNotFound     = "challenge not found"
	ErrMsgParticipationNotFound = "participation not found"
	ErrMsgUserNotFound          = "user not found"

	// Lifecycle errors
	ErrMsgAlreadyJoined      = "already joined this challenge"
	ErrMsgChallengeFull      = "challenge is full"
	ErrMsgVerificationFailed = "verification failed"
	ErrMsgInvalidTransition  = "invalid status transition"

	// Database/System errors
	ErrMsgStore    = "store error"
	ErrMsgTxClosed = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotAuthenticated = errors.New(ErrMsgNotAuthenticated)
	ErrUnauthorized     = errors.New(ErrMsgUnauthorized)

	// ErrNotFound is the parent of every lookup failure
	ErrNotFound              = errors.New(ErrMsgNotFound)
	ErrChallengeNotFound     = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgChallengeNotFound)
	ErrParticipationNotFound = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgParticipationNotFound)
	ErrUserNotFound          = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgUserNotFound)

	ErrAlreadyJoined      = errors.New(ErrMsgAlreadyJoined)
	ErrChallengeFull      = errors.New(ErrMsgChallengeFull)
	ErrVerificationFailed = errors.New(ErrMsgVerificationFailed)
	ErrInvalidTransition  = errors.New(ErrMsgInvalidTransition)

	// ErrStore wraps every persistence failure
	ErrStore = errors.New(ErrMsgStore)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// StoreError wraps err as a persistence failure, keeping the cause in the chain
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
