package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/AICore_Go/internal/domain"
)

// Request-level error messages. These never expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgMissingChallengeID    = "Missing challenge id"
	ErrMsgAdminRequired         = "Administrator access required"
	ErrMsgInvalidSince          = "Invalid since parameter, expected RFC3339"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError      = "Something went wrong"
	ErrMsgNotAuthenticatedError   = "Missing or invalid user identity"
	ErrMsgUnauthorizedError       = "You are not allowed to do that"
	ErrMsgChallengeNotFoundError  = "Challenge not found"
	ErrMsgParticipationNotFound   = "You have not joined this challenge"
	ErrMsgUserNotFoundError       = "User not found"
	ErrMsgResourceNotFoundError   = "Resource not found"
	ErrMsgAlreadyJoinedError      = "You have already joined this challenge"
	ErrMsgChallengeFullError      = "This challenge is full"
	ErrMsgVerificationFailedError = "Challenge requirements are not met yet"
	ErrMsgInvalidTransitionError  = "A completed challenge cannot go back to active"
)

// Success messages
const (
	MsgChallengeDeleted = "Challenge deleted"
)

// mapServiceErrorToUserMessage maps domain errors to an HTTP status and a message safe to show users
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// Persistence failures first: a wrapped cause may itself look like a not-found
	switch {
	case errors.Is(err, domain.ErrStore):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, ErrMsgNotAuthenticatedError
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, ErrMsgUnauthorizedError
	case errors.Is(err, domain.ErrChallengeNotFound):
		return http.StatusNotFound, ErrMsgChallengeNotFoundError
	case errors.Is(err, domain.ErrParticipationNotFound):
		return http.StatusNotFound, ErrMsgParticipationNotFound
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgResourceNotFoundError
	case errors.Is(err, domain.ErrAlreadyJoined):
		return http.StatusConflict, ErrMsgAlreadyJoinedError
	case errors.Is(err, domain.ErrChallengeFull):
		return http.StatusConflict, ErrMsgChallengeFullError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgInvalidTransitionError
	case errors.Is(err, domain.ErrVerificationFailed):
		return http.StatusUnprocessableEntity, ErrMsgVerificationFailedError
	case errors.Is(err, domain.ErrInvalidInput):
		// Service validation messages describe the offending field and are safe to echo
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
