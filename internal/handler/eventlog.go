package handler

import (
	"net/http"
	"time"

	"github.com/osse101/AICore_Go/internal/eventlog"
)

// EventLogHandler serves the persisted challenge event trail
type EventLogHandler struct {
	service eventlog.Service
}

// NewEventLogHandler creates a new EventLogHandler
func NewEventLogHandler(service eventlog.Service) *EventLogHandler {
	return &EventLogHandler{service: service}
}

// HandleListEvents returns logged challenge events, newest first
// @Summary List challenge events
// @Tags admin
// @Produce json
// @Param X-Admin-Key header string true "Administrator key"
// @Param user_id query string false "Filter by user"
// @Param challenge_id query string false "Filter by challenge"
// @Param type query string false "Filter by event type"
// @Param since query string false "RFC3339 lower bound on created_at"
// @Param limit query int false "Maximum events to return"
// @Success 200 {object} Envelope{data=[]eventlog.Event}
// @Failure 400 {object} Envelope
// @Failure 403 {object} Envelope
// @Router /admin/events [get]
func (h *EventLogHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetOptionalIntQueryParam(w, r, "limit", eventlog.DefaultQueryLimit)
	if !ok {
		return
	}

	filter := eventlog.EventFilter{
		UserID:      optionalQueryParam(r, "user_id"),
		ChallengeID: optionalQueryParam(r, "challenge_id"),
		EventType:   optionalQueryParam(r, "type"),
		Limit:       limit,
	}

	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidSince)
			return
		}
		filter.Since = &since
	}

	events, err := h.service.GetEvents(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "List events", err)
		return
	}
	respondData(w, http.StatusOK, events)
}

func optionalQueryParam(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}
