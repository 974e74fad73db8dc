package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AICore_Go/internal/domain"
	"github.com/osse101/AICore_Go/internal/eventlog"
	"github.com/osse101/AICore_Go/mocks"
)

func TestHandleListEvents(t *testing.T) {
	t.Run("applies filters", func(t *testing.T) {
		svc := mocks.NewMockEventLogService(t)
		since := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		svc.On("GetEvents", mock.Anything, mock.MatchedBy(func(f eventlog.EventFilter) bool {
			return *f.UserID == testUserID &&
				*f.ChallengeID == testChallengeID &&
				*f.EventType == domain.EventTypeRewardSettled &&
				f.Since.Equal(since) &&
				f.Limit == 5
		})).Return([]eventlog.Event{{
			ID:        1,
			EventType: domain.EventTypeRewardSettled,
			Payload:   json.RawMessage(`{"items_credited":2}`),
		}}, nil).Once()

		path := "/admin/events?user_id=" + testUserID + "&challenge_id=" + testChallengeID +
			"&type=reward.settled&since=2026-01-02T03:04:05Z&limit=5"
		w := doRequest(t, http.HandlerFunc(NewEventLogHandler(svc).HandleListEvents), http.MethodGet, path, nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w)["data"].([]interface{})
		require.Len(t, data, 1)
		assert.Equal(t, domain.EventTypeRewardSettled, data[0].(map[string]interface{})["event_type"])
	})

	t.Run("no filters uses default limit", func(t *testing.T) {
		svc := mocks.NewMockEventLogService(t)
		svc.On("GetEvents", mock.Anything, eventlog.EventFilter{Limit: eventlog.DefaultQueryLimit}).
			Return([]eventlog.Event{}, nil).Once()

		w := doRequest(t, http.HandlerFunc(NewEventLogHandler(svc).HandleListEvents), http.MethodGet, "/admin/events", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "{\"success\":true,\"data\":[]}\n", w.Body.String())
	})

	badRequests := []struct {
		name string
		path string
		want string
	}{
		{"malformed since", "/admin/events?since=yesterday", ErrMsgInvalidSince},
		{"negative limit", "/admin/events?limit=-1", ErrMsgInvalidLimit},
	}
	for _, tt := range badRequests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockEventLogService(t)

			w := doRequest(t, http.HandlerFunc(NewEventLogHandler(svc).HandleListEvents), http.MethodGet, tt.path, nil, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decodeEnvelope(t, w)["error"])
		})
	}

	t.Run("store failure is hidden", func(t *testing.T) {
		svc := mocks.NewMockEventLogService(t)
		svc.On("GetEvents", mock.Anything, mock.Anything).Return(nil, domain.StoreError("get events", assert.AnError)).Once()

		w := doRequest(t, http.HandlerFunc(NewEventLogHandler(svc).HandleListEvents), http.MethodGet, "/admin/events", nil, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, ErrMsgGenericServerError, decodeEnvelope(t, w)["error"])
	})
}
