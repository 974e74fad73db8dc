package server

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	buf := captureLogs(t)

	req := httptest.NewRequest("GET", "/api/v1/challenges", nil)
	req.Header.Set("X-API-Key", "secret-key-123")
	req.Header.Set("X-Admin-Key", "admin-key-456")
	req.Header.Set("Authorization", "Bearer mytoken")
	req.Header.Set("User-Agent", "TestAgent")

	loggingMiddleware(okHandler()).ServeHTTP(httptest.NewRecorder(), req)

	logOutput := buf.String()
	require.Contains(t, logOutput, LogMsgRequestHeaders)
	assert.NotContains(t, logOutput, "secret-key-123")
	assert.NotContains(t, logOutput, "admin-key-456")
	assert.NotContains(t, logOutput, "Bearer mytoken")
	assert.Contains(t, logOutput, "TestAgent")
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	captureLogs(t)

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		loggingMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/challenges", nil))

		_, err := uuid.Parse(rec.Header().Get(HeaderRequestID))
		assert.NoError(t, err)
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest("GET", "/api/v1/challenges", nil)
		req.Header.Set(HeaderRequestID, id)
		rec := httptest.NewRecorder()

		loggingMiddleware(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, id, rec.Header().Get(HeaderRequestID))
	})

	t.Run("malformed replaced", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/challenges", nil)
		req.Header.Set(HeaderRequestID, "<script>")
		rec := httptest.NewRecorder()

		loggingMiddleware(okHandler()).ServeHTTP(rec, req)

		assert.NotEqual(t, "<script>", rec.Header().Get(HeaderRequestID))
	})

	t.Run("probes skipped", func(t *testing.T) {
		rec := httptest.NewRecorder()
		loggingMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

		assert.Empty(t, rec.Header().Get(HeaderRequestID))
	})
}
