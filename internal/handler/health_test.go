package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AICore_Go/mocks"
)

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	HandleHealthz().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedBody   []string
	}{
		{"Database Connected - Success", nil, http.StatusOK, []string{`"status":"ok"`}},
		{"Database Connection Failed", assert.AnError, http.StatusServiceUnavailable,
			[]string{`"status":"unavailable"`, `"message":"database connection failed"`}},
		{"Database Timeout", context.DeadlineExceeded, http.StatusServiceUnavailable,
			[]string{`"status":"unavailable"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := mocks.NewMockPool(t)
			pool.On("Ping", mock.Anything).Return(tt.pingErr)

			req := httptest.NewRequest("GET", "/readyz", nil)
			w := httptest.NewRecorder()

			HandleReadyz(pool).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, s := range tt.expectedBody {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

func TestHandleReadyz_PingHasDeadline(t *testing.T) {
	pool := mocks.NewMockPool(t)
	pool.On("Ping", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(nil)

	w := httptest.NewRecorder()
	HandleReadyz(pool).ServeHTTP(w, httptest.NewRequest("GET", "/readyz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleVersion(t *testing.T) {
	w := httptest.NewRecorder()
	HandleVersion("aicore-challenges", "1.4.0").ServeHTTP(w, httptest.NewRequest("GET", "/version", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "aicore-challenges", info.Service)
	assert.Equal(t, "1.4.0", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestHandleVersion_DefaultsToDev(t *testing.T) {
	w := httptest.NewRecorder()
	HandleVersion("aicore-challenges", "").ServeHTTP(w, httptest.NewRequest("GET", "/version", nil))

	assert.Contains(t, w.Body.String(), `"version":"dev"`)
}
