package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProbe struct {
	mock.Mock
}

func (m *MockProbe) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestHandleHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		hubErr     error
		wantStatus int
		want       HealthResponse
	}{
		{
			name:       "all components ready",
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ok", Components: map[string]string{"database": "ok", "events": "ok"}},
		},
		{
			name:       "database down",
			dbErr:      errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			want:       HealthResponse{Status: "unavailable", Components: map[string]string{"database": "unavailable", "events": "ok"}},
		},
		{
			name:       "everything timing out",
			dbErr:      context.DeadlineExceeded,
			hubErr:     context.DeadlineExceeded,
			wantStatus: http.StatusServiceUnavailable,
			want:       HealthResponse{Status: "unavailable", Components: map[string]string{"database": "unavailable", "events": "unavailable"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, hub := &MockProbe{}, &MockProbe{}
			db.On("Ping", mock.Anything).Return(tt.dbErr).Once()
			hub.On("Ping", mock.Anything).Return(tt.hubErr).Once()

			w := httptest.NewRecorder()
			HandleReadyz(
				ReadinessCheck{Name: "database", Probe: db.Ping},
				ReadinessCheck{Name: "events", Probe: hub.Ping},
			).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.want, decode[HealthResponse](t, w))
			db.AssertExpectations(t)
			hub.AssertExpectations(t)
		})
	}
}

func TestHandleReadyz_ProbeGetsDeadline(t *testing.T) {
	var hasDeadline bool
	w := httptest.NewRecorder()
	HandleReadyz(ReadinessCheck{Name: "database", Probe: func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	}}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hasDeadline)
}

func TestHandleVersion(t *testing.T) {
	w := httptest.NewRecorder()
	HandleVersion().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	info := decode[VersionInfo](t, w)
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
