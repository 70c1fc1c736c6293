package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAndValidateRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantErr    bool
	}{
		{"valid", `{"code":"abc"}`, http.StatusOK, false},
		{"malformed", `{"code":`, http.StatusBadRequest, true},
		{"fails validation", `{}`, http.StatusBadRequest, true},
		{"too large", `{"code":"` + strings.Repeat("a", maxRequestBodyBytes) + `"}`, http.StatusRequestEntityTooLarge, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			var req ConnectNotionRequest
			err := DecodeAndValidateRequest(newRequest(t, http.MethodPost, "/", tt.body, nil), rec, &req, "test")
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "abc", req.Code)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestQueryHelpers(t *testing.T) {
	q := url.Values{"limit": {"7"}, "neg": {"-1"}, "word": {"x"}, "since": {"2026-10-01T00:00:00Z"}}

	n, err := queryInt(q, "limit", 50)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = queryInt(q, "absent", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	_, err = queryInt(q, "neg", 50)
	assert.ErrorIs(t, err, errBadQuery)
	_, err = queryInt(q, "word", 50)
	assert.ErrorIs(t, err, errBadQuery)

	since, err := queryTime(q, "since")
	require.NoError(t, err)
	assert.True(t, since.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))

	since, err = queryTime(q, "absent")
	require.NoError(t, err)
	assert.Nil(t, since)

	_, err = queryTime(q, "word")
	assert.ErrorIs(t, err, errBadQuery)
}
