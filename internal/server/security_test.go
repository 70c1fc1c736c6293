package server

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NotionPet_Go/internal/auth"
	"github.com/osse101/NotionPet_Go/internal/logger"
)

const (
	testSecret = "0123456789abcdef0123"
	testIssuer = "notionpet-test"
)

func TestAuthMiddleware(t *testing.T) {
	authn := auth.NewAuthenticator(testSecret, testIssuer)
	valid, err := authn.Issue("user-1", time.Hour)
	require.NoError(t, err)
	expired, err := authn.Issue("user-1", -time.Minute)
	require.NoError(t, err)
	foreign, err := auth.NewAuthenticator("another-secret-value!", testIssuer).Issue("user-1", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		path           string
		expectedStatus int
		expectedUser   string
	}{
		{"Valid bearer", "Bearer " + valid, "/api/v1/pet", http.StatusOK, "user-1"},
		{"Valid query token", "", "/api/v1/pet/stream?token=" + valid, http.StatusOK, "user-1"},
		{"Expired", "Bearer " + expired, "/api/v1/pet", http.StatusUnauthorized, ""},
		{"Wrong key", "Bearer " + foreign, "/api/v1/pet", http.StatusUnauthorized, ""},
		{"Missing", "", "/api/v1/settings", http.StatusUnauthorized, ""},
		{"Public healthz", "", "/healthz", http.StatusOK, ""},
		{"Public metrics", "", "/metrics", http.StatusOK, ""},
		{"Public card", "", "/api/v1/pet/public/user-2", http.StatusOK, ""},
		{"Public progression", "", "/api/v1/progression/250", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := NewSuspiciousActivityDetector()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()

			var gotUser string
			h := AuthMiddleware(authn, nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = logger.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedUser, gotUser)

			detector.mu.Lock()
			failures := detector.failedAuthByIP["192.0.2.1"]
			detector.mu.Unlock()
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Equal(t, 1, failures)
			} else {
				assert.Zero(t, failures)
			}
		})
	}
}

func TestExtractIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set(HeaderForwardedFor, "203.0.113.9, 198.51.100.7")

	assert.Equal(t, "10.0.0.1", extractIP(req, nil))
	assert.Equal(t, "198.51.100.7", extractIP(req, []string{"10.0.0.1"}))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	h := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789abcdef")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	h := SecurityHeadersMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		path      string
		wantCache string
	}{
		{"/api/v1/pet", HeaderValueNoStore},
		{"/api/v1/pet/stream", HeaderValueNoStore},
		{"/healthz", ""},
		{"/swagger/index.html", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
			assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
			assert.NotEmpty(t, rec.Header().Get("Permissions-Policy"))
			assert.Equal(t, tt.wantCache, rec.Header().Get("Cache-Control"))
		})
	}
}

func TestSecurityLoggingMiddleware_RateLimit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	detector := newDetector(3, time.Minute, func() time.Time { return now })
	h := SecurityLoggingMiddleware(nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/pet", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, send("192.168.1.100:1234").Code, "request %d", i)
	}

	now = now.Add(20 * time.Second)
	rec := send("192.168.1.100:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "40", rec.Header().Get(HeaderRetryAfter))

	assert.Equal(t, http.StatusOK, send("192.168.1.101:1234").Code, "budget is per ip")

	now = now.Add(time.Minute)
	assert.Equal(t, http.StatusOK, send("192.168.1.100:1234").Code, "new window")

	detector.mu.Lock()
	count := detector.requestCountByIP["192.168.1.100"]
	detector.mu.Unlock()
	assert.Equal(t, 1, count)
}

func TestRedactHeaders(t *testing.T) {
	in := http.Header{}
	in.Set("Authorization", "Bearer mytoken")
	in.Set("Cookie", "session=secret-key-123")
	in.Set("User-Agent", "TestAgent")

	out := redactHeaders(in)

	assert.Equal(t, []string{RedactedValue}, out["Authorization"])
	assert.Equal(t, []string{RedactedValue}, out["Cookie"])
	assert.Equal(t, []string{"TestAgent"}, out["User-Agent"])
	assert.Equal(t, "Bearer mytoken", in.Get("Authorization"), "input is not modified")
}

func TestLoggingMiddleware_NeverLogsCredentials(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pet/stream?token=query-secret", nil)
	req.Header.Set("Authorization", "Bearer mytoken")
	req.Header.Set("Cookie", "session=secret-key-123")
	req.Header.Set("User-Agent", "TestAgent")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)
	assert.Contains(t, out, "TestAgent")
	assert.Contains(t, out, "status=202")
	assert.NotContains(t, out, "mytoken")
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "query-secret")
}
