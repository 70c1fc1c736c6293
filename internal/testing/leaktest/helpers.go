// Package leaktest wraps goleak with the goroutines this service expects to outlive a test.
package leaktest

import (
	"testing"

	"go.uber.org/goleak"
)

// ignored are long-lived goroutines started by libraries, not by our code
var ignored = []goleak.Option{
	// net/http keep-alive connections from httptest clients
	goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
	goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	// pgxpool background health checks
	goleak.IgnoreAnyFunction("github.com/jackc/pgx/v5/pgxpool.(*Pool).backgroundHealthCheck"),
	// expirable LRU cleanup ticker
	goleak.IgnoreAnyFunction("github.com/hashicorp/golang-lru/v2/expirable.NewLRU[...].func1"),
}

// Options returns the shared ignore list plus extra
func Options(extra ...goleak.Option) []goleak.Option {
	opts := make([]goleak.Option, 0, len(ignored)+len(extra))
	opts = append(opts, ignored...)
	return append(opts, extra...)
}

// VerifyNone fails t if goroutines other than the ignored ones are still running
func VerifyNone(t testing.TB, extra ...goleak.Option) {
	t.Helper()
	goleak.VerifyNone(t, Options(extra...)...)
}

// CheckNoGoroutineLeak runs fn and verifies it left no goroutines behind
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()
	opts := Options(goleak.IgnoreCurrent())
	fn()
	goleak.VerifyNone(t, opts...)
}
