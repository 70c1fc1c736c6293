package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// RouteUnmatched labels requests no route matched, so probing bots cannot mint new series
const RouteUnmatched = "unmatched"

const contentTypeEventStream = "text/event-stream"

// statusRecorder captures the status code and keeps http.Flusher reachable for the event stream
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Middleware counts requests by chi route pattern and observes their latency.
// Event streams are counted but kept out of the latency histogram since they
// last as long as the browser tab.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := routeLabel(r, rw.status)
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()

		if strings.HasPrefix(rw.Header().Get("Content-Type"), contentTypeEventStream) {
			return
		}
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func routeLabel(r *http.Request, status int) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
		if status == http.StatusNotFound || status == http.StatusMethodNotAllowed {
			return RouteUnmatched
		}
	}
	return r.URL.Path
}
