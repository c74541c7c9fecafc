package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guarantor-risk/observability"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type recordingObserver struct {
	paths    []string
	statuses []int
}

func (o *recordingObserver) ObserveHTTP(_, path string, status int, _ time.Duration) {
	o.paths = append(o.paths, path)
	o.statuses = append(o.statuses, status)
}

func newTestRouter(t *testing.T, cfg RouterConfig) http.Handler {
	t.Helper()
	cfg.Risk = newTestHandler(t)
	if cfg.Health == nil {
		cfg.Health = NewHealthHandler(discardLogger(), nil)
	}
	cfg.Logger = discardLogger()
	return NewRouter(cfg)
}

func TestRouter_RequestIDGenerated(t *testing.T) {
	router := newTestRouter(t, RouterConfig{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	router := newTestRouter(t, RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
}

func TestRouter_RequestIDInContext(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "abc", seen)
	assert.Empty(t, RequestIDFrom(context.Background()))
}

func TestRouter_Readiness(t *testing.T) {
	ready := newTestRouter(t, RouterConfig{
		Health: NewHealthHandler(discardLogger(), map[string]Pinger{"cache": stubPinger{}}),
	})
	w := httptest.NewRecorder()
	ready.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ready"`)

	down := newTestRouter(t, RouterConfig{
		Health: NewHealthHandler(discardLogger(), map[string]Pinger{"cache": stubPinger{err: errors.New("dial tcp: refused")}}),
	})
	w = httptest.NewRecorder()
	down.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"cache"`)
}

func TestRouter_RiskRoutes(t *testing.T) {
	router := newTestRouter(t, RouterConfig{})

	for _, path := range []string{"/risk/assess", "/risk/worst-case"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(exampleBody)))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/risk/assess", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_RateLimited(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	defer limiter.Stop()
	router := newTestRouter(t, RouterConfig{Limiter: limiter})

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/risk/assess", bytes.NewBufferString(exampleBody))
		req.RemoteAddr = "198.51.100.7:4000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())

	// Probes are never throttled.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ObserverSeesPatterns(t *testing.T) {
	observer := &recordingObserver{}
	router := newTestRouter(t, RouterConfig{Observer: observer})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/risk/assess", bytes.NewBufferString(exampleBody)))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, []string{"/risk/assess", "unmatched"}, observer.paths)
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, observer.statuses)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	metrics := observability.NewMetrics()
	router := newTestRouter(t, RouterConfig{
		Metrics:  metrics.Handler(),
		Observer: metrics,
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/risk/assess", bytes.NewBufferString(exampleBody)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "http_server_requests_total"))
	assert.Contains(t, body, `path="/risk/assess"`)
}
