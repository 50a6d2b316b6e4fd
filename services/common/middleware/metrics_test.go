package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	aws_pkg "github.com/vendora-platform/backend/pkg/aws"
	"github.com/vendora-platform/backend/services/common/middleware"
)

// fakeRecorder reports recorded metric names on a channel so tests can
// wait for the middleware's async publication.
type fakeRecorder struct {
	enabled bool
	events  chan string
}

func newFakeRecorder(enabled bool) *fakeRecorder {
	return &fakeRecorder{enabled: enabled, events: make(chan string, 16)}
}

func (f *fakeRecorder) IsEnabled() bool { return f.enabled }

func (f *fakeRecorder) RecordCount(_ context.Context, name string, _ map[string]string) error {
	f.events <- name
	return nil
}

func (f *fakeRecorder) RecordLatency(_ context.Context, name string, _ time.Duration, _ map[string]string) error {
	f.events <- name
	return nil
}

func (f *fakeRecorder) collect(t *testing.T, n int) map[string]int {
	t.Helper()
	got := map[string]int{}
	for i := 0; i < n; i++ {
		select {
		case name := <-f.events:
			got[name]++
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for metric %d of %d", i+1, n)
		}
	}
	return got
}

func metricsRouter(rec middleware.MetricsRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.MetricsMiddleware(rec, "test-service"))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return r
}

func get(r *gin.Engine, path string) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
}

func TestMetricsMiddleware_RecordsRequestAndLatency(t *testing.T) {
	rec := newFakeRecorder(true)
	r := metricsRouter(rec)

	get(r, "/ok")

	got := rec.collect(t, 2)
	assert.Equal(t, 1, got[aws_pkg.MetricHTTPRequests])
	assert.Equal(t, 1, got[aws_pkg.MetricHTTPLatency])
}

func TestMetricsMiddleware_CountsClientErrors(t *testing.T) {
	rec := newFakeRecorder(true)
	r := metricsRouter(rec)

	get(r, "/missing")

	got := rec.collect(t, 4)
	assert.Equal(t, 1, got[aws_pkg.MetricHTTPErrors])
	assert.Equal(t, 1, got[aws_pkg.MetricHTTP4xx])
	assert.Equal(t, 0, got[aws_pkg.MetricHTTP5xx])
}

func TestMetricsMiddleware_CountsServerErrors(t *testing.T) {
	rec := newFakeRecorder(true)
	r := metricsRouter(rec)

	get(r, "/boom")

	got := rec.collect(t, 4)
	assert.Equal(t, 1, got[aws_pkg.MetricHTTP5xx])
	assert.Equal(t, 0, got[aws_pkg.MetricHTTP4xx])
}

func TestMetricsMiddleware_DisabledRecorderSkips(t *testing.T) {
	rec := newFakeRecorder(false)
	r := metricsRouter(rec)

	get(r, "/ok")

	select {
	case name := <-rec.events:
		t.Fatalf("unexpected metric %q from disabled recorder", name)
	default:
	}
}
