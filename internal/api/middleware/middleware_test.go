package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) add(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Info(format string, v ...interface{})  { l.add("INFO", format, v...) }
func (l *recordingLogger) Warn(format string, v ...interface{})  { l.add("WARN", format, v...) }
func (l *recordingLogger) Error(format string, v ...interface{}) { l.add("ERROR", format, v...) }

func newRouter(m *metrics.Metrics, logger Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(Recover(logger))
	r.Use(MetricsMiddleware(m))
	r.Use(LoggingMiddleware(logger))
	r.HandleFunc("/companies/{companyId}/slots", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.HandleFunc("/companies/{companyId}/bookings", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}).Methods(http.MethodPost)
	r.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	return r
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("middleware-test", prometheus.NewRegistry())
	router := newRouter(m, &recordingLogger{})

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/"+id+"/slots", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/companies/1/bookings", nil))
	require.Equal(t, http.StatusConflict, rec.Code)

	assert.Equal(t, 3.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/companies/{companyId}/slots", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/companies/{companyId}/bookings", "409")))
}

func TestMetricsMiddleware_NilMetrics(t *testing.T) {
	router := newRouter(nil, &recordingLogger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/1/slots", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggingMiddleware_LevelByStatus(t *testing.T) {
	logger := &recordingLogger{}
	router := newRouter(nil, logger)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/companies/7/slots", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/companies/7/bookings", nil))

	require.Len(t, logger.lines, 2)
	assert.Contains(t, logger.lines[0], "INFO GET /companies/7/slots - 200")
	assert.Contains(t, logger.lines[1], "WARN POST /companies/7/bookings - 409")
}

func TestRecover_ReturnsInternalError(t *testing.T) {
	logger := &recordingLogger{}
	router := newRouter(nil, logger)

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logger.lines[len(logger.lines)-1], "panic: boom")
}
