// filepath: internal/metrics/metrics.go
// Package metrics registers the Prometheus collectors for the journal.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vj_http_requests_total",
			Help: "Total HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vj_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

var (
	// WorkflowOutcomes counts coordinator operations by result.
	WorkflowOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vj_workflow_operations_total",
			Help: "Workflow operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	// EnrichmentOutcomes counts background and manual enrichment runs.
	EnrichmentOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vj_enrichment_total",
			Help: "Enrichment runs by result",
		},
		[]string{"result"},
	)

	// OrphansDeleted counts media files removed by maintenance cleanup.
	OrphansDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vj_orphans_deleted_total",
		Help: "Orphaned media files deleted by maintenance cleanup",
	})

	// ErrorsClassified counts classified errors by category and severity.
	ErrorsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vj_errors_total",
			Help: "Classified errors by category and severity",
		},
		[]string{"category", "severity"},
	)

	// StorageAvailableBytes is refreshed by each health check.
	StorageAvailableBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vj_storage_available_bytes",
		Help: "Free bytes on the media volume at the last health check",
	})
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Outcome maps an error to a result label.
func Outcome(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// Middleware records request counts and durations.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := normalizePath(r.URL.Path)
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// normalizePath keeps label cardinality bounded.
func normalizePath(path string) string {
	if strings.HasPrefix(path, "/api/") || path == "/health" || path == "/metrics" {
		return path
	}
	return "other"
}
