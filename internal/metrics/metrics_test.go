// filepath: internal/metrics/metrics_test.go
package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMiddleware_RecordsStatus(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := counterValue(t, httpRequestsTotal.WithLabelValues("GET", "/api/info", "418"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/info", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, before+1, counterValue(t, httpRequestsTotal.WithLabelValues("GET", "/api/info", "418")))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/api/entries", normalizePath("/api/entries"))
	assert.Equal(t, "/health", normalizePath("/health"))
	assert.Equal(t, "other", normalizePath("/random/../x"))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, ResultOK, Outcome(nil))
	assert.Equal(t, ResultError, Outcome(errors.New("x")))
}
