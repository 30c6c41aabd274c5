package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector_ObserveCodes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.ObserveCodes([]int{3, 5, 6, 3, 0})

	assert.InDelta(t, 2, testutil.ToFloat64(c.PointsClassified.WithLabelValues("3")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(c.PointsClassified.WithLabelValues("0")), 0.001)
}

func TestNewCollector_ReRegisterReturnsExisting(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	require.NoError(t, err)
	second, err := NewCollector(reg)
	require.NoError(t, err)

	first.ObserveRequest("/v1/classify", http.StatusOK, 10*time.Millisecond)
	assert.InDelta(t, 1, testutil.ToFloat64(second.Requests.WithLabelValues("/v1/classify", "200")), 0.001)
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	c.ObserveCodes([]int{1})
	c.ObserveRequest("/x", http.StatusOK, time.Millisecond)
	assert.NotNil(t, c.Handler())
}

func TestCollector_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)
	c.ObserveCodes([]int{9})

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `sbt_points_classified_total{code="9"} 1`)
}
