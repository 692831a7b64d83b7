// internal/metrics/metrics_test.go
package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePass(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObservePass(3, 7, 2)
	m.ObservePass(2, 4, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Validations))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Corrections))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Tracks))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.DataHeight))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePass(1, 1, 1)
		m.ObservePublishError()
	})
}

func TestHandlerServesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObservePublishError()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "multitrack_publish_errors_total 1"), body)
	assert.True(t, strings.Contains(body, "multitrack_validations_total 0"), body)
}
