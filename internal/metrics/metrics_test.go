package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"photorelay/internal/metrics"
)

func TestMetrics_Outcomes(t *testing.T) {
	m := metrics.New()

	m.Rejected()
	m.Rejected()
	m.Stored(1024, 20*time.Millisecond)
	m.Failed(time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Uploads().WithLabelValues(metrics.OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Uploads().WithLabelValues(metrics.OutcomeStored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Uploads().WithLabelValues(metrics.OutcomeFailed)))
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	a := metrics.New()
	b := metrics.New()

	a.Rejected()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Uploads().WithLabelValues(metrics.OutcomeRejected)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Uploads().WithLabelValues(metrics.OutcomeRejected)))
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.Stored(2048, 5*time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `photorelay_uploads_total{outcome="stored"} 1`)
	assert.Contains(t, w.Body.String(), "photorelay_upload_bytes_sum 2048")
}
