package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSuccess(t *testing.T) {
	m := New()

	m.ObserveSuccess("api", 120, 5, 2*time.Millisecond)
	m.ObserveSuccess("api", 80, 3, time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("api", ResultSuccess, "")))
	assert.Equal(t, float64(8), testutil.ToFloat64(m.RecordsTotal))
}

func TestObserveFailure(t *testing.T) {
	m := New()

	m.ObserveFailure("upload", "ColumnMismatch", 40)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("upload", ResultFailure, "ColumnMismatch")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.RecordsTotal))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSuccess("cli", 1, 1, time.Millisecond)
		m.ObserveFailure("cli", "EmptyInput", 0)
	})
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveSuccess("api", 10, 1, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "csv2json_conversions_total")
	assert.Contains(t, string(body), "go_goroutines")
}
