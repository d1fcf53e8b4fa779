package monitor

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorRecordsRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.RecordSuccess(1500*time.Millisecond, 42)
	m.RecordSuccess(200*time.Millisecond, 57)
	m.RecordFailure(StatusInvalid)
	m.RecordFailure(StatusCancelled)

	expected := `
# HELP guard_scheduler_runs_total Total number of scheduling runs by outcome
# TYPE guard_scheduler_runs_total counter
guard_scheduler_runs_total{status="cancelled"} 1
guard_scheduler_runs_total{status="invalid"} 1
guard_scheduler_runs_total{status="succeeded"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "guard_scheduler_runs_total"))

	assert.Equal(t, 57.0, testutil.ToFloat64(m.bestFitness))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestNewReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	first.RecordFailure(StatusFailed)
	second.RecordFailure(StatusFailed)

	assert.Equal(t, 2.0, testutil.ToFloat64(first.runs.WithLabelValues(StatusFailed)))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	m.RecordSuccess(time.Second, 12)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "guard_scheduler_best_fitness 12")
	assert.Contains(t, string(body), `guard_scheduler_runs_total{status="succeeded"} 1`)
}
