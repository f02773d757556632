package observability

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryMetrics(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Counter(MetricTasksCreated, 1, T("category", "Work"))
	m.Counter(MetricTasksCreated, 2, T("category", "Work"))
	m.Counter(MetricTasksCreated, 1, T("category", "Health"))
	m.Gauge(MetricOutboxLag, 1.5)
	m.Histogram(MetricPriorityTasksScored, 12)
	m.Timing(MetricOperationDuration, time.Second, T("a", "1"), T("b", "2"))

	assert.Equal(t, int64(3), m.GetCounter(MetricTasksCreated, T("category", "Work")))
	assert.Equal(t, int64(1), m.GetCounter(MetricTasksCreated, T("category", "Health")))
	assert.Equal(t, 1.5, m.GetGauge(MetricOutboxLag))
	assert.Equal(t, []float64{12}, m.GetHistogram(MetricPriorityTasksScored))
	// Tag order does not matter.
	assert.Len(t, m.GetTimings(MetricOperationDuration, T("b", "2"), T("a", "1")), 1)
}

func TestNoopMetrics(t *testing.T) {
	var m Metrics = NoopMetrics{}
	assert.NotPanics(t, func() {
		m.Counter("x", 1)
		m.Gauge("x", 1)
		m.Histogram("x", 1)
		m.Timing("x", time.Millisecond)
	})
}

func TestPrometheusMetrics(t *testing.T) {
	m := NewPrometheusMetrics()

	m.Counter(MetricTasksCreated, 2, T("category", "Work"))
	m.Counter(MetricTasksCreated, 1, T("category", "Work"), T("ignored", "x"))
	m.Gauge(MetricOutboxLag, 3)
	m.Timing(MetricOperationDuration, 250*time.Millisecond, T("operation", "recalc"))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `focusflow_tasks_created_total{category="Work"} 3`)
	assert.Contains(t, text, `focusflow_outbox_lag_seconds 3`)
	assert.Contains(t, text, `focusflow_operation_duration_seconds_count{operation="recalc"} 1`)
	assert.Contains(t, text, "go_goroutines")
}

func TestPromName(t *testing.T) {
	assert.Equal(t, "focusflow_tasks_created", PromName("focusflow.tasks.created"))
	assert.Equal(t, "a_b_c", PromName("a-b c"))
}

func TestTimer(t *testing.T) {
	m := NewInMemoryMetrics()

	err := TimeOperation(nil, m, "recalc", func() error { return errors.New("boom") })
	require.Error(t, err)

	n, err := TimeOperationResult(nil, m, "recalc", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	tag := T(OperationKey, "recalc")
	assert.Equal(t, int64(2), m.GetCounter(MetricOperationTotal, tag))
	assert.Equal(t, int64(1), m.GetCounter(MetricOperationErrors, tag))
	assert.Len(t, m.GetTimings(MetricOperationDuration, tag), 2)
}

func TestHealthRegistry(t *testing.T) {
	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("down") }

	t.Run("healthy when every check passes", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("database", DatabaseHealthChecker(ok))
		r.Register("redis", RedisHealthChecker(ok))

		h := r.Check(context.Background())
		assert.Equal(t, HealthStatusHealthy, h.Status)
		assert.Len(t, h.Checks, 2)
	})

	t.Run("redis failure only degrades", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("database", DatabaseHealthChecker(ok))
		r.Register("redis", RedisHealthChecker(fail))

		h := r.Check(context.Background())
		assert.Equal(t, HealthStatusDegraded, h.Status)
		assert.Contains(t, h.Checks["redis"].Message, "down")
	})

	t.Run("database failure is unhealthy", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("database", DatabaseHealthChecker(fail))
		r.Register("redis", RedisHealthChecker(fail))

		assert.Equal(t, HealthStatusUnhealthy, r.Check(context.Background()).Status)
	})

	t.Run("empty registry is healthy", func(t *testing.T) {
		assert.Equal(t, HealthStatusHealthy, NewHealthRegistry().Check(context.Background()).Status)
	})
}
