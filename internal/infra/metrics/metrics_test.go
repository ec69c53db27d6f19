package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSessionMetrics(reg)

	m.SetLive("State", 3)
	m.SetLive("State", 2)
	m.ObserveFlush(4, time.Millisecond, nil)
	m.ObserveFlush(1, time.Millisecond, errors.New("disk full"))
	m.IncDelete("City")
	m.IncDelete("City")

	assert.InDelta(t, 2, testutil.ToFloat64(m.liveEntities.WithLabelValues("State")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.flushes.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.flushes.WithLabelValues("error")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(m.flushedTotal), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.deletes.WithLabelValues("City")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.flushDuration))
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/states", 200, 5*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/states", 200, 5*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/states/:state_id", 404, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/states", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/states/:state_id", "404")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{"hbnb_http_requests_total", "hbnb_http_request_duration_seconds"}, names)
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var (
		s *SessionMetrics
		h *HTTPMetrics
	)

	assert.NotPanics(t, func() {
		s.SetLive("User", 1)
		s.ObserveFlush(1, time.Second, nil)
		s.IncDelete("User")
		h.ObserveRequest("GET", "/", 200, time.Second)
	})
}

func TestNewRegistryCarriesRuntimeCollectors(t *testing.T) {
	families, err := NewRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
