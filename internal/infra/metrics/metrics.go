// Package metrics exposes Prometheus instrumentation for the storage session
// and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

const namespace = "hbnb"

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// SessionMetrics tracks identity-map size and flush activity.
// A nil *SessionMetrics is valid and records nothing.
type SessionMetrics struct {
	liveEntities  *prometheus.GaugeVec
	flushes       *prometheus.CounterVec
	flushedTotal  prometheus.Counter
	deletes       *prometheus.CounterVec
	flushDuration prometheus.Histogram
}

// NewSessionMetrics registers the session collectors on reg.
func NewSessionMetrics(reg prometheus.Registerer) *SessionMetrics {
	factory := promauto.With(reg)

	return &SessionMetrics{
		liveEntities: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "live_entities",
			Help:      "Entities currently held in the identity map.",
		}, []string{"kind"}),
		flushes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "flushes_total",
			Help:      "Staging set flushes by outcome.",
		}, []string{"result"}),
		flushedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "flushed_entities_total",
			Help:      "Entities written to the store adapter.",
		}),
		deletes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "deletes_total",
			Help:      "Entities deleted, by kind.",
		}, []string{"kind"}),
		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "flush_duration_seconds",
			Help:      "Time spent persisting the staging set.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// SetLive records the identity-map size for kind.
func (m *SessionMetrics) SetLive(kind string, n int) {
	if m == nil {
		return
	}
	m.liveEntities.WithLabelValues(kind).Set(float64(n))
}

// ObserveFlush records one flush of n entities.
func (m *SessionMetrics) ObserveFlush(n int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.flushes.WithLabelValues(result).Inc()
	m.flushDuration.Observe(elapsed.Seconds())
	if err == nil {
		m.flushedTotal.Add(float64(n))
	}
}

// IncDelete records one delete of kind.
func (m *SessionMetrics) IncDelete(kind string) {
	if m == nil {
		return
	}
	m.deletes.WithLabelValues(kind).Inc()
}

// HTTPMetrics tracks API requests by route template.
// A nil *HTTPMetrics is valid and records nothing.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP collectors on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)

	return &HTTPMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveRequest records one served request.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Module provides the metrics FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewRegistry,
		func(reg *prometheus.Registry) *SessionMetrics {
			return NewSessionMetrics(reg)
		},
		func(reg *prometheus.Registry) *HTTPMetrics {
			return NewHTTPMetrics(reg)
		},
	),
)
