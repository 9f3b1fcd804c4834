// Package metrics provides Prometheus metrics for the nutri API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels of store operations and job enqueues.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Manager owns the registry and every collector of the service.
// Record methods are no-ops on a nil *Manager.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rateLimited         *prometheus.CounterVec

	storeOperations *prometheus.CounterVec
	storeLatency    *prometheus.HistogramVec

	jobsEnqueued *prometheus.CounterVec
}

// NewManager creates a manager on a fresh registry unless WithRegistry is given.
// Go runtime and process collectors are registered as well.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nutri",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: m.constLabels,
		},
		[]string{"route", "method", "status"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"route", "method", "status"},
	)

	m.rateLimited = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "rate_limited_requests_total",
			Help:        "Total number of requests rejected by the rate limiter",
			ConstLabels: m.constLabels,
		},
		[]string{"route"},
	)

	m.storeOperations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "store_operations_total",
			Help:        "Total number of store operations by entity, operation and outcome",
			ConstLabels: m.constLabels,
		},
		[]string{"entity", "operation", "outcome"},
	)

	m.storeLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "store_operation_duration_seconds",
			Help:        "Store operation latency in seconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"entity", "operation"},
	)

	m.jobsEnqueued = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "jobs_enqueued_total",
			Help:        "Total number of background jobs enqueued by task and outcome",
			ConstLabels: m.constLabels,
		},
		[]string{"task", "outcome"},
	)
}

// RecordHTTPRequest counts a served request and observes its duration.
func (m *Manager) RecordHTTPRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(route, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, code).Observe(duration.Seconds())
}

// RecordRateLimited counts a request rejected by the limiter.
func (m *Manager) RecordRateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}

// RecordStoreOperation counts a store call and observes its latency.
func (m *Manager) RecordStoreOperation(entity, operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeOperations.WithLabelValues(entity, operation, outcome).Inc()
	m.storeLatency.WithLabelValues(entity, operation).Observe(duration.Seconds())
}

// RecordJobEnqueued counts an enqueue attempt.
func (m *Manager) RecordJobEnqueued(task, outcome string) {
	if m == nil {
		return
	}
	m.jobsEnqueued.WithLabelValues(task, outcome).Inc()
}

// Registry returns the registry backing the manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
