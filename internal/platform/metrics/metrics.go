// Package metrics exposes the service's Prometheus collectors on a private registry.
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

const defaultNamespace = "fantasy_livescore"

type Option func(*Manager)

func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

func WithRuntimeCollectors() Option {
	return func(m *Manager) { m.runtime = true }
}

// Manager owns every collector. A nil *Manager accepts all calls and records nothing.
type Manager struct {
	namespace string
	registry  *prometheus.Registry
	runtime   bool

	participantsScored prometheus.Counter
	participantsFailed *prometheus.CounterVec
	substitutions      prometheus.Counter
	roundRunDuration   *prometheus.HistogramVec
	providerRequests   *prometheus.CounterVec
	providerLatency    *prometheus.HistogramVec
	breakerState       *prometheus.GaugeVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: defaultNamespace,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.runtime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(m.registry)
	m.participantsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "scoring",
		Name:      "participants_scored_total",
		Help:      "Participants whose live score was recalculated and stored.",
	})
	m.participantsFailed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "scoring",
		Name:      "participants_failed_total",
		Help:      "Participants skipped during a round run, by reason.",
	}, []string{"reason"})
	m.substitutions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "scoring",
		Name:      "auto_substitutions_total",
		Help:      "Bench players promoted by automatic substitution.",
	})
	m.roundRunDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "scoring",
		Name:      "round_run_duration_seconds",
		Help:      "Duration of ingestion and scoring stages of a round run.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"stage", "outcome"})
	m.providerRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "provider",
		Name:      "requests_total",
		Help:      "Upstream provider requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})
	m.providerLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Upstream provider request latency including retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
	m.breakerState = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "provider",
		Name:      "circuit_state",
		Help:      "Circuit breaker state: 0 closed, 1 half open, 2 open.",
	}, []string{"name"})
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status_code"})
	m.httpDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	return m
}

func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the private registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Manager) ParticipantScored() {
	if m == nil {
		return
	}
	m.participantsScored.Inc()
}

func (m *Manager) ParticipantFailed(reason string) {
	if m == nil {
		return
	}
	m.participantsFailed.WithLabelValues(reason).Inc()
}

func (m *Manager) SubstitutionsMade(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.substitutions.Add(float64(n))
}

func (m *Manager) ObserveRoundStage(stage string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.roundRunDuration.WithLabelValues(stage, outcome(err)).Observe(elapsed.Seconds())
}

func (m *Manager) ProviderRequest(endpoint string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(endpoint, outcome(err)).Inc()
	m.providerLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// BreakerState records state as 0 closed, 1 half_open, 2 open.
func (m *Manager) BreakerState(name, state string) {
	if m == nil {
		return
	}
	value := 0.0
	switch state {
	case "half_open":
		value = 1
	case "open":
		value = 2
	}
	m.breakerState.WithLabelValues(name).Set(value)
}

func (m *Manager) HTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
