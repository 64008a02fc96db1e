package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	eventsServed     *prometheus.CounterVec
	analyses         *prometheus.CounterVec
	upstreamFailures *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{gatherer: reg}

	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gia",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})
	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gia",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	m.eventsServed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gia",
		Name:      "events_served_total",
		Help:      "Event feed responses by origin (live or fallback)",
	}, []string{"origin"})
	m.analyses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gia",
		Name:      "analyses_total",
		Help:      "Impact analyses by result source",
	}, []string{"source"})
	m.upstreamFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gia",
		Name:      "upstream_failures_total",
		Help:      "Failed calls to external APIs",
	}, []string{"upstream"})

	reg.MustRegister(
		m.requests,
		m.requestDuration,
		m.eventsServed,
		m.analyses,
		m.upstreamFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) EventsServed(origin string) {
	if m == nil {
		return
	}
	m.eventsServed.WithLabelValues(origin).Inc()
}

func (m *Metrics) AnalysisServed(source string) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(source).Inc()
}

func (m *Metrics) UpstreamFailure(upstream string) {
	if m == nil {
		return
	}
	m.upstreamFailures.WithLabelValues(upstream).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
