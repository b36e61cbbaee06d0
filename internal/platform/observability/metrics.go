package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	transitions  *prometheus.CounterVec
	queries      *prometheus.CounterVec
	queryResults *prometheus.HistogramVec
	rateLimited  *prometheus.CounterVec
}

// NewMetrics registers collectors on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visnex_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "visnex_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visnex_view_transitions_total",
			Help: "View transitions by target view and fragment write mode.",
		}, []string{"view", "mode"}),
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visnex_catalog_queries_total",
			Help: "Catalog queries by catalog and resolved sort key.",
		}, []string{"catalog", "sort"}),
		queryResults: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "visnex_catalog_query_results",
			Help:    "Number of records returned per catalog query.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}, []string{"catalog"}),
		rateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visnex_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}, []string{"route"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	route = SanitizeRoute(route)
	m.requests.WithLabelValues(route, SanitizeMethod(method), strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveTransition records a view change and the fragment write it caused.
// mode is "none" when no fragment write was needed.
func (m *Metrics) ObserveTransition(view, mode string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(view, mode).Inc()
}

// ObserveQuery records a catalog query and its result size.
func (m *Metrics) ObserveQuery(catalog, sort string, results int) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(catalog, sort).Inc()
	m.queryResults.WithLabelValues(catalog).Observe(float64(results))
}

// ObserveRateLimited records a rejected request.
func (m *Metrics) ObserveRateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(SanitizeRoute(route)).Inc()
}
