// Package metrics holds the Prometheus collectors exported on /metrics.
// Every recording method is safe to call on a nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orgflow"

type Metrics struct {
	registry *prometheus.Registry

	httpRequestDuration  *prometheus.HistogramVec
	liveConnections      prometheus.Gauge
	framesSent           *prometheus.CounterVec
	droppedConnections   prometheus.Counter
	notificationsEmitted *prometheus.CounterVec
	authzDecisions       *prometheus.CounterVec
}

// New creates a Metrics bound to its own registry, including the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		liveConnections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_connections",
			Help:      "Currently registered streaming connections.",
		}),
		framesSent: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_frames_total",
			Help:      "Frames handed to live connections by kind and result.",
		}, []string{"kind", "result"}),
		droppedConnections: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_dropped_connections_total",
			Help:      "Connections removed after a failed write.",
		}),
		notificationsEmitted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_emitted_total",
			Help:      "Notifications persisted by type.",
		}, []string{"type"}),
		authzDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authz_decisions_total",
			Help:      "Authorization decisions by outcome.",
		}, []string{"outcome"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request duration labelled by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) ConnectionOpened() {
	if m != nil {
		m.liveConnections.Inc()
	}
}

func (m *Metrics) ConnectionClosed() {
	if m != nil {
		m.liveConnections.Dec()
	}
}

// FrameSent records one frame of kind ("notification" or "heartbeat").
func (m *Metrics) FrameSent(kind string, ok bool) {
	if m == nil {
		return
	}
	result := "delivered"
	if !ok {
		result = "failed"
		m.droppedConnections.Inc()
	}
	m.framesSent.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) NotificationEmitted(kind string) {
	if m != nil {
		m.notificationsEmitted.WithLabelValues(kind).Inc()
	}
}

// AuthzDecision records an allow or a denial kind.
func (m *Metrics) AuthzDecision(outcome string) {
	if m != nil {
		m.authzDecisions.WithLabelValues(outcome).Inc()
	}
}
