// Package metrics owns the Prometheus registry and the metric families
// exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nitrodesk"

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// NotificationMetrics covers dispatch cycles and individual deliveries.
type NotificationMetrics struct {
	deliveries      *prometheus.CounterVec
	deliveryLatency *prometheus.HistogramVec
	cycles          *prometheus.CounterVec
	cycleDuration   prometheus.Histogram
	lastCycle       prometheus.Gauge
	expired         prometheus.Counter
}

func NewNotificationMetrics(registry prometheus.Registerer) *NotificationMetrics {
	factory := promauto.With(registry)
	return &NotificationMetrics{
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_deliveries_total",
			Help:      "Notification attempts by type and outcome (sent, failed, skipped, deferred).",
		}, []string{"type", "outcome"}),
		deliveryLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "notification_delivery_duration_seconds",
			Help:      "Latency of Discord deliveries.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 8),
		}, []string{"type"}),
		cycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_cycles_total",
			Help:      "Expiring-notification cycles by result (ok, bot_inactive, invalid_credential, error).",
		}, []string{"result"}),
		cycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "notification_cycle_duration_seconds",
			Help:      "Wall time of an expiring-notification cycle.",
			Buckets:   prometheus.DefBuckets,
		}),
		lastCycle: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notification_last_cycle_timestamp_seconds",
			Help:      "Unix time of the last completed cycle.",
		}),
		expired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "customers_marked_expired_total",
			Help:      "Customers transitioned from ACTIVE to EXPIRED.",
		}),
	}
}

func (m *NotificationMetrics) IncDelivery(notificationType, outcome string) {
	m.deliveries.WithLabelValues(notificationType, outcome).Inc()
}

func (m *NotificationMetrics) ObserveDelivery(notificationType string, d time.Duration) {
	m.deliveryLatency.WithLabelValues(notificationType).Observe(d.Seconds())
}

func (m *NotificationMetrics) ObserveCycle(result string, d time.Duration, at time.Time) {
	m.cycles.WithLabelValues(result).Inc()
	m.cycleDuration.Observe(d.Seconds())
	m.lastCycle.Set(float64(at.Unix()))
}

func (m *NotificationMetrics) AddExpired(n int) {
	m.expired.Add(float64(n))
}

// ActivityMetrics counts audit writes that were dropped after retrying.
type ActivityMetrics struct {
	writeFailures *prometheus.CounterVec
}

func NewActivityMetrics(registry prometheus.Registerer) *ActivityMetrics {
	return &ActivityMetrics{
		writeFailures: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_write_failures_total",
			Help:      "Activity log entries dropped after the retry failed.",
		}, []string{"action"}),
	}
}

func (m *ActivityMetrics) IncWriteFailure(action string) {
	m.writeFailures.WithLabelValues(action).Inc()
}

// HTTPMetrics backs the request middleware.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

func NewHTTPMetrics(registry prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(registry)
	return &HTTPMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served.",
		}),
	}
}

func (m *HTTPMetrics) Start() {
	m.inflight.Inc()
}

func (m *HTTPMetrics) Done(method, route, status string, d time.Duration) {
	m.inflight.Dec()
	m.requests.WithLabelValues(method, route, status).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}
