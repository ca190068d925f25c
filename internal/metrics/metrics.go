package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"
)

// Metrics holds the service's Prometheus collectors on a private registry.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	fulfillments  *prometheus.CounterVec
	storeDuration prometheus.Histogram
	storeErrors   prometheus.Counter
	storeUp       prometheus.Gauge
	cbState       *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fulfillments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillments_total",
			Help: "Webhook fulfillments by intent and outcome.",
		}, []string{"intent", "outcome"}),
		storeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sensor_store_read_duration_seconds",
			Help:    "Histogram of full sensor collection reads.",
			Buckets: prometheus.DefBuckets,
		}),
		storeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensor_store_read_errors_total",
			Help: "Total failed sensor collection reads.",
		}),
		storeUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sensor_store_up",
			Help: "1 if the last store probe succeeded.",
		}),
		cbState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cb_state",
			Help: "Circuit breaker state gauge (0 closed, 1 half, 2 open).",
		}, []string{"target"}),
	}

	m.registry.MustRegister(
		m.fulfillments,
		m.storeDuration,
		m.storeErrors,
		m.storeUp,
		m.cbState,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveFulfillment(intent, outcome string) {
	if m == nil {
		return
	}
	m.fulfillments.WithLabelValues(intent, outcome).Inc()
}

func (m *Metrics) ObserveStoreRead(elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.storeDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.storeErrors.Inc()
	}
}

func (m *Metrics) SetStoreUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.storeUp.Set(1)
		return
	}
	m.storeUp.Set(0)
}

// BreakerStateChanged matches store.BreakerOptions.OnStateChange.
func (m *Metrics) BreakerStateChanged(name string, _, to gobreaker.State) {
	if m == nil {
		return
	}
	m.cbState.WithLabelValues(name).Set(breakerGauge(to))
}

func breakerGauge(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
