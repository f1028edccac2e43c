package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetricsCollector counts and times colony requests (ticks, task edits,
// memory queries) as they pass through the mediator
type RequestMetricsCollector struct {
	latency  *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

func NewRequestMetricsCollector() *RequestMetricsCollector {
	return &RequestMetricsCollector{
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Time spent handling a colony request, store round-trips included",
				// a tick against the simulator takes well under a millisecond;
				// the upper buckets catch slow memory backends
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.01, 0.05, 0.25, 1.0},
			},
			[]string{"request", "outcome"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Colony requests handled, by request type and outcome",
			},
			[]string{"request", "outcome"},
		),
	}
}

func (c *RequestMetricsCollector) Register() error {
	return register(c.latency, c.requests)
}

// Observe records one handled request; failed is true when the handler returned an error
func (c *RequestMetricsCollector) Observe(request string, seconds float64, failed bool) {
	outcome := "ok"
	if failed {
		outcome = "failed"
	}

	c.latency.WithLabelValues(request, outcome).Observe(seconds)
	c.requests.WithLabelValues(request, outcome).Inc()
}
