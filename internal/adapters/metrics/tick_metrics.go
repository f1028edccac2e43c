package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/hive-go/internal/domain/hive"
	"github.com/andrescamacho/hive-go/internal/domain/mining"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
)

// TickMetricsCollector turns colony tick reports into Prometheus series
type TickMetricsCollector struct {
	ticksTotal       prometheus.Counter
	tickDuration     prometheus.Histogram
	lastTick         prometheus.Gauge
	sourcesProcessed *prometheus.CounterVec
	sourceFailures   *prometheus.CounterVec
	spawnOrders      *prometheus.CounterVec
	spawnEnergy      prometheus.Counter
	tasksStepped     prometheus.Counter
	tasksEvicted     *prometheus.CounterVec
	taskFailures     *prometheus.CounterVec
}

// NewTickMetricsCollector creates a new tick metrics collector
func NewTickMetricsCollector() *TickMetricsCollector {
	return &TickMetricsCollector{
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ticks_total",
			Help:      "Total number of ticks run",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent per tick including load and save",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		lastTick: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_tick",
			Help:      "Host tick number of the most recent run",
		}),
		sourcesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sources_processed_total",
			Help:      "Sources whose pipeline step ran without failure",
		}, []string{"room"}),
		sourceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "source_failures_total",
			Help:      "Sources skipped for a tick, by reason",
		}, []string{"room", "reason"}),
		spawnOrders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "spawn_orders_total",
			Help:      "Spawn orders accepted by the host, by facility",
		}, []string{"spawn"}),
		spawnEnergy: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "spawn_energy_total",
			Help:      "Energy spent on accepted spawn orders",
		}),
		tasksStepped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_stepped_total",
			Help:      "Registered tasks stepped",
		}),
		tasksEvicted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_evicted_total",
			Help:      "Registry entries removed, by reason",
		}, []string{"reason"}),
		taskFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "task_failures_total",
			Help:      "Task steps that failed, by host return code",
		}, []string{"code"}),
	}
}

// Register registers all tick metrics with the Prometheus registry
func (c *TickMetricsCollector) Register() error {
	return register(
		c.ticksTotal, c.tickDuration, c.lastTick,
		c.sourcesProcessed, c.sourceFailures,
		c.spawnOrders, c.spawnEnergy,
		c.tasksStepped, c.tasksEvicted, c.taskFailures,
	)
}

// ObserveTick records one tick report
func (c *TickMetricsCollector) ObserveTick(report *hive.Report, duration time.Duration) {
	c.ticksTotal.Inc()
	c.tickDuration.Observe(duration.Seconds())
	c.lastTick.Set(float64(report.Tick))

	for _, room := range report.Mining {
		c.sourcesProcessed.WithLabelValues(room.RoomName).Add(float64(room.Processed))
		for _, failure := range room.Failures {
			c.sourceFailures.WithLabelValues(room.RoomName, FailureReason(failure.Err)).Inc()
		}
	}

	for _, order := range report.SpawnOrders {
		c.spawnOrders.WithLabelValues(order.SpawnID).Inc()
		c.spawnEnergy.Add(float64(shared.BodyCost(order.Body)))
	}

	c.tasksStepped.Add(float64(report.Tasks.Stepped))
	c.tasksEvicted.WithLabelValues("completed").Add(float64(len(report.Tasks.Completed)))
	c.tasksEvicted.WithLabelValues("orphaned").Add(float64(len(report.Tasks.Orphaned)))
	for _, code := range report.Tasks.Failed {
		c.taskFailures.WithLabelValues(code.String()).Inc()
	}
}

// FailureReason maps a source failure to a low-cardinality label
func FailureReason(err error) string {
	if kind, ok := hive.AcquireErrorKindOf(err); ok {
		return string(kind)
	}
	var pipelineErr *mining.PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Operation
	}
	var unresolvedErr *shared.UnresolvedEntityError
	if errors.As(err, &unresolvedErr) {
		return "unresolved_" + unresolvedErr.Kind
	}
	return "unknown"
}
