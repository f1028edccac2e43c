package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hive-go/internal/adapters/metrics"
	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/internal/domain/hive"
	"github.com/andrescamacho/hive-go/internal/domain/mining"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/spawning"
	"github.com/andrescamacho/hive-go/internal/domain/tasks"
)

func sampleReport() *hive.Report {
	return &hive.Report{
		Tick: 42,
		Mining: []mining.RunReport{{
			RoomName:  "W1N1",
			Sources:   2,
			Processed: 1,
			Failures: []*mining.SourceError{
				{RoomName: "W1N1", SourceID: "s1", Err: hive.ErrNoSpawnAvailable},
			},
		}},
		Tasks: tasks.SweepReport{
			Stepped:   3,
			Completed: []string{"a"},
			Orphaned:  []string{"b"},
			Failed:    map[string]shared.ReturnCode{"c": shared.Tired},
		},
		SpawnOrders: []hive.SpawnOrder{{WorkerName: "hauler:s1", SpawnID: "spawn1", Body: spawning.HaulerBody(0)}},
	}
}

func TestTickMetricsCollector_ObserveTick(t *testing.T) {
	metrics.InitRegistry()
	collector := metrics.NewTickMetricsCollector()
	require.NoError(t, collector.Register())

	collector.ObserveTick(sampleReport(), 10*time.Millisecond)

	count, err := testutil.GatherAndCount(metrics.Registry,
		"hive_colony_ticks_total", "hive_colony_source_failures_total", "hive_colony_spawn_orders_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	families, err := metrics.Registry.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[family.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[family.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, 42.0, values["hive_colony_last_tick"])
	assert.Equal(t, 200.0, values["hive_colony_spawn_energy_total"])
	assert.Equal(t, 2.0, values["hive_colony_tasks_evicted_total"])
	assert.Equal(t, 3.0, values["hive_colony_tasks_stepped_total"])
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "NO_SPAWN_AVAILABLE", metrics.FailureReason(hive.ErrNoSpawnAvailable))
	assert.Equal(t, mining.OpHarvest, metrics.FailureReason(mining.NewPipelineError("w", mining.OpHarvest, shared.Busy, "")))
	assert.Equal(t, "unresolved_source", metrics.FailureReason(shared.NewUnresolvedEntityError("source", "s1")))
	assert.Equal(t, "unknown", metrics.FailureReason(errors.New("boom")))
}

type runTick struct{}

type okHandler struct{}

func (okHandler) Handle(context.Context, common.Request) (common.Response, error) { return "ok", nil }

func TestPrometheusMiddleware_RecordsByRequestName(t *testing.T) {
	metrics.InitRegistry()
	collector := metrics.NewRequestMetricsCollector()
	require.NoError(t, collector.Register())
	m := common.NewMediator()
	m.RegisterMiddleware(metrics.PrometheusMiddleware(collector, nil))
	require.NoError(t, common.RegisterHandler[*runTick](m, okHandler{}))

	_, err := m.Send(context.Background(), &runTick{})
	require.NoError(t, err)

	families, err := metrics.Registry.Gather()
	require.NoError(t, err)
	var found bool
	for _, family := range families {
		if family.GetName() != "hive_colony_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "request" && label.GetValue() == "runTick" {
					found = true
				}
			}
		}
	}
	assert.True(t, found)
}

func TestRegister_NoopWhileDisabled(t *testing.T) {
	metrics.Registry = nil

	assert.NoError(t, metrics.NewTickMetricsCollector().Register())
	assert.False(t, metrics.IsEnabled())
}
