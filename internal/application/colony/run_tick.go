package colony

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/internal/domain/hive"
	"github.com/andrescamacho/hive-go/internal/domain/mining"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// TickObserver receives the outcome of every tick (metrics, dashboards)
type TickObserver interface {
	ObserveTick(report *hive.Report, duration time.Duration)
}

// RunTickCommand runs the colony for exactly one host tick
type RunTickCommand struct{}

// RunTickResponse - Response from the run tick command
type RunTickResponse struct {
	Tick   shared.Tick
	Fresh  bool // the hive was founded this tick
	Report *hive.Report
}

// RunTickHandler loads the colony, runs it against the current snapshot,
// saves it and commits the tick to the host.
type RunTickHandler struct {
	host      world.Host
	hives     *HiveRepository
	clock     shared.Clock
	observers []TickObserver
}

// NewRunTickHandler creates a new run tick handler
func NewRunTickHandler(host world.Host, hives *HiveRepository, clock shared.Clock, observers ...TickObserver) *RunTickHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RunTickHandler{
		host:      host,
		hives:     hives,
		clock:     clock,
		observers: observers,
	}
}

// Handle executes the run tick command
func (h *RunTickHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*RunTickCommand); !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	started := h.clock.Now()
	snapshot := h.host.Snapshot()

	colony, fresh, err := h.hives.Load(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	report := colony.Run(snapshot)
	logReport(ctx, &report)

	if err := h.hives.Save(ctx, colony); err != nil {
		return nil, err
	}
	if err := h.host.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit tick %d: %w", report.Tick, err)
	}

	elapsed := h.clock.Now().Sub(started)
	for _, observer := range h.observers {
		observer.ObserveTick(&report, elapsed)
	}

	return &RunTickResponse{Tick: report.Tick, Fresh: fresh, Report: &report}, nil
}

func logReport(ctx context.Context, report *hive.Report) {
	logger := common.LoggerFromContext(ctx)

	for _, order := range report.SpawnOrders {
		logger.Log(common.LevelInfo, "Spawning worker", map[string]interface{}{
			"tick":   report.Tick,
			"worker": order.WorkerName,
			"spawn":  order.SpawnID,
			"body":   order.Body,
			"energy": order.Energy,
		})
	}

	for _, room := range report.Mining {
		for _, failure := range room.Failures {
			logger.Log(common.LevelWarning, describeFailure(failure.Err), map[string]interface{}{
				"tick":   report.Tick,
				"room":   failure.RoomName,
				"source": failure.SourceID,
				"error":  failure.Err.Error(),
			})
		}
	}

	for _, name := range report.Tasks.Orphaned {
		logger.Log(common.LevelInfo, "Dropping task of vanished worker", map[string]interface{}{
			"tick":   report.Tick,
			"worker": name,
		})
	}
	for name, code := range report.Tasks.Failed {
		logger.Log(common.LevelDebug, "Task step failed", map[string]interface{}{
			"tick":   report.Tick,
			"worker": name,
			"code":   code.String(),
		})
	}
}

func describeFailure(err error) string {
	var pipelineErr *mining.PipelineError
	var unresolvedErr *shared.UnresolvedEntityError
	switch {
	case errors.As(err, &pipelineErr):
		return "Pipeline step failed"
	case errors.As(err, &unresolvedErr):
		return "Entity no longer visible"
	}
	if kind, ok := hive.AcquireErrorKindOf(err); ok {
		return "Worker unavailable: " + string(kind)
	}
	return "Source processing failed"
}
