package steps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andrescamacho/hive-go/internal/domain/hive"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/tasks"
	"github.com/andrescamacho/hive-go/internal/domain/world"
	"github.com/andrescamacho/hive-go/test/helpers"
	"github.com/cucumber/godog"
)

// hiveContext drives the domain against a scripted MockWorld. Task and
// allocation scenarios share it so a task registered in one is visible to
// the allocator in the other.
type hiveContext struct {
	world  *helpers.MockWorld
	colony *hive.Hive

	lastSweep tasks.SweepReport

	acquired   world.Worker
	acquireErr error
}

func (hc *hiveContext) reset() {
	hc.world = helpers.NewMockWorld()
	hc.colony = hive.Empty()
	hc.lastSweep = tasks.SweepReport{}
	hc.acquired = nil
	hc.acquireErr = nil
}

// parseReturnCode maps a host code name such as "ERR_TIRED" back to its value
func parseReturnCode(name string) (shared.ReturnCode, error) {
	for code := shared.OK; code >= shared.NoBodypart; code-- {
		if code.String() == name {
			return code, nil
		}
	}
	return 0, fmt.Errorf("unknown return code %q", name)
}

// Given steps

func (hc *hiveContext) aWorldWithRoomHoldingEnergy(room string, energy, capacity int) error {
	hc.world.AddRoom(room, energy, capacity)
	return nil
}

func (hc *hiveContext) aWorkerAtIn(name string, x, y int, room string) error {
	hc.world.AddWorker(name, helpers.Pos(room, x, y))
	return nil
}

func (hc *hiveContext) aSourceAtIn(id string, x, y int, room string) error {
	hc.world.AddSource(id, helpers.Pos(room, x, y))
	return nil
}

func (hc *hiveContext) aSpawnAtIn(id string, x, y int, room string) error {
	hc.world.AddFacility(id, helpers.Pos(room, x, y))
	return nil
}

func (hc *hiveContext) workerHasTheTask(name, document string) error {
	var data tasks.TaskData
	if err := json.Unmarshal([]byte(document), &data); err != nil {
		return fmt.Errorf("invalid task document: %w", err)
	}
	task, err := tasks.FromData(&data)
	if err != nil {
		return err
	}
	hc.colony.Tasks().Add(name, task)
	return nil
}

func (hc *hiveContext) workerAnswersWith(name, order, codeName string) error {
	worker, ok := hc.world.Workers[name]
	if !ok {
		return fmt.Errorf("worker %s not found in world", name)
	}
	code, err := parseReturnCode(codeName)
	if err != nil {
		return err
	}
	worker.Codes[order] = code
	return nil
}

func (hc *hiveContext) workerIsSpawning(name string) error {
	worker, ok := hc.world.Workers[name]
	if !ok {
		return fmt.Errorf("worker %s not found in world", name)
	}
	worker.IsSpawning = true
	return nil
}

// Then steps

func (hc *hiveContext) workerShouldHaveReceivedOrders(name, expected string) error {
	worker, ok := hc.world.Workers[name]
	if !ok {
		return fmt.Errorf("worker %s not found in world", name)
	}
	actual := joinCalls(worker.Calls)
	if actual != expected {
		return fmt.Errorf("expected orders %q but got %q", expected, actual)
	}
	return nil
}

func (hc *hiveContext) workerShouldHaveReceivedNoOrders(name string) error {
	worker, ok := hc.world.Workers[name]
	if !ok {
		return fmt.Errorf("worker %s not found in world", name)
	}
	if len(worker.Calls) > 0 {
		return fmt.Errorf("expected no orders but got %q", joinCalls(worker.Calls))
	}
	return nil
}

func joinCalls(calls []string) string {
	joined := ""
	for i, call := range calls {
		if i > 0 {
			joined += ", "
		}
		joined += call
	}
	return joined
}

func InitializeHiveScenario(ctx *godog.ScenarioContext) {
	hc := &hiveContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		hc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a world with room "([^"]*)" holding (\d+) of (\d+) energy$`, hc.aWorldWithRoomHoldingEnergy)
	ctx.Step(`^a worker "([^"]*)" at (\d+),(\d+) in "([^"]*)"$`, hc.aWorkerAtIn)
	ctx.Step(`^a source "([^"]*)" at (\d+),(\d+) in "([^"]*)"$`, hc.aSourceAtIn)
	ctx.Step(`^a spawn "([^"]*)" at (\d+),(\d+) in "([^"]*)"$`, hc.aSpawnAtIn)
	ctx.Step(`^worker "([^"]*)" has the task '([^']*)'$`, hc.workerHasTheTask)
	ctx.Step(`^worker "([^"]*)" answers "([^"]*)" with "([^"]*)"$`, hc.workerAnswersWith)
	ctx.Step(`^worker "([^"]*)" is spawning$`, hc.workerIsSpawning)

	// Then steps
	ctx.Step(`^worker "([^"]*)" should have received orders "([^"]*)"$`, hc.workerShouldHaveReceivedOrders)
	ctx.Step(`^worker "([^"]*)" should have received no orders$`, hc.workerShouldHaveReceivedNoOrders)

	registerTaskSteps(ctx, hc)
	registerAllocationSteps(ctx, hc)
}
