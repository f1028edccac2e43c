package steps

import (
	"context"
	"fmt"

	"github.com/andrescamacho/hive-go/internal/adapters/sim"
	"github.com/andrescamacho/hive-go/internal/application/colony"
	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/test/helpers"
	"github.com/cucumber/godog"
)

// simulationContext runs whole ticks through the mediator against the
// in-memory host
type simulationContext struct {
	host      *sim.Host
	store     *helpers.MemoryStore
	mediator  common.Mediator
	responses []*colony.RunTickResponse
}

func (sc *simulationContext) reset() {
	sc.host = nil
	sc.store = helpers.NewMemoryStore()
	sc.mediator = nil
	sc.responses = nil
}

// Given steps

func (sc *simulationContext) theBuiltInSimulationScenario() error {
	scenario, err := sim.DefaultScenario()
	if err != nil {
		return err
	}
	sc.host, err = sim.NewHost(scenario)
	if err != nil {
		return err
	}

	sc.mediator = common.NewMediator()
	hives := colony.NewHiveRepository(sc.store, "")
	return colony.RegisterHandlers(sc.mediator, sc.host, hives, nil)
}

func (sc *simulationContext) theStoredMemoryIs(document string) error {
	return sc.store.Save(context.Background(), []byte(document))
}

// When steps

func (sc *simulationContext) theColonyRunsForTicks(ticks int) error {
	ctx := context.Background()
	for i := 0; i < ticks; i++ {
		response, err := sc.mediator.Send(ctx, &colony.RunTickCommand{})
		if err != nil {
			return fmt.Errorf("tick %d failed: %w", sc.host.Time(), err)
		}
		sc.responses = append(sc.responses, response.(*colony.RunTickResponse))
	}
	return nil
}

// Then steps

func (sc *simulationContext) workerShouldStandNextToSource(name, sourceID string) error {
	snapshot := sc.host.Snapshot()
	worker, ok := snapshot.Worker(name)
	if !ok {
		return fmt.Errorf("worker %s does not exist, alive: %v", name, sc.host.WorkerNames())
	}
	source, ok := snapshot.Source(sourceID)
	if !ok {
		return fmt.Errorf("source %s does not exist", sourceID)
	}
	if !worker.Pos().IsNearTo(source.Pos()) {
		return fmt.Errorf("worker %s stands at %s, not next to %s at %s", name, worker.Pos(), sourceID, source.Pos())
	}
	return nil
}

func (sc *simulationContext) workerShouldBeAlive(name string) error {
	if _, ok := sc.host.Snapshot().Worker(name); !ok {
		return fmt.Errorf("worker %s does not exist, alive: %v", name, sc.host.WorkerNames())
	}
	return nil
}

func (sc *simulationContext) theFirstTickShouldHaveFoundedTheHive() error {
	if len(sc.responses) == 0 {
		return fmt.Errorf("no tick has run")
	}
	if !sc.responses[0].Fresh {
		return fmt.Errorf("expected the first tick to found the hive")
	}
	for _, response := range sc.responses[1:] {
		if response.Fresh {
			return fmt.Errorf("tick %d founded the hive again", response.Tick)
		}
	}
	return nil
}

func (sc *simulationContext) theStoredMemoryShouldHaveVersion(version string) error {
	memory, err := colony.DecodeMemory(sc.store.Blob())
	if err != nil {
		return err
	}
	if memory.Version != version {
		return fmt.Errorf("expected memory version %s but got %s", version, memory.Version)
	}
	return nil
}

func (sc *simulationContext) theHostShouldBeAtTick(tick int) error {
	if int(sc.host.Time()) != tick {
		return fmt.Errorf("expected host at tick %d but got %d", tick, sc.host.Time())
	}
	return nil
}

func InitializeSimulationScenario(ctx *godog.ScenarioContext) {
	sc := &simulationContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the built-in simulation scenario$`, sc.theBuiltInSimulationScenario)
	ctx.Step(`^the stored memory is '([^']*)'$`, sc.theStoredMemoryIs)

	// When steps
	ctx.Step(`^the colony runs for (\d+) ticks?$`, sc.theColonyRunsForTicks)

	// Then steps
	ctx.Step(`^worker "([^"]*)" should stand next to source "([^"]*)"$`, sc.workerShouldStandNextToSource)
	ctx.Step(`^worker "([^"]*)" should be alive$`, sc.workerShouldBeAlive)
	ctx.Step(`^the first tick should have founded the hive$`, sc.theFirstTickShouldHaveFoundedTheHive)
	ctx.Step(`^the stored memory should have version "([^"]*)"$`, sc.theStoredMemoryShouldHaveVersion)
	ctx.Step(`^the host should be at tick (\d+)$`, sc.theHostShouldBeAtTick)
}
