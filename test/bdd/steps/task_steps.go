package steps

import (
	"fmt"

	"github.com/andrescamacho/hive-go/internal/domain/tasks"
	"github.com/cucumber/godog"
)

// When steps

func (hc *hiveContext) theTaskRegistryRuns() error {
	hc.lastSweep = hc.colony.Tasks().Run(hc.world)
	return nil
}

func (hc *hiveContext) theTaskRegistryRunsTimes(times int) error {
	for i := 0; i < times; i++ {
		hc.lastSweep = hc.colony.Tasks().Run(hc.world)
	}
	return nil
}

// Then steps

func (hc *hiveContext) theTaskShouldBeEvictedAs(name, reason string) error {
	evicted := hc.lastSweep.Completed
	if reason == "orphaned" {
		evicted = hc.lastSweep.Orphaned
	}
	if !contains(evicted, name) {
		return fmt.Errorf("expected %s to be evicted as %s, sweep was %+v", name, reason, hc.lastSweep)
	}
	if hc.colony.Tasks().Has(name) {
		return fmt.Errorf("task of %s is still registered", name)
	}
	return nil
}

func (hc *hiveContext) theTaskShouldStillBeRegistered(name string) error {
	if !hc.colony.Tasks().Has(name) {
		return fmt.Errorf("expected task of %s to be registered", name)
	}
	return nil
}

func (hc *hiveContext) theTaskShouldHaveFailedWith(name, codeName string) error {
	code, ok := hc.lastSweep.Failed[name]
	if !ok {
		return fmt.Errorf("expected task of %s to fail, sweep was %+v", name, hc.lastSweep)
	}
	if code.String() != codeName {
		return fmt.Errorf("expected failure %s but got %s", codeName, code)
	}
	return nil
}

func (hc *hiveContext) noTaskFailureShouldBeReportedFor(name string) error {
	if code, ok := hc.lastSweep.Failed[name]; ok {
		return fmt.Errorf("expected no failure for %s but got %s", name, code)
	}
	return nil
}

func (hc *hiveContext) theTaskShouldHaveStepsRemaining(name string, remaining int) error {
	task, ok := hc.colony.Tasks().Get(name)
	if !ok {
		return fmt.Errorf("task of %s is not registered", name)
	}
	multiStep, ok := task.(*tasks.MultiStep)
	if !ok {
		return fmt.Errorf("task of %s is %s, not %s", name, task.Kind(), tasks.KindMultiStep)
	}
	if multiStep.Remaining() != remaining {
		return fmt.Errorf("expected %d steps remaining but got %d", remaining, multiStep.Remaining())
	}
	return nil
}

func (hc *hiveContext) tasksShouldHaveBeenStepped(stepped int) error {
	if hc.lastSweep.Stepped != stepped {
		return fmt.Errorf("expected %d tasks stepped but got %d", stepped, hc.lastSweep.Stepped)
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func registerTaskSteps(ctx *godog.ScenarioContext, hc *hiveContext) {
	// When steps
	ctx.Step(`^the task registry runs$`, hc.theTaskRegistryRuns)
	ctx.Step(`^the task registry runs (\d+) times$`, hc.theTaskRegistryRunsTimes)

	// Then steps
	ctx.Step(`^the task of "([^"]*)" should be evicted as (completed|orphaned)$`, hc.theTaskShouldBeEvictedAs)
	ctx.Step(`^the task of "([^"]*)" should still be registered$`, hc.theTaskShouldStillBeRegistered)
	ctx.Step(`^the task of "([^"]*)" should have failed with "([^"]*)"$`, hc.theTaskShouldHaveFailedWith)
	ctx.Step(`^no task failure should be reported for "([^"]*)"$`, hc.noTaskFailureShouldBeReportedFor)
	ctx.Step(`^the task of "([^"]*)" should have (\d+) steps? remaining$`, hc.theTaskShouldHaveStepsRemaining)
	ctx.Step(`^(\d+) tasks should have been stepped$`, hc.tasksShouldHaveBeenStepped)
}
