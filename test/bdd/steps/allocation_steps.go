package steps

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/hive-go/internal/domain/hive"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/spawning"
	"github.com/cucumber/godog"
)

// Given steps

func (hc *hiveContext) aHiveWithSpawnRoom(roomName string) error {
	room, ok := hc.world.Room(roomName)
	if !ok {
		return fmt.Errorf("room %s not found in world", roomName)
	}
	hc.colony.AddSpawnRoom(room)
	return nil
}

func (hc *hiveContext) spawnIsBusy(id string) error {
	facility, ok := hc.world.Facilities[id]
	if !ok {
		return fmt.Errorf("spawn %s not found in world", id)
	}
	facility.Busy = true
	return nil
}

func (hc *hiveContext) spawnAnswersSpawnOrdersWith(id, codeName string) error {
	facility, ok := hc.world.Facilities[id]
	if !ok {
		return fmt.Errorf("spawn %s not found in world", id)
	}
	code, err := parseReturnCode(codeName)
	if err != nil {
		return err
	}
	facility.SpawnCode = code
	return nil
}

// When steps

func (hc *hiveContext) iAcquireWorkerFrom(name, roomName string) error {
	hc.acquired, hc.acquireErr = hc.colony.AcquireWorker(hc.world, name, roomName, false, spawning.HarvesterBody)
	return nil
}

func (hc *hiveContext) iUrgentlyAcquireWorkerFrom(name, roomName string) error {
	hc.acquired, hc.acquireErr = hc.colony.AcquireWorker(hc.world, name, roomName, true, spawning.HarvesterBody)
	return nil
}

// Then steps

func (hc *hiveContext) iShouldReceiveWorker(name string) error {
	if hc.acquireErr != nil {
		return fmt.Errorf("expected worker %s but got error: %w", name, hc.acquireErr)
	}
	if hc.acquired == nil || hc.acquired.Name() != name {
		return fmt.Errorf("expected worker %s but got %v", name, hc.acquired)
	}
	return nil
}

func (hc *hiveContext) theAcquisitionShouldFailWith(kind string) error {
	if hc.acquireErr == nil {
		return fmt.Errorf("expected acquisition to fail with %s but it succeeded", kind)
	}
	actual, ok := hive.AcquireErrorKindOf(hc.acquireErr)
	if !ok {
		return fmt.Errorf("expected an acquire error but got: %w", hc.acquireErr)
	}
	if string(actual) != kind {
		return fmt.Errorf("expected acquisition to fail with %s but got %s", kind, actual)
	}
	return nil
}

func (hc *hiveContext) theAcquisitionFailureCodeShouldBe(codeName string) error {
	var acquireErr *hive.AcquireError
	if !errors.As(hc.acquireErr, &acquireErr) {
		return fmt.Errorf("expected an acquire error but got: %v", hc.acquireErr)
	}
	if acquireErr.Code.String() != codeName {
		return fmt.Errorf("expected code %s but got %s", codeName, acquireErr.Code)
	}
	return nil
}

func (hc *hiveContext) spawnShouldHaveBeenOrderedToProduceWithWorkParts(id, name string, parts int) error {
	facility, ok := hc.world.Facilities[id]
	if !ok {
		return fmt.Errorf("spawn %s not found in world", id)
	}
	if len(facility.Spawned) == 0 {
		return fmt.Errorf("spawn %s received no orders", id)
	}
	last := facility.Spawned[len(facility.Spawned)-1]
	if last.Name != name {
		return fmt.Errorf("expected spawn order for %s but got %s", name, last.Name)
	}
	if work := shared.CountParts(last.Body, shared.PartWork); work != parts || len(last.Body) != parts {
		return fmt.Errorf("expected %d WORK parts but got body %v", parts, last.Body)
	}
	return nil
}

func (hc *hiveContext) spawnShouldHaveReceivedOrders(id string, orders int) error {
	facility, ok := hc.world.Facilities[id]
	if !ok {
		return fmt.Errorf("spawn %s not found in world", id)
	}
	if len(facility.Spawned) != orders {
		return fmt.Errorf("expected %d spawn orders but got %d", orders, len(facility.Spawned))
	}
	return nil
}

func registerAllocationSteps(ctx *godog.ScenarioContext, hc *hiveContext) {
	// Given steps
	ctx.Step(`^a hive with spawn room "([^"]*)"$`, hc.aHiveWithSpawnRoom)
	ctx.Step(`^spawn "([^"]*)" is busy$`, hc.spawnIsBusy)
	ctx.Step(`^spawn "([^"]*)" answers spawn orders with "([^"]*)"$`, hc.spawnAnswersSpawnOrdersWith)

	// When steps
	ctx.Step(`^I acquire worker "([^"]*)" from "([^"]*)"$`, hc.iAcquireWorkerFrom)
	ctx.Step(`^I urgently acquire worker "([^"]*)" from "([^"]*)"$`, hc.iUrgentlyAcquireWorkerFrom)

	// Then steps
	ctx.Step(`^I should receive worker "([^"]*)"$`, hc.iShouldReceiveWorker)
	ctx.Step(`^the acquisition should fail with "([^"]*)"$`, hc.theAcquisitionShouldFailWith)
	ctx.Step(`^the acquisition failure code should be "([^"]*)"$`, hc.theAcquisitionFailureCodeShouldBe)
	ctx.Step(`^spawn "([^"]*)" should have been ordered to produce "([^"]*)" with (\d+) WORK parts$`, hc.spawnShouldHaveBeenOrderedToProduceWithWorkParts)
	ctx.Step(`^spawn "([^"]*)" should have received (\d+) orders?$`, hc.spawnShouldHaveReceivedOrders)
}
