package sim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hive-go/internal/adapters/sim"
	"github.com/andrescamacho/hive-go/internal/domain/hive"
	"github.com/andrescamacho/hive-go/internal/domain/mining"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

const testScenario = `
name: test
tick: 10
worker_lifetime: 100
rooms:
  - name: W1N1
    energy: 200
    capacity: 300
    spawns:
      - {id: spawn-1, x: 25, y: 25}
    sources:
      - {id: src-1, x: 10, y: 10, energy: 100}
workers:
  - {name: hauler, room: W1N1, x: 12, y: 11, body: [carry, carry, move, move]}
  - {name: harvester, room: W1N1, x: 11, y: 11, body: [work, work, work]}
  - {name: courier, room: W1N1, x: 24, y: 24, body: [carry, carry, move], carried: 100}
dropped:
  - {room: W1N1, x: 12, y: 12, amount: 30}
`

func newTestHost(t *testing.T) *sim.Host {
	t.Helper()
	scenario, err := sim.ParseScenario([]byte(testScenario))
	require.NoError(t, err)
	host, err := sim.NewHost(scenario)
	require.NoError(t, err)
	return host
}

func commit(t *testing.T, host *sim.Host, ticks int) {
	t.Helper()
	for i := 0; i < ticks; i++ {
		require.NoError(t, host.Commit(context.Background()))
	}
}

func worker(t *testing.T, snapshot world.Snapshot, name string) world.Worker {
	t.Helper()
	w, ok := snapshot.Worker(name)
	require.True(t, ok, "worker %s", name)
	return w
}

func roomEnergy(t *testing.T, snapshot world.Snapshot) int {
	t.Helper()
	room, ok := snapshot.Room("W1N1")
	require.True(t, ok)
	return room.EnergyAvailable()
}

func TestHost_SpawnReservesEnergyAndProducesWorkerNextTick(t *testing.T) {
	host := newTestHost(t)
	snapshot := host.Snapshot()
	spawn, ok := snapshot.Facility("spawn-1")
	require.True(t, ok)

	code := spawn.SpawnWorker([]shared.Part{shared.PartWork, shared.PartMove}, "fresh")

	assert.Equal(t, shared.OK, code)
	assert.Equal(t, 50, roomEnergy(t, snapshot))
	assert.True(t, spawn.Spawning())
	assert.Equal(t, shared.Busy, spawn.SpawnWorker([]shared.Part{shared.PartMove}, "second"))
	_, exists := snapshot.Worker("fresh")
	assert.False(t, exists)

	commit(t, host, 1)
	snapshot = host.Snapshot()
	fresh := worker(t, snapshot, "fresh")
	assert.True(t, fresh.Spawning())
	assert.Equal(t, spawn.Pos(), fresh.Pos())
	assert.Equal(t, 51, roomEnergy(t, snapshot))

	commit(t, host, 2*sim.SpawnTimePerPart)
	snapshot = host.Snapshot()
	assert.False(t, worker(t, snapshot, "fresh").Spawning())
	spawn, _ = snapshot.Facility("spawn-1")
	assert.False(t, spawn.Spawning())
}

func TestHost_SpawnRejections(t *testing.T) {
	host := newTestHost(t)
	spawn, _ := host.Snapshot().Facility("spawn-1")

	assert.Equal(t, shared.NameExists, spawn.SpawnWorker([]shared.Part{shared.PartMove}, "hauler"))
	assert.Equal(t, shared.NotEnough, spawn.SpawnWorker([]shared.Part{shared.PartWork, shared.PartWork, shared.PartWork}, "big"))
	assert.Equal(t, shared.InvalidArgs, spawn.SpawnWorker(nil, "empty"))
	assert.Equal(t, 200, roomEnergy(t, host.Snapshot()))
}

func TestHost_MoveNeedsMovePart(t *testing.T) {
	host := newTestHost(t)
	snapshot := host.Snapshot()

	assert.Equal(t, shared.NoBodypart, worker(t, snapshot, "harvester").Move(shared.DirectionRight))
	assert.Equal(t, shared.InvalidArgs, worker(t, snapshot, "hauler").Move(shared.Direction(0)))
	assert.Equal(t, shared.NoPath, worker(t, snapshot, "hauler").MoveTo(shared.Position{Room: "W2N1", X: 1, Y: 1}))
	require.Equal(t, shared.OK, worker(t, snapshot, "hauler").Move(shared.DirectionBottom))
	commit(t, host, 1)

	assert.Equal(t, shared.Position{Room: "W1N1", X: 12, Y: 12}, worker(t, host.Snapshot(), "hauler").Pos())
	assert.Equal(t, shared.Position{Room: "W1N1", X: 11, Y: 11}, worker(t, host.Snapshot(), "harvester").Pos())
}

func TestHost_TowedWorkerTakesPullersPreviousTile(t *testing.T) {
	host := newTestHost(t)
	snapshot := host.Snapshot()
	hauler, harvester := worker(t, snapshot, "hauler"), worker(t, snapshot, "harvester")

	require.Equal(t, shared.OK, hauler.Pull(harvester))
	require.Equal(t, shared.OK, harvester.MovePulledBy(hauler))
	require.Equal(t, shared.OK, hauler.MoveTo(shared.Position{Room: "W1N1", X: 20, Y: 20}))
	commit(t, host, 1)

	snapshot = host.Snapshot()
	assert.Equal(t, shared.Position{Room: "W1N1", X: 13, Y: 12}, worker(t, snapshot, "hauler").Pos())
	assert.Equal(t, shared.Position{Room: "W1N1", X: 12, Y: 11}, worker(t, snapshot, "harvester").Pos())
}

func TestHost_FollowWithoutPullDoesNotMove(t *testing.T) {
	host := newTestHost(t)
	snapshot := host.Snapshot()
	hauler, harvester := worker(t, snapshot, "hauler"), worker(t, snapshot, "harvester")

	require.Equal(t, shared.OK, harvester.MovePulledBy(hauler))
	require.Equal(t, shared.OK, hauler.Move(shared.DirectionRight))
	commit(t, host, 1)

	assert.Equal(t, shared.Position{Room: "W1N1", X: 11, Y: 11}, worker(t, host.Snapshot(), "harvester").Pos())
}

func TestHost_MutualFollowSwapsTiles(t *testing.T) {
	host := newTestHost(t)
	snapshot := host.Snapshot()
	hauler, harvester := worker(t, snapshot, "hauler"), worker(t, snapshot, "harvester")

	require.Equal(t, shared.OK, hauler.Pull(harvester))
	require.Equal(t, shared.OK, harvester.MovePulledBy(hauler))
	require.Equal(t, shared.OK, hauler.MovePulledBy(harvester))
	commit(t, host, 1)

	snapshot = host.Snapshot()
	assert.Equal(t, shared.Position{Room: "W1N1", X: 11, Y: 11}, worker(t, snapshot, "hauler").Pos())
	assert.Equal(t, shared.Position{Room: "W1N1", X: 12, Y: 11}, worker(t, snapshot, "harvester").Pos())
}

func TestHost_PullOutOfRange(t *testing.T) {
	host := newTestHost(t)
	snapshot := host.Snapshot()

	assert.Equal(t, shared.NotInRange, worker(t, snapshot, "courier").Pull(worker(t, snapshot, "harvester")))
	assert.Equal(t, shared.InvalidTarget, worker(t, snapshot, "hauler").Pull(worker(t, snapshot, "hauler")))
}

func TestHost_HarvestDropsEnergyForPickup(t *testing.T) {
	host := newTestHost(t)
	snapshot := host.Snapshot()
	source, ok := snapshot.Source("src-1")
	require.True(t, ok)

	assert.Equal(t, shared.NoBodypart, worker(t, snapshot, "hauler").Harvest(source))
	require.Equal(t, shared.OK, worker(t, snapshot, "harvester").Harvest(source))
	commit(t, host, 1)

	snapshot = host.Snapshot()
	pile, ok := snapshot.DroppedEnergyAt(shared.Position{Room: "W1N1", X: 11, Y: 11})
	require.True(t, ok)
	assert.Equal(t, 3*sim.HarvestPerWorkPart, pile.Amount())

	hauler := worker(t, snapshot, "hauler")
	require.Equal(t, shared.OK, hauler.Pickup(pile))
	commit(t, host, 1)

	snapshot = host.Snapshot()
	hauler = worker(t, snapshot, "hauler")
	assert.Equal(t, 6, hauler.CarriedEnergy())
	assert.Equal(t, 94, hauler.FreeCapacity())
	_, ok = snapshot.DroppedEnergyAt(shared.Position{Room: "W1N1", X: 11, Y: 11})
	assert.False(t, ok)
}

func TestHost_HarvestStopsWhenSourceIsDrained(t *testing.T) {
	host := newTestHost(t)

	for i := 0; i < 17; i++ {
		snapshot := host.Snapshot()
		source, _ := snapshot.Source("src-1")
		require.Equal(t, shared.OK, worker(t, snapshot, "harvester").Harvest(source), "tick %d", i)
		commit(t, host, 1)
	}

	snapshot := host.Snapshot()
	source, _ := snapshot.Source("src-1")
	assert.Equal(t, shared.NotEnough, worker(t, snapshot, "harvester").Harvest(source))
	pile, ok := snapshot.DroppedEnergyAt(shared.Position{Room: "W1N1", X: 11, Y: 11})
	require.True(t, ok)
	assert.Equal(t, 100, pile.Amount())
}

func TestHost_PickupPartialPileAndFullHauler(t *testing.T) {
	host := newTestHost(t)
	snapshot := host.Snapshot()
	pile, ok := snapshot.DroppedEnergyAt(shared.Position{Room: "W1N1", X: 12, Y: 12})
	require.True(t, ok)

	assert.Equal(t, shared.NoBodypart, worker(t, snapshot, "harvester").Pickup(pile))
	require.Equal(t, shared.OK, worker(t, snapshot, "hauler").Pickup(pile))
	commit(t, host, 1)

	assert.Equal(t, 30, worker(t, host.Snapshot(), "hauler").CarriedEnergy())
}

func TestHost_TransferToFacilityFillsRoom(t *testing.T) {
	host := newTestHost(t)
	snapshot := host.Snapshot()
	spawn, _ := snapshot.Facility("spawn-1")
	courier := worker(t, snapshot, "courier")

	assert.Equal(t, shared.NotInRange, worker(t, snapshot, "hauler").TransferToFacility(spawn, 0))
	require.Equal(t, shared.OK, courier.TransferToFacility(spawn, 0))
	commit(t, host, 1)

	snapshot = host.Snapshot()
	assert.Equal(t, 300, roomEnergy(t, snapshot))
	courier = worker(t, snapshot, "courier")
	assert.Zero(t, courier.CarriedEnergy())
	spawn, _ = snapshot.Facility("spawn-1")
	assert.Equal(t, shared.NotEnough, courier.TransferToFacility(spawn, 0))
}

const fullRoomScenario = `
name: full
rooms:
  - name: W1N1
    spawns:
      - {id: spawn-1, x: 25, y: 25}
workers:
  - {name: courier, room: W1N1, x: 24, y: 24, body: [carry, carry, move], carried: 100}
  - {name: mate, room: W1N1, x: 24, y: 25, body: [carry, move]}
`

func TestHost_TransferToFullRoomAndBetweenWorkers(t *testing.T) {
	scenario, err := sim.ParseScenario([]byte(fullRoomScenario))
	require.NoError(t, err)
	host, err := sim.NewHost(scenario)
	require.NoError(t, err)
	snapshot := host.Snapshot()
	spawn, _ := snapshot.Facility("spawn-1")
	courier, mate := worker(t, snapshot, "courier"), worker(t, snapshot, "mate")

	assert.Equal(t, sim.DefaultSpawnEnergy, roomEnergy(t, snapshot))
	assert.Equal(t, shared.Full, courier.TransferToFacility(spawn, 0))
	assert.Equal(t, shared.NotEnough, courier.TransferToWorker(mate, 150))
	require.Equal(t, shared.OK, courier.TransferToWorker(mate, 0))
	commit(t, host, 1)

	snapshot = host.Snapshot()
	assert.Equal(t, 50, worker(t, snapshot, "courier").CarriedEnergy())
	assert.Equal(t, 50, worker(t, snapshot, "mate").CarriedEnergy())
	assert.Equal(t, shared.Full, worker(t, snapshot, "courier").TransferToWorker(worker(t, snapshot, "mate"), 0))
}

func TestHost_RoomRegeneratesEnergy(t *testing.T) {
	host := newTestHost(t)

	commit(t, host, 3)

	assert.Equal(t, 203, roomEnergy(t, host.Snapshot()))
	assert.Equal(t, shared.Tick(13), host.Snapshot().Time())
}

func TestHost_WorkersExpireAndDropCarriedEnergy(t *testing.T) {
	host := newTestHost(t)

	commit(t, host, 99)
	_, alive := host.Snapshot().Worker("courier")
	require.True(t, alive)

	commit(t, host, 1)
	snapshot := host.Snapshot()
	_, alive = snapshot.Worker("courier")
	assert.False(t, alive)
	assert.Empty(t, host.WorkerNames())
	pile, ok := snapshot.DroppedEnergyAt(shared.Position{Room: "W1N1", X: 24, Y: 24})
	require.True(t, ok)
	assert.Equal(t, 100, pile.Amount())
}

func TestHost_CommitHonoursCancelledContext(t *testing.T) {
	host := newTestHost(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, host.Commit(ctx), context.Canceled)
	assert.Equal(t, shared.Tick(10), host.Snapshot().Time())
}

func TestHost_DrivesMiningPipeline(t *testing.T) {
	scenario, err := sim.DefaultScenario()
	require.NoError(t, err)
	host, err := sim.NewHost(scenario)
	require.NoError(t, err)

	h, err := hive.New(host.Snapshot(), "W1N1")
	require.NoError(t, err)

	for i := 0; i < 600; i++ {
		h.Run(host.Snapshot())
		require.NoError(t, host.Commit(context.Background()))
	}

	snapshot := host.Snapshot()
	source, ok := snapshot.Source("source-near")
	require.True(t, ok)
	harvester := worker(t, snapshot, mining.HarvesterName("source-near"))
	assert.True(t, harvester.Pos().IsNearTo(source.Pos()))
	worker(t, snapshot, mining.HaulerName("source-near"))
}
