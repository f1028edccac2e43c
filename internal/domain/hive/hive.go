package hive

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/hive-go/internal/domain/mining"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/spawning"
	"github.com/andrescamacho/hive-go/internal/domain/tasks"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// Hive is the colony aggregate root: the task registry plus the mine rooms
// and spawn rooms it governs, keyed by room name.
type Hive struct {
	ids        *shared.IDGenerator
	tasks      *tasks.Registry
	mineRooms  map[string]*mining.MineRoom
	spawnRooms map[string]*spawning.SpawnRoom

	spawnOrders []SpawnOrder
}

// SpawnOrder records a production order accepted by the host
type SpawnOrder struct {
	Sequence   int
	WorkerName string
	SpawnID    string
	Body       []shared.Part
	Energy     int
}

// Report summarises one tick of the colony
type Report struct {
	Tick        shared.Tick
	Mining      []mining.RunReport
	Tasks       tasks.SweepReport
	SpawnOrders []SpawnOrder
}

// New founds a colony in roomName: one spawn room, and one mine room that
// delivers to the first spawn found there.
func New(snapshot world.Snapshot, roomName string) (*Hive, error) {
	room, ok := snapshot.Room(roomName)
	if !ok {
		return nil, shared.NewUnresolvedEntityError("room", roomName)
	}

	spawnRoom := spawning.NewSpawnRoom(room)
	spawns := spawnRoom.Spawns(snapshot)
	if len(spawns) == 0 {
		return nil, shared.NewDomainError(fmt.Sprintf("room %s has no spawn to found a hive on", roomName))
	}

	h := Empty()
	h.spawnRooms[roomName] = spawnRoom
	h.mineRooms[roomName] = mining.NewMineRoom(room, snapshot, roomName, mining.LoadedSpawn(spawns[0]))
	return h, nil
}

// Empty creates a hive with no rooms
func Empty() *Hive {
	return &Hive{
		ids:        shared.NewIDGenerator(),
		tasks:      tasks.NewRegistry(),
		mineRooms:  make(map[string]*mining.MineRoom),
		spawnRooms: make(map[string]*spawning.SpawnRoom),
	}
}

func (h *Hive) Tasks() *tasks.Registry { return h.tasks }

func (h *Hive) MineRoom(roomName string) (*mining.MineRoom, bool) {
	m, ok := h.mineRooms[roomName]
	return m, ok
}

func (h *Hive) SpawnRoom(roomName string) (*spawning.SpawnRoom, bool) {
	s, ok := h.spawnRooms[roomName]
	return s, ok
}

// MineRoomNames returns the mine room keys in sorted order
func (h *Hive) MineRoomNames() []string {
	return sortedKeys(h.mineRooms)
}

// SpawnRoomNames returns the spawn room keys in sorted order
func (h *Hive) SpawnRoomNames() []string {
	return sortedKeys(h.spawnRooms)
}

// AddSpawnRoom adds room's facilities as a spawn pool
func (h *Hive) AddSpawnRoom(room world.Room) *spawning.SpawnRoom {
	spawnRoom := spawning.NewSpawnRoom(room)
	h.spawnRooms[room.Name()] = spawnRoom
	return spawnRoom
}

// AddMineRoom starts mining room, producing workers in spawnRoomName
func (h *Hive) AddMineRoom(room world.Room, snapshot world.Snapshot, spawnRoomName string, dropOff *mining.LoadedDropOff) (*mining.MineRoom, error) {
	if _, ok := h.spawnRooms[spawnRoomName]; !ok {
		return nil, shared.NewValidationError("spawn_room", fmt.Sprintf("%s is not a spawn room of this hive", spawnRoomName))
	}
	mineRoom := mining.NewMineRoom(room, snapshot, spawnRoomName, dropOff)
	h.mineRooms[room.Name()] = mineRoom
	return mineRoom, nil
}

// AcquireWorker returns the live worker called name, or orders it from
// spawnRoomName and reports why it is not usable yet. Every failure is
// transient; the caller asks again next tick.
func (h *Hive) AcquireWorker(snapshot world.Snapshot, name, spawnRoomName string, urgent bool, policy spawning.BodyPolicy) (world.Worker, error) {
	if h.tasks.Has(name) {
		return nil, newAcquireError(WorkerBusy, name)
	}

	if worker, ok := snapshot.Worker(name); ok {
		if worker.Spawning() {
			return nil, newAcquireError(SpawningInProgress, name)
		}
		return worker, nil
	}

	spawnRoom, ok := h.spawnRooms[spawnRoomName]
	if !ok {
		return nil, newAcquireError(NoSpawnAvailable, name)
	}
	spawn, ok := spawnRoom.AvailableSpawn(snapshot)
	if !ok {
		return nil, newAcquireError(NoSpawnAvailable, name)
	}

	energy := spawnRoom.MaxEnergy(snapshot)
	if urgent {
		energy = spawnRoom.AvailableEnergy(snapshot)
	}
	body := policy(energy)

	if code := spawn.SpawnWorker(body, name); !code.IsOK() {
		return nil, &AcquireError{Kind: SpawningFailed, WorkerName: name, Code: code}
	}

	h.spawnOrders = append(h.spawnOrders, SpawnOrder{
		Sequence:   h.ids.Generate(),
		WorkerName: name,
		SpawnID:    spawn.ID(),
		Body:       body,
		Energy:     energy,
	})
	return nil, newAcquireError(SpawningInProgress, name)
}

// Run drives the colony for one tick: every mine room first, then the task
// sweep. A worker with a task entry is busy for the mine rooms, so no worker
// receives orders from both in the same tick.
func (h *Hive) Run(snapshot world.Snapshot) Report {
	report := Report{Tick: snapshot.Time()}

	for _, roomName := range h.MineRoomNames() {
		report.Mining = append(report.Mining, h.mineRooms[roomName].Run(snapshot, h))
	}

	report.Tasks = h.tasks.Run(snapshot)

	report.SpawnOrders = h.spawnOrders
	h.spawnOrders = nil
	return report
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
