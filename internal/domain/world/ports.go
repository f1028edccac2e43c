package world

import (
	"context"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
)

// Snapshot is the read side of the host for one tick. Handles obtained from a
// snapshot are only valid until the tick commits; persist ids and names instead.
type Snapshot interface {
	// Time returns the current tick number
	Time() shared.Tick

	// Worker resolves a live worker by name
	Worker(name string) (Worker, bool)

	// Facility resolves a production facility (spawn) by id
	Facility(id string) (Facility, bool)

	// Source resolves a resource node by id
	Source(id string) (Source, bool)

	// Room resolves a room by name
	Room(name string) (Room, bool)

	// Rooms lists the names of every room the colony can see
	Rooms() []string

	// DroppedEnergyAt returns the first pile of dropped energy on the tile
	DroppedEnergyAt(pos shared.Position) (Resource, bool)
}

// Host is the boundary to the simulation that owns the world
type Host interface {
	// Snapshot returns the world state for the current tick
	Snapshot() Snapshot

	// Commit ends the tick: issued orders take effect and the tick counter advances
	Commit(ctx context.Context) error
}

// Room is a colony location
type Room interface {
	Name() string

	// EnergyAvailable is the energy currently stored in the room's facilities
	EnergyAvailable() int

	// EnergyCapacityAvailable is the total energy the room's facilities can hold
	EnergyCapacityAvailable() int

	// FacilityIDs lists the production facilities owned in the room
	FacilityIDs() []string

	// ExtensionIDs lists the energy extensions owned in the room
	ExtensionIDs() []string

	// SourceIDs lists the resource nodes in the room
	SourceIDs() []string
}

// Worker is a live mobile agent. Every order returns the host's outcome code.
type Worker interface {
	Name() string
	Pos() shared.Position

	// Spawning reports whether the worker is still being produced
	Spawning() bool

	// FreeCapacity is how much more energy the worker can carry
	FreeCapacity() int

	// CarriedEnergy is how much energy the worker holds
	CarriedEnergy() int

	Move(direction shared.Direction) shared.ReturnCode
	MoveTo(target shared.Position) shared.ReturnCode
	Harvest(source Source) shared.ReturnCode

	// Pull offers a tow link to target; target must accept with MovePulledBy
	Pull(target Worker) shared.ReturnCode
	MovePulledBy(puller Worker) shared.ReturnCode

	// TransferToFacility and TransferToWorker hand over energy; amount <= 0 means everything carried
	TransferToFacility(target Facility, amount int) shared.ReturnCode
	TransferToWorker(target Worker, amount int) shared.ReturnCode

	Pickup(resource Resource) shared.ReturnCode
}

// Facility is a production facility able to create new workers
type Facility interface {
	ID() string
	Pos() shared.Position
	RoomName() string

	// Spawning reports whether the facility is mid-production
	Spawning() bool

	SpawnWorker(body []shared.Part, name string) shared.ReturnCode
}

// Source is a stationary resource node
type Source interface {
	ID() string
	Pos() shared.Position
}

// Resource is a pile of dropped energy
type Resource interface {
	ID() string
	Pos() shared.Position
	Amount() int
}
