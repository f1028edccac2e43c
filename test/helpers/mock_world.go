package helpers

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// MockWorld is a scripted, in-memory implementation of world.Snapshot for testing.
// Orders never change state; they are recorded and answered with configured codes.
type MockWorld struct {
	Tick       shared.Tick
	Workers    map[string]*MockWorker
	Facilities map[string]*MockFacility
	Sources    map[string]*MockSource
	RoomsByKey map[string]*MockRoom
	Dropped    map[shared.Position]*MockResource
}

// NewMockWorld creates an empty mock world at tick 1
func NewMockWorld() *MockWorld {
	return &MockWorld{
		Tick:       1,
		Workers:    make(map[string]*MockWorker),
		Facilities: make(map[string]*MockFacility),
		Sources:    make(map[string]*MockSource),
		RoomsByKey: make(map[string]*MockRoom),
		Dropped:    make(map[shared.Position]*MockResource),
	}
}

// Pos is a shorthand for a position in the given room
func Pos(room string, x, y int) shared.Position {
	return shared.Position{Room: room, X: x, Y: y}
}

// AddRoom registers a room with the given energy figures
func (w *MockWorld) AddRoom(name string, energy, capacity int) *MockRoom {
	room := &MockRoom{RoomName: name, Energy: energy, Capacity: capacity}
	w.RoomsByKey[name] = room
	return room
}

// AddWorker registers a live, idle worker
func (w *MockWorld) AddWorker(name string, pos shared.Position) *MockWorker {
	worker := &MockWorker{WorkerName: name, Position: pos, Free: 100, Codes: make(map[string]shared.ReturnCode)}
	w.Workers[name] = worker
	return worker
}

// AddFacility registers an idle spawn and lists it in its room
func (w *MockWorld) AddFacility(id string, pos shared.Position) *MockFacility {
	facility := &MockFacility{FacilityID: id, Position: pos, SpawnCode: shared.OK}
	w.Facilities[id] = facility
	if room, ok := w.RoomsByKey[pos.Room]; ok {
		room.Facilities = append(room.Facilities, id)
	}
	return facility
}

// AddSource registers a resource node and lists it in its room
func (w *MockWorld) AddSource(id string, pos shared.Position) *MockSource {
	source := &MockSource{SourceID: id, Position: pos}
	w.Sources[id] = source
	if room, ok := w.RoomsByKey[pos.Room]; ok {
		room.Sources = append(room.Sources, id)
	}
	return source
}

// DropEnergy places a pile of energy on a tile
func (w *MockWorld) DropEnergy(pos shared.Position, amount int) *MockResource {
	pile := &MockResource{ResourceID: fmt.Sprintf("energy-%s", pos), Position: pos, Quantity: amount}
	w.Dropped[pos] = pile
	return pile
}

// AllCalls returns every order recorded on every worker, sorted by worker name
func (w *MockWorld) AllCalls() []string {
	names := make([]string, 0, len(w.Workers))
	for name := range w.Workers {
		names = append(names, name)
	}
	sort.Strings(names)

	var calls []string
	for _, name := range names {
		for _, call := range w.Workers[name].Calls {
			calls = append(calls, name+" "+call)
		}
	}
	return calls
}

func (w *MockWorld) Time() shared.Tick { return w.Tick }

func (w *MockWorld) Worker(name string) (world.Worker, bool) {
	if worker, ok := w.Workers[name]; ok {
		return worker, true
	}
	return nil, false
}

func (w *MockWorld) Facility(id string) (world.Facility, bool) {
	if facility, ok := w.Facilities[id]; ok {
		return facility, true
	}
	return nil, false
}

func (w *MockWorld) Source(id string) (world.Source, bool) {
	if source, ok := w.Sources[id]; ok {
		return source, true
	}
	return nil, false
}

func (w *MockWorld) Room(name string) (world.Room, bool) {
	if room, ok := w.RoomsByKey[name]; ok {
		return room, true
	}
	return nil, false
}

func (w *MockWorld) Rooms() []string {
	names := make([]string, 0, len(w.RoomsByKey))
	for name := range w.RoomsByKey {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (w *MockWorld) DroppedEnergyAt(pos shared.Position) (world.Resource, bool) {
	if pile, ok := w.Dropped[pos]; ok {
		return pile, true
	}
	return nil, false
}

// MockRoom implements world.Room
type MockRoom struct {
	RoomName   string
	Energy     int
	Capacity   int
	Facilities []string
	Extensions []string
	Sources    []string
}

func (r *MockRoom) Name() string                 { return r.RoomName }
func (r *MockRoom) EnergyAvailable() int         { return r.Energy }
func (r *MockRoom) EnergyCapacityAvailable() int { return r.Capacity }
func (r *MockRoom) FacilityIDs() []string        { return r.Facilities }
func (r *MockRoom) ExtensionIDs() []string       { return r.Extensions }
func (r *MockRoom) SourceIDs() []string          { return r.Sources }

// MockWorker implements world.Worker. Codes maps an order name ("move",
// "move_to", "harvest", "pull", "move_pulled_by", "transfer", "pickup") to the
// code it returns; missing entries return OK.
type MockWorker struct {
	WorkerName string
	Position   shared.Position
	IsSpawning bool
	Free       int
	Carried    int
	Codes      map[string]shared.ReturnCode
	Calls      []string
}

func (m *MockWorker) record(order, detail string) shared.ReturnCode {
	if detail != "" {
		order += " " + detail
	}
	m.Calls = append(m.Calls, order)
	return m.code(order)
}

func (m *MockWorker) code(call string) shared.ReturnCode {
	for i := 0; i < len(call); i++ {
		if call[i] == ' ' {
			call = call[:i]
			break
		}
	}
	if code, ok := m.Codes[call]; ok {
		return code
	}
	return shared.OK
}

func (m *MockWorker) Name() string         { return m.WorkerName }
func (m *MockWorker) Pos() shared.Position { return m.Position }
func (m *MockWorker) Spawning() bool       { return m.IsSpawning }
func (m *MockWorker) FreeCapacity() int    { return m.Free }
func (m *MockWorker) CarriedEnergy() int   { return m.Carried }

func (m *MockWorker) Move(direction shared.Direction) shared.ReturnCode {
	return m.record("move", direction.String())
}

func (m *MockWorker) MoveTo(target shared.Position) shared.ReturnCode {
	return m.record("move_to", target.String())
}

func (m *MockWorker) Harvest(source world.Source) shared.ReturnCode {
	return m.record("harvest", source.ID())
}

func (m *MockWorker) Pull(target world.Worker) shared.ReturnCode {
	return m.record("pull", target.Name())
}

func (m *MockWorker) MovePulledBy(puller world.Worker) shared.ReturnCode {
	return m.record("move_pulled_by", puller.Name())
}

func (m *MockWorker) TransferToFacility(target world.Facility, amount int) shared.ReturnCode {
	return m.record("transfer", target.ID())
}

func (m *MockWorker) TransferToWorker(target world.Worker, amount int) shared.ReturnCode {
	return m.record("transfer", target.Name())
}

func (m *MockWorker) Pickup(resource world.Resource) shared.ReturnCode {
	return m.record("pickup", resource.ID())
}

// SpawnCall records a SpawnWorker order
type SpawnCall struct {
	Body []shared.Part
	Name string
}

// MockFacility implements world.Facility
type MockFacility struct {
	FacilityID string
	Position   shared.Position
	Busy       bool
	SpawnCode  shared.ReturnCode
	Spawned    []SpawnCall
}

func (m *MockFacility) ID() string           { return m.FacilityID }
func (m *MockFacility) Pos() shared.Position { return m.Position }
func (m *MockFacility) RoomName() string     { return m.Position.Room }
func (m *MockFacility) Spawning() bool       { return m.Busy }

func (m *MockFacility) SpawnWorker(body []shared.Part, name string) shared.ReturnCode {
	m.Spawned = append(m.Spawned, SpawnCall{Body: body, Name: name})
	return m.SpawnCode
}

// MockSource implements world.Source
type MockSource struct {
	SourceID string
	Position shared.Position
}

func (m *MockSource) ID() string           { return m.SourceID }
func (m *MockSource) Pos() shared.Position { return m.Position }

// MockResource implements world.Resource
type MockResource struct {
	ResourceID string
	Position   shared.Position
	Quantity   int
}

func (m *MockResource) ID() string           { return m.ResourceID }
func (m *MockResource) Pos() shared.Position { return m.Position }
func (m *MockResource) Amount() int          { return m.Quantity }
