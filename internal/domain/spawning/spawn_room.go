package spawning

import (
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// availableSpawnCache holds the idle facility ids for one tick. It is
// consumed by popping so no facility is handed out twice in the same tick.
type availableSpawnCache struct {
	tick     shared.Tick
	computed bool
	spawnIDs []string
}

// SpawnRoom is the pool of production facilities belonging to one room.
// It stores ids, never live handles, so it can be persisted between ticks.
type SpawnRoom struct {
	roomName     string
	spawnIDs     []string
	extensionIDs []string

	cache availableSpawnCache
}

// NewSpawnRoom surveys room for its facilities and extensions
func NewSpawnRoom(room world.Room) *SpawnRoom {
	return &SpawnRoom{
		roomName:     room.Name(),
		spawnIDs:     append([]string(nil), room.FacilityIDs()...),
		extensionIDs: append([]string(nil), room.ExtensionIDs()...),
	}
}

func (s *SpawnRoom) RoomName() string       { return s.roomName }
func (s *SpawnRoom) SpawnIDs() []string     { return s.spawnIDs }
func (s *SpawnRoom) ExtensionIDs() []string { return s.extensionIDs }

// AddSpawn registers a newly built facility at the front of the pool
func (s *SpawnRoom) AddSpawn(spawnID string) {
	s.spawnIDs = append([]string{spawnID}, s.spawnIDs...)
	s.cache = availableSpawnCache{}
}

// Spawns resolves every facility id that still exists in the snapshot
func (s *SpawnRoom) Spawns(snapshot world.Snapshot) []world.Facility {
	spawns := make([]world.Facility, 0, len(s.spawnIDs))
	for _, id := range s.spawnIDs {
		if spawn, ok := snapshot.Facility(id); ok {
			spawns = append(spawns, spawn)
		}
	}
	return spawns
}

// AvailableSpawn hands out one idle facility. The idle set is computed once
// per tick and popped on every call; ok is false once it is exhausted.
func (s *SpawnRoom) AvailableSpawn(snapshot world.Snapshot) (spawn world.Facility, ok bool) {
	now := snapshot.Time()
	if s.cache.tick != now {
		s.cache = availableSpawnCache{tick: now}
	}

	if !s.cache.computed {
		idle := make([]string, 0, len(s.spawnIDs))
		for _, candidate := range s.Spawns(snapshot) {
			if !candidate.Spawning() {
				idle = append(idle, candidate.ID())
			}
		}
		s.cache.spawnIDs = idle
		s.cache.computed = true
	}

	for len(s.cache.spawnIDs) > 0 {
		last := len(s.cache.spawnIDs) - 1
		id := s.cache.spawnIDs[last]
		s.cache.spawnIDs = s.cache.spawnIDs[:last]
		if spawn, ok := snapshot.Facility(id); ok {
			return spawn, true
		}
	}
	return nil, false
}

// AvailableEnergy is the energy on hand in the room, or 0 if it is not visible
func (s *SpawnRoom) AvailableEnergy(snapshot world.Snapshot) int {
	if room, ok := snapshot.Room(s.roomName); ok {
		return room.EnergyAvailable()
	}
	return 0
}

// MaxEnergy is the room's energy capacity, or 0 if it is not visible
func (s *SpawnRoom) MaxEnergy(snapshot world.Snapshot) int {
	if room, ok := snapshot.Room(s.roomName); ok {
		return room.EnergyCapacityAvailable()
	}
	return 0
}

// SpawnRoomData is the DTO for persisting a spawn room. The availability
// cache is deliberately absent.
type SpawnRoomData struct {
	RoomName     string   `json:"room_name"`
	SpawnIDs     []string `json:"spawn_ids"`
	ExtensionIDs []string `json:"extension_ids"`
}

func (s *SpawnRoom) ToData() *SpawnRoomData {
	return &SpawnRoomData{
		RoomName:     s.roomName,
		SpawnIDs:     append([]string(nil), s.spawnIDs...),
		ExtensionIDs: append([]string(nil), s.extensionIDs...),
	}
}

func SpawnRoomFromData(data *SpawnRoomData) (*SpawnRoom, error) {
	if data == nil {
		return nil, shared.NewValidationError("spawn_room", "cannot be nil")
	}
	return &SpawnRoom{
		roomName:     data.RoomName,
		spawnIDs:     append([]string(nil), data.SpawnIDs...),
		extensionIDs: append([]string(nil), data.ExtensionIDs...),
	}, nil
}
