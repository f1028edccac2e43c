package hive

import (
	"fmt"

	"github.com/andrescamacho/hive-go/internal/domain/mining"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/spawning"
	"github.com/andrescamacho/hive-go/internal/domain/tasks"
)

// HiveData is the DTO for persisting the colony between ticks
type HiveData struct {
	IDGenerator shared.IDGenerator                 `json:"id_generator"`
	Tasks       map[string]*tasks.TaskData         `json:"tasks"`
	MineRooms   map[string]*mining.MineRoomData    `json:"mine_rooms"`
	SpawnRooms  map[string]*spawning.SpawnRoomData `json:"spawn_rooms"`
}

// ToData converts the aggregate to a DTO for persistence
func (h *Hive) ToData() *HiveData {
	data := &HiveData{
		IDGenerator: *h.ids,
		Tasks:       h.tasks.ToData(),
		MineRooms:   make(map[string]*mining.MineRoomData, len(h.mineRooms)),
		SpawnRooms:  make(map[string]*spawning.SpawnRoomData, len(h.spawnRooms)),
	}
	for name, m := range h.mineRooms {
		data.MineRooms[name] = m.ToData()
	}
	for name, s := range h.spawnRooms {
		data.SpawnRooms[name] = s.ToData()
	}
	return data
}

// FromData rebuilds the aggregate from a DTO
func FromData(data *HiveData) (*Hive, error) {
	if data == nil {
		return nil, shared.NewValidationError("hive", "cannot be nil")
	}

	registry, err := tasks.RegistryFromData(data.Tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to restore tasks: %w", err)
	}

	h := Empty()
	ids := data.IDGenerator
	h.ids = &ids
	h.tasks = registry

	for _, name := range sortedKeys(data.SpawnRooms) {
		s, err := spawning.SpawnRoomFromData(data.SpawnRooms[name])
		if err != nil {
			return nil, fmt.Errorf("failed to restore spawn room %s: %w", name, err)
		}
		h.spawnRooms[name] = s
	}
	for _, name := range sortedKeys(data.MineRooms) {
		m, err := mining.MineRoomFromData(data.MineRooms[name])
		if err != nil {
			return nil, fmt.Errorf("failed to restore mine room %s: %w", name, err)
		}
		h.mineRooms[name] = m
	}

	return h, nil
}
