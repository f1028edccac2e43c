package colony

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/internal/domain/hive"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// MemoryVersion is the layout version written with every memory blob. Blobs
// written under any other version are discarded on load.
var MemoryVersion = semver.MustParse("1.0.0")

var (
	// ErrMemoryNotFound is returned by a MemoryStore that holds no blob
	ErrMemoryNotFound = errors.New("memory not found")

	// ErrIncompatibleMemory reports a blob written under another MemoryVersion
	ErrIncompatibleMemory = errors.New("incompatible memory version")
)

// MemoryStore persists the encoded colony between ticks
type MemoryStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
	Clear(ctx context.Context) error
}

// Memory is the versioned envelope around the persisted colony
type Memory struct {
	Version string         `json:"version"`
	Hive    *hive.HiveData `json:"hive"`
}

// EncodeMemory serialises h under the current MemoryVersion
func EncodeMemory(h *hive.Hive) ([]byte, error) {
	blob, err := json.Marshal(&Memory{Version: MemoryVersion.String(), Hive: h.ToData()})
	if err != nil {
		return nil, fmt.Errorf("failed to encode memory: %w", err)
	}
	return blob, nil
}

// DecodeMemory parses blob and checks its version
func DecodeMemory(blob []byte) (*Memory, error) {
	var memory Memory
	if err := json.Unmarshal(blob, &memory); err != nil {
		return nil, fmt.Errorf("failed to decode memory: %w", err)
	}

	version, err := semver.NewVersion(memory.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable version %q", ErrIncompatibleMemory, memory.Version)
	}
	if !version.Equal(MemoryVersion) {
		return nil, fmt.Errorf("%w: stored %s, current %s", ErrIncompatibleMemory, version, MemoryVersion)
	}
	if memory.Hive == nil {
		return nil, fmt.Errorf("failed to decode memory: missing hive")
	}
	return &memory, nil
}

// HiveRepository loads and saves the colony through a MemoryStore, founding
// a fresh colony whenever nothing usable is stored.
type HiveRepository struct {
	store       MemoryStore
	genesisRoom string
}

// NewHiveRepository creates a repository. An empty genesisRoom founds new
// colonies in the first room the host reports.
func NewHiveRepository(store MemoryStore, genesisRoom string) *HiveRepository {
	return &HiveRepository{store: store, genesisRoom: genesisRoom}
}

// Load returns the stored colony, or a freshly founded one (fresh is true)
// when the store is empty or holds a blob that cannot be used.
func (r *HiveRepository) Load(ctx context.Context, snapshot world.Snapshot) (h *hive.Hive, fresh bool, err error) {
	logger := common.LoggerFromContext(ctx)

	blob, err := r.store.Load(ctx)
	switch {
	case errors.Is(err, ErrMemoryNotFound):
		logger.Log(common.LevelInfo, "No stored memory, founding a new hive", nil)
	case err != nil:
		return nil, false, fmt.Errorf("failed to load memory: %w", err)
	default:
		h, decodeErr := r.decode(blob)
		if decodeErr == nil {
			return h, false, nil
		}
		logger.Log(common.LevelWarning, "Discarding stored memory", map[string]interface{}{
			"error": decodeErr.Error(),
		})
	}

	h, err = r.found(snapshot)
	if err != nil {
		return nil, false, err
	}
	logger.Log(common.LevelInfo, "Founded hive", map[string]interface{}{
		"spawn_rooms": h.SpawnRoomNames(),
		"mine_rooms":  h.MineRoomNames(),
	})
	return h, true, nil
}

// Save encodes h and writes it to the store
func (r *HiveRepository) Save(ctx context.Context, h *hive.Hive) error {
	blob, err := EncodeMemory(h)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, blob); err != nil {
		return fmt.Errorf("failed to save memory: %w", err)
	}
	return nil
}

// Reset drops whatever is stored
func (r *HiveRepository) Reset(ctx context.Context) error {
	if err := r.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear memory: %w", err)
	}
	return nil
}

func (r *HiveRepository) decode(blob []byte) (*hive.Hive, error) {
	memory, err := DecodeMemory(blob)
	if err != nil {
		return nil, err
	}
	return hive.FromData(memory.Hive)
}

func (r *HiveRepository) found(snapshot world.Snapshot) (*hive.Hive, error) {
	roomName := r.genesisRoom
	if roomName == "" {
		rooms := snapshot.Rooms()
		if len(rooms) == 0 {
			return nil, fmt.Errorf("cannot found hive: host reports no rooms")
		}
		roomName = rooms[0]
	}

	h, err := hive.New(snapshot, roomName)
	if err != nil {
		return nil, fmt.Errorf("cannot found hive in %s: %w", roomName, err)
	}
	return h, nil
}
