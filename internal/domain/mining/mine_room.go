package mining

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/spawning"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// HarvesterName is the worker name of the extractor assigned to a source
func HarvesterName(sourceID string) string { return "harvester:" + sourceID }

// HaulerName is the worker name of the transporter assigned to a source
func HaulerName(sourceID string) string { return "hauler:" + sourceID }

// MineRoom drives the extraction pipeline for every source in one room.
// Each source gets an extractor that is towed onto the node and a
// transporter that carries the dropped energy to the drop-off.
type MineRoom struct {
	roomName      string
	spawnRoomName string
	dropOff       DropOff
	sourceIDs     []string // ascending distance to the drop-off at construction time
}

// RunReport summarises one tick of a mine room
type RunReport struct {
	RoomName  string
	Sources   int
	Processed int
	Failures  []*SourceError
}

// NewMineRoom surveys room for its sources and orders them closest-first to
// the drop-off. The order is fixed for the lifetime of the mine room.
func NewMineRoom(room world.Room, snapshot world.Snapshot, spawnRoomName string, dropOff *LoadedDropOff) *MineRoom {
	type rankedSource struct {
		id      string
		rangeTo int
	}

	origin := dropOff.Pos()
	ranked := make([]rankedSource, 0, len(room.SourceIDs()))
	for _, id := range room.SourceIDs() {
		source, ok := snapshot.Source(id)
		if !ok {
			continue
		}
		ranked = append(ranked, rankedSource{id: id, rangeTo: source.Pos().RangeTo(origin)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].rangeTo < ranked[j].rangeTo })

	sourceIDs := make([]string, len(ranked))
	for i, r := range ranked {
		sourceIDs[i] = r.id
	}

	return &MineRoom{
		roomName:      room.Name(),
		spawnRoomName: spawnRoomName,
		dropOff:       dropOff.Compress(),
		sourceIDs:     sourceIDs,
	}
}

// Getters

func (m *MineRoom) RoomName() string      { return m.roomName }
func (m *MineRoom) SpawnRoomName() string { return m.spawnRoomName }
func (m *MineRoom) DropOff() DropOff      { return m.dropOff }
func (m *MineRoom) SourceIDs() []string   { return m.sourceIDs }

// SetDropOff redirects delivered energy; source order is not recomputed
func (m *MineRoom) SetDropOff(dropOff DropOff) {
	m.dropOff = dropOff
}

// Run processes every source once, closest first. A failing source is
// reported and skipped; it never stops the remaining sources.
func (m *MineRoom) Run(snapshot world.Snapshot, workers WorkerProvider) RunReport {
	report := RunReport{RoomName: m.roomName, Sources: len(m.sourceIDs)}

	for _, sourceID := range m.sourceIDs {
		if err := m.processSource(snapshot, workers, sourceID); err != nil {
			report.Failures = append(report.Failures, &SourceError{RoomName: m.roomName, SourceID: sourceID, Err: err})
			continue
		}
		report.Processed++
	}

	return report
}

func (m *MineRoom) processSource(snapshot world.Snapshot, workers WorkerProvider, sourceID string) error {
	source, ok := snapshot.Source(sourceID)
	if !ok {
		return shared.NewUnresolvedEntityError("source", sourceID)
	}

	// Both roles are requested every tick so production of one is not held
	// back by the other.
	hauler, haulerErr := workers.AcquireWorker(snapshot, HaulerName(sourceID), m.spawnRoomName, false, spawning.HaulerBody)
	harvester, err := workers.AcquireWorker(snapshot, HarvesterName(sourceID), m.spawnRoomName, false, spawning.HarvesterBody)
	if err != nil {
		return err
	}
	if haulerErr != nil {
		return haulerErr
	}

	if !harvester.Pos().IsNearTo(source.Pos()) {
		return m.towToSource(source, harvester, hauler)
	}

	if err := m.mineSource(source, harvester); err != nil {
		return err
	}
	return m.haulEnergy(snapshot, harvester, hauler)
}

// towToSource moves the hauler next to the harvester, links them and drags
// the harvester to the source, swapping places for the final step.
func (m *MineRoom) towToSource(source world.Source, harvester, hauler world.Worker) error {
	if !hauler.Pos().IsNearTo(harvester.Pos()) {
		if code := hauler.MoveTo(harvester.Pos()); !code.IsOK() {
			return NewPipelineError(hauler.Name(), OpApproachHarvester, code, "")
		}
		return nil
	}

	pull, follow := hauler.Pull(harvester), harvester.MovePulledBy(hauler)
	if !pull.IsOK() || !follow.IsOK() {
		code := pull
		if code.IsOK() {
			code = follow
		}
		return NewPipelineError(hauler.Name(), OpTow, code,
			fmt.Sprintf("pulling %s: pull=%s follow=%s", harvester.Name(), pull, follow))
	}

	if hauler.Pos().IsNearTo(source.Pos()) {
		if code := hauler.MovePulledBy(harvester); !code.IsOK() {
			return NewPipelineError(hauler.Name(), OpPlaceHarvester, code, "")
		}
		return nil
	}

	if code := hauler.MoveTo(source.Pos()); !code.IsOK() {
		return NewPipelineError(hauler.Name(), OpApproachSource, code, "")
	}
	return nil
}

func (m *MineRoom) mineSource(source world.Source, harvester world.Worker) error {
	if code := harvester.Harvest(source); !code.IsOK() {
		return NewPipelineError(harvester.Name(), OpHarvest, code, "")
	}
	return nil
}

// haulEnergy fills the hauler from the energy dropped under the harvester,
// then carries it to the drop-off once full.
func (m *MineRoom) haulEnergy(snapshot world.Snapshot, harvester, hauler world.Worker) error {
	if hauler.FreeCapacity() > 0 {
		if !hauler.Pos().IsNearTo(harvester.Pos()) {
			if code := hauler.MoveTo(harvester.Pos()); !code.IsOK() {
				return NewPipelineError(hauler.Name(), OpApproachPickup, code, "")
			}
			return nil
		}

		pile, ok := snapshot.DroppedEnergyAt(harvester.Pos())
		if !ok {
			return NewPipelineError(hauler.Name(), OpPickup, shared.NotFound, "no energy to pick up")
		}
		if code := hauler.Pickup(pile); !code.IsOK() {
			return NewPipelineError(hauler.Name(), OpPickup, code, "")
		}
		return nil
	}

	dropOff, ok := m.dropOff.Resolve(snapshot)
	if !ok {
		return shared.NewUnresolvedEntityError("drop-off", m.dropOff.String())
	}

	if !hauler.Pos().IsNearTo(dropOff.Pos()) {
		if code := hauler.MoveTo(dropOff.Pos()); !code.IsOK() {
			return NewPipelineError(hauler.Name(), OpApproachDropOff, code, "")
		}
		return nil
	}

	if code := dropOff.AcceptEnergy(hauler, 0); !code.IsOK() {
		return NewPipelineError(hauler.Name(), OpDropOff, code, "")
	}
	return nil
}

// MineRoomData is the DTO for persisting a mine room
type MineRoomData struct {
	RoomName      string   `json:"room_name"`
	SpawnRoomName string   `json:"spawn_room_name"`
	DropOff       DropOff  `json:"drop_off"`
	SourceIDs     []string `json:"source_ids"`
}

// ToData converts the entity to a DTO for persistence
func (m *MineRoom) ToData() *MineRoomData {
	return &MineRoomData{
		RoomName:      m.roomName,
		SpawnRoomName: m.spawnRoomName,
		DropOff:       m.dropOff,
		SourceIDs:     append([]string(nil), m.sourceIDs...),
	}
}

// MineRoomFromData creates a MineRoom entity from a DTO
func MineRoomFromData(data *MineRoomData) (*MineRoom, error) {
	if data == nil {
		return nil, shared.NewValidationError("mine_room", "cannot be nil")
	}
	if err := data.DropOff.Validate(); err != nil {
		return nil, err
	}
	return &MineRoom{
		roomName:      data.RoomName,
		spawnRoomName: data.SpawnRoomName,
		dropOff:       data.DropOff,
		sourceIDs:     append([]string(nil), data.SourceIDs...),
	}, nil
}
