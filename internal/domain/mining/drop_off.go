package mining

import (
	"fmt"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// DropOffKind tags what kind of entity accepts delivered energy
type DropOffKind string

const (
	DropOffSpawn  DropOffKind = "SPAWN"
	DropOffWorker DropOffKind = "WORKER"
)

// DropOff is the persisted handle of an energy destination: a facility id
// or a worker name. It is resolved against the snapshot every tick.
type DropOff struct {
	Kind DropOffKind `json:"kind"`
	Ref  string      `json:"ref"`
}

func SpawnDropOff(spawnID string) DropOff {
	return DropOff{Kind: DropOffSpawn, Ref: spawnID}
}

func WorkerDropOff(workerName string) DropOff {
	return DropOff{Kind: DropOffWorker, Ref: workerName}
}

func (d DropOff) String() string {
	return fmt.Sprintf("%s(%s)", d.Kind, d.Ref)
}

// Validate checks the handle is well formed
func (d DropOff) Validate() error {
	if d.Kind != DropOffSpawn && d.Kind != DropOffWorker {
		return shared.NewValidationError("drop_off.kind", fmt.Sprintf("unknown drop-off kind %q", d.Kind))
	}
	if d.Ref == "" {
		return shared.NewValidationError("drop_off.ref", "cannot be empty")
	}
	return nil
}

// Resolve loads the live entity behind the handle. ok is false when the
// entity no longer exists; it never resolves to a different entity.
func (d DropOff) Resolve(snapshot world.Snapshot) (*LoadedDropOff, bool) {
	switch d.Kind {
	case DropOffSpawn:
		if spawn, ok := snapshot.Facility(d.Ref); ok {
			return LoadedSpawn(spawn), true
		}
	case DropOffWorker:
		if worker, ok := snapshot.Worker(d.Ref); ok {
			return LoadedWorker(worker), true
		}
	}
	return nil, false
}

// LoadedDropOff is a drop-off resolved for the current tick
type LoadedDropOff struct {
	spawn  world.Facility
	worker world.Worker
}

func LoadedSpawn(spawn world.Facility) *LoadedDropOff {
	return &LoadedDropOff{spawn: spawn}
}

func LoadedWorker(worker world.Worker) *LoadedDropOff {
	return &LoadedDropOff{worker: worker}
}

// Compress converts back to the persistable handle
func (l *LoadedDropOff) Compress() DropOff {
	if l.spawn != nil {
		return SpawnDropOff(l.spawn.ID())
	}
	return WorkerDropOff(l.worker.Name())
}

func (l *LoadedDropOff) Pos() shared.Position {
	if l.spawn != nil {
		return l.spawn.Pos()
	}
	return l.worker.Pos()
}

// AcceptEnergy has hauler transfer energy into the drop-off. amount <= 0
// transfers everything the hauler carries.
func (l *LoadedDropOff) AcceptEnergy(hauler world.Worker, amount int) shared.ReturnCode {
	if l.spawn != nil {
		return hauler.TransferToFacility(l.spawn, amount)
	}
	return hauler.TransferToWorker(l.worker, amount)
}
