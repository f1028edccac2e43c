package mining

import (
	"github.com/andrescamacho/hive-go/internal/domain/spawning"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// WorkerProvider hands out live workers for a named role, producing them on
// demand. Implementations are idempotent within a tick: callers simply ask
// again next tick when a worker is not yet available.
type WorkerProvider interface {
	AcquireWorker(snapshot world.Snapshot, name, spawnRoomName string, urgent bool, policy spawning.BodyPolicy) (world.Worker, error)
}
