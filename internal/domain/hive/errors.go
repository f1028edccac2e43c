package hive

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
)

// AcquireErrorKind says why a worker could not be handed out this tick
type AcquireErrorKind string

const (
	// WorkerBusy: the worker is committed to a registered task
	WorkerBusy AcquireErrorKind = "WORKER_BUSY"
	// SpawningInProgress: the worker exists or was just ordered but is not usable yet
	SpawningInProgress AcquireErrorKind = "SPAWNING_IN_PROGRESS"
	// NoSpawnAvailable: every facility of the spawn room is busy this tick
	NoSpawnAvailable AcquireErrorKind = "NO_SPAWN_AVAILABLE"
	// SpawningFailed: the host rejected the spawn order
	SpawningFailed AcquireErrorKind = "SPAWNING_FAILED"
)

// AcquireError is informational: callers retry next tick
type AcquireError struct {
	Kind       AcquireErrorKind
	WorkerName string
	Code       shared.ReturnCode // host code when Kind is SpawningFailed
}

var (
	ErrWorkerBusy         = &AcquireError{Kind: WorkerBusy}
	ErrSpawningInProgress = &AcquireError{Kind: SpawningInProgress}
	ErrNoSpawnAvailable   = &AcquireError{Kind: NoSpawnAvailable}
	ErrSpawningFailed     = &AcquireError{Kind: SpawningFailed}
)

func newAcquireError(kind AcquireErrorKind, workerName string) *AcquireError {
	return &AcquireError{Kind: kind, WorkerName: workerName}
}

func (e *AcquireError) Error() string {
	switch e.Kind {
	case WorkerBusy:
		return fmt.Sprintf("worker %s is busy with a task", e.WorkerName)
	case SpawningInProgress:
		return fmt.Sprintf("worker %s is still spawning", e.WorkerName)
	case NoSpawnAvailable:
		return fmt.Sprintf("no spawn available for worker %s", e.WorkerName)
	case SpawningFailed:
		return fmt.Sprintf("failed to spawn worker %s: %s", e.WorkerName, e.Code)
	}
	return fmt.Sprintf("cannot acquire worker %s: %s", e.WorkerName, e.Kind)
}

// Is matches any AcquireError of the same kind, so errors.Is(err, ErrWorkerBusy) works
func (e *AcquireError) Is(target error) bool {
	t, ok := target.(*AcquireError)
	return ok && t.Kind == e.Kind
}

// AcquireErrorKindOf extracts the kind from err, if it is an AcquireError
func AcquireErrorKindOf(err error) (AcquireErrorKind, bool) {
	var acquireErr *AcquireError
	if errors.As(err, &acquireErr) {
		return acquireErr.Kind, true
	}
	return "", false
}
