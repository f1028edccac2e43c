package mining

import (
	"fmt"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
)

// Pipeline operations reported in PipelineError
const (
	OpApproachHarvester = "approach_harvester"
	OpTow               = "tow"
	OpPlaceHarvester    = "place_harvester"
	OpApproachSource    = "approach_source"
	OpHarvest           = "harvest"
	OpApproachPickup    = "approach_pickup"
	OpPickup            = "pickup"
	OpApproachDropOff   = "approach_drop_off"
	OpDropOff           = "drop_off"
)

// PipelineError is an unexpected host outcome while driving a source. The
// source is skipped for the rest of the tick and retried next tick.
type PipelineError struct {
	*shared.DomainError
	WorkerName string
	Operation  string
	Code       shared.ReturnCode
}

func NewPipelineError(workerName, operation string, code shared.ReturnCode, detail string) *PipelineError {
	msg := fmt.Sprintf("worker %s unexpected return code on %s: %s", workerName, operation, code)
	if detail != "" {
		msg += " (" + detail + ")"
	}
	return &PipelineError{
		DomainError: shared.NewDomainError(msg),
		WorkerName:  workerName,
		Operation:   operation,
		Code:        code,
	}
}

// SourceError attaches the source being processed to a pipeline failure
type SourceError struct {
	RoomName string
	SourceID string
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("room %s source %s: %v", e.RoomName, e.SourceID, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
