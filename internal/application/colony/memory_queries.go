package colony

import (
	"context"
	"fmt"

	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// GetMemoryQuery returns the colony as it would be loaded for the next tick.
// Nothing is written back.
type GetMemoryQuery struct{}

// GetMemoryResponse - Response from the get memory query
type GetMemoryResponse struct {
	Memory *Memory
	Fresh  bool
}

// GetMemoryHandler - Handles get memory queries
type GetMemoryHandler struct {
	host  world.Host
	hives *HiveRepository
}

// NewGetMemoryHandler creates a new get memory handler
func NewGetMemoryHandler(host world.Host, hives *HiveRepository) *GetMemoryHandler {
	return &GetMemoryHandler{host: host, hives: hives}
}

// Handle executes the get memory query
func (h *GetMemoryHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetMemoryQuery); !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	colony, fresh, err := h.hives.Load(ctx, h.host.Snapshot())
	if err != nil {
		return nil, err
	}

	return &GetMemoryResponse{
		Memory: &Memory{Version: MemoryVersion.String(), Hive: colony.ToData()},
		Fresh:  fresh,
	}, nil
}

// ResetMemoryCommand discards the stored colony; the next tick founds a new one
type ResetMemoryCommand struct{}

// ResetMemoryHandler - Handles reset memory commands
type ResetMemoryHandler struct {
	hives *HiveRepository
}

// NewResetMemoryHandler creates a new reset memory handler
func NewResetMemoryHandler(hives *HiveRepository) *ResetMemoryHandler {
	return &ResetMemoryHandler{hives: hives}
}

// Handle executes the reset memory command
func (h *ResetMemoryHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ResetMemoryCommand); !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	if err := h.hives.Reset(ctx); err != nil {
		return nil, err
	}
	common.LoggerFromContext(ctx).Log(common.LevelWarning, "Memory reset", nil)
	return struct{}{}, nil
}
