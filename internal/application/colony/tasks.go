package colony

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/tasks"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// AddTaskCommand binds a task tree to a worker. An existing entry for the
// worker is replaced.
type AddTaskCommand struct {
	WorkerName string
	Task       *tasks.TaskData
}

// AddTaskResponse - Response from the add task command
type AddTaskResponse struct {
	WorkerName string
	Replaced   bool
}

// AddTaskHandler - Handles add task commands
type AddTaskHandler struct {
	host  world.Host
	hives *HiveRepository
}

// NewAddTaskHandler creates a new add task handler
func NewAddTaskHandler(host world.Host, hives *HiveRepository) *AddTaskHandler {
	return &AddTaskHandler{host: host, hives: hives}
}

// Handle executes the add task command
func (h *AddTaskHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AddTaskCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	if strings.TrimSpace(cmd.WorkerName) == "" {
		return nil, shared.NewValidationError("worker_name", "cannot be empty")
	}
	task, err := tasks.FromData(cmd.Task)
	if err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	colony, _, err := h.hives.Load(ctx, h.host.Snapshot())
	if err != nil {
		return nil, err
	}

	replaced := colony.Tasks().Has(cmd.WorkerName)
	colony.Tasks().Add(cmd.WorkerName, task)

	if err := h.hives.Save(ctx, colony); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Task registered", map[string]interface{}{
		"worker":   cmd.WorkerName,
		"kind":     string(task.Kind()),
		"replaced": replaced,
	})
	return &AddTaskResponse{WorkerName: cmd.WorkerName, Replaced: replaced}, nil
}

// CancelTaskCommand removes the task entry of a worker, freeing it for the
// allocator on the next tick
type CancelTaskCommand struct {
	WorkerName string
}

// CancelTaskResponse - Response from the cancel task command
type CancelTaskResponse struct {
	Removed bool
}

// CancelTaskHandler - Handles cancel task commands
type CancelTaskHandler struct {
	host  world.Host
	hives *HiveRepository
}

// NewCancelTaskHandler creates a new cancel task handler
func NewCancelTaskHandler(host world.Host, hives *HiveRepository) *CancelTaskHandler {
	return &CancelTaskHandler{host: host, hives: hives}
}

// Handle executes the cancel task command
func (h *CancelTaskHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CancelTaskCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	colony, _, err := h.hives.Load(ctx, h.host.Snapshot())
	if err != nil {
		return nil, err
	}

	if !colony.Tasks().Remove(cmd.WorkerName) {
		return &CancelTaskResponse{Removed: false}, nil
	}
	if err := h.hives.Save(ctx, colony); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Task cancelled", map[string]interface{}{
		"worker": cmd.WorkerName,
	})
	return &CancelTaskResponse{Removed: true}, nil
}
