package colony_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hive-go/internal/application/colony"
	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/internal/domain/hive"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/tasks"
	"github.com/andrescamacho/hive-go/test/helpers"
)

type fixture struct {
	world    *helpers.MockWorld
	host     *helpers.MockHost
	store    *helpers.MemoryStore
	logger   *helpers.RecordingLogger
	mediator common.Mediator
	ctx      context.Context
}

type countingObserver struct{ ticks []shared.Tick }

func (o *countingObserver) ObserveTick(report *hive.Report, _ time.Duration) {
	o.ticks = append(o.ticks, report.Tick)
}

func newFixture(t *testing.T, observers ...colony.TickObserver) *fixture {
	t.Helper()
	w := helpers.NewMockWorld()
	w.AddRoom("W1N1", 300, 300)
	w.AddFacility("spawn1", helpers.Pos("W1N1", 25, 25))
	w.AddSource("s1", helpers.Pos("W1N1", 10, 10))

	f := &fixture{
		world:    w,
		host:     helpers.NewMockHost(w),
		store:    helpers.NewMemoryStore(),
		logger:   &helpers.RecordingLogger{},
		mediator: common.NewMediator(),
	}
	f.ctx = common.WithLogger(context.Background(), f.logger)

	hives := colony.NewHiveRepository(f.store, "")
	require.NoError(t, colony.RegisterHandlers(f.mediator, f.host, hives, shared.NewMockClock(time.Time{}), observers...))
	return f
}

func (f *fixture) runTick(t *testing.T) *colony.RunTickResponse {
	t.Helper()
	resp, err := f.mediator.Send(f.ctx, &colony.RunTickCommand{})
	require.NoError(t, err)
	return resp.(*colony.RunTickResponse)
}

func TestRunTick_FoundsHiveOnEmptyMemory(t *testing.T) {
	observer := &countingObserver{}
	f := newFixture(t, observer)

	resp := f.runTick(t)

	assert.True(t, resp.Fresh)
	assert.Equal(t, shared.Tick(1), resp.Tick)
	assert.Equal(t, 1, f.host.Commits)
	assert.NotNil(t, f.store.Blob())
	assert.Equal(t, []shared.Tick{1}, observer.ticks)
	assert.Contains(t, f.logger.Messages(common.LevelInfo), "Spawning worker")
}

func TestRunTick_ReusesStoredMemory(t *testing.T) {
	f := newFixture(t)
	f.runTick(t)

	resp := f.runTick(t)

	assert.False(t, resp.Fresh)
	assert.Equal(t, shared.Tick(2), resp.Tick)
	assert.Equal(t, 2, f.store.Saves)
}

func TestRunTick_DiscardsIncompatibleMemory(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), []byte(`{"version":"0.9.0","hive":{}}`)))

	resp := f.runTick(t)

	assert.True(t, resp.Fresh)
	assert.Contains(t, f.logger.Messages(common.LevelWarning), "Discarding stored memory")

	memory, err := colony.DecodeMemory(f.store.Blob())
	require.NoError(t, err)
	assert.Equal(t, colony.MemoryVersion.String(), memory.Version)
}

func TestRunTick_DiscardsUndecodableMemory(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", `not json`},
		{"null spawn room", `{"version":"1.0.0","hive":{"spawn_rooms":{"W1N1":null}}}`},
		{"null mine room", `{"version":"1.0.0","hive":{"mine_rooms":{"W1N1":null}}}`},
		{"null task", `{"version":"1.0.0","hive":{"tasks":{"scout":null}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.store.Save(context.Background(), []byte(tt.blob)))

			resp := f.runTick(t)

			assert.True(t, resp.Fresh)
			assert.Contains(t, f.logger.Messages(common.LevelWarning), "Discarding stored memory")
			_, err := colony.DecodeMemory(f.store.Blob())
			assert.NoError(t, err, "the replacement hive is saved over the bad blob")
		})
	}
}

func TestRunTick_StoreErrorAborts(t *testing.T) {
	f := newFixture(t)
	f.store.LoadErr = errors.New("disk on fire")

	_, err := f.mediator.Send(f.ctx, &colony.RunTickCommand{})

	assert.Error(t, err)
	assert.Zero(t, f.host.Commits)
}

func TestRunTick_LogsUnavailableWorkers(t *testing.T) {
	f := newFixture(t)

	f.runTick(t)

	assert.Contains(t, f.logger.Messages(common.LevelWarning), "Worker unavailable: NO_SPAWN_AVAILABLE")
}

func TestAddTask_RegistersAndPersists(t *testing.T) {
	f := newFixture(t)
	f.world.AddWorker("scout", helpers.Pos("W1N1", 30, 30))

	resp, err := f.mediator.Send(f.ctx, &colony.AddTaskCommand{
		WorkerName: "scout",
		Task:       tasks.NewPerpetual(tasks.NewMove(shared.DirectionLeft)).ToData(),
	})
	require.NoError(t, err)
	assert.False(t, resp.(*colony.AddTaskResponse).Replaced)

	f.runTick(t)
	f.runTick(t)
	assert.Equal(t, []string{"move LEFT", "move LEFT"}, f.world.Workers["scout"].Calls)

	query, err := f.mediator.Send(f.ctx, &colony.GetMemoryQuery{})
	require.NoError(t, err)
	assert.Contains(t, query.(*colony.GetMemoryResponse).Memory.Hive.Tasks, "scout")
}

func TestAddTask_RejectsInvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.mediator.Send(f.ctx, &colony.AddTaskCommand{WorkerName: "", Task: tasks.NewMove(shared.DirectionTop).ToData()})
	assert.Error(t, err)

	_, err = f.mediator.Send(f.ctx, &colony.AddTaskCommand{WorkerName: "a", Task: &tasks.TaskData{Kind: "DANCE"}})
	assert.Error(t, err)
	assert.Nil(t, f.store.Blob())
}

func TestCancelTask_RemovesEntry(t *testing.T) {
	f := newFixture(t)
	_, err := f.mediator.Send(f.ctx, &colony.AddTaskCommand{WorkerName: "scout", Task: tasks.NewMove(shared.DirectionTop).ToData()})
	require.NoError(t, err)

	first, err := f.mediator.Send(f.ctx, &colony.CancelTaskCommand{WorkerName: "scout"})
	require.NoError(t, err)
	second, err := f.mediator.Send(f.ctx, &colony.CancelTaskCommand{WorkerName: "scout"})
	require.NoError(t, err)

	assert.True(t, first.(*colony.CancelTaskResponse).Removed)
	assert.False(t, second.(*colony.CancelTaskResponse).Removed)
}

func TestGetMemory_DoesNotWrite(t *testing.T) {
	f := newFixture(t)

	resp, err := f.mediator.Send(f.ctx, &colony.GetMemoryQuery{})

	require.NoError(t, err)
	assert.True(t, resp.(*colony.GetMemoryResponse).Fresh)
	assert.Nil(t, f.store.Blob())
}

func TestResetMemory_ClearsStore(t *testing.T) {
	f := newFixture(t)
	f.runTick(t)

	_, err := f.mediator.Send(f.ctx, &colony.ResetMemoryCommand{})

	require.NoError(t, err)
	assert.Nil(t, f.store.Blob())
}

func TestHiveRepository_GenesisRoomMustExist(t *testing.T) {
	f := newFixture(t)
	hives := colony.NewHiveRepository(f.store, "W9N9")

	_, _, err := hives.Load(context.Background(), f.world)

	assert.Error(t, err)
}

func TestDecodeMemory_VersionCheck(t *testing.T) {
	_, err := colony.DecodeMemory([]byte(`{"version":"2.0.0","hive":{}}`))
	assert.ErrorIs(t, err, colony.ErrIncompatibleMemory)

	_, err = colony.DecodeMemory([]byte(`{"version":"garbage","hive":{}}`))
	assert.ErrorIs(t, err, colony.ErrIncompatibleMemory)

	memory, err := colony.DecodeMemory([]byte(`{"version":"1.0.0","hive":{}}`))
	require.NoError(t, err)
	assert.NotNil(t, memory.Hive)
}
