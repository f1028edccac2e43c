package bootstrap_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hive-go/internal/application/colony"
	"github.com/andrescamacho/hive-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/hive-go/internal/infrastructure/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Logging.Output = "stderr"
	cfg.Logging.Level = "error"
	cfg.Memory.Backend = config.MemoryBackendFile
	cfg.Memory.File.Path = filepath.Join(t.TempDir(), "memory.zst")
	config.SetDefaults(cfg)
	require.NoError(t, config.ValidateConfig(cfg))
	return cfg
}

func TestApp_RunTickPersistsMemoryAcrossRuns(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	app, err := bootstrap.New(cfg, "test")
	require.NoError(t, err)
	first, err := app.RunTick(ctx)
	require.NoError(t, err)
	second, err := app.RunTick(ctx)
	require.NoError(t, err)
	require.NoError(t, app.Close())

	assert.True(t, first.Fresh)
	assert.False(t, second.Fresh)
	assert.Equal(t, first.Tick+1, second.Tick)

	reopened, err := bootstrap.New(cfg, "test")
	require.NoError(t, err)
	defer reopened.Close()

	response, err := reopened.Mediator.Send(reopened.Context(ctx), &colony.GetMemoryQuery{})
	require.NoError(t, err)
	memory := response.(*colony.GetMemoryResponse)
	assert.False(t, memory.Fresh)
	assert.Equal(t, colony.MemoryVersion.String(), memory.Memory.Version)
}

func TestApp_DatabaseBackendWithPersistedLogs(t *testing.T) {
	cfg := testConfig(t)
	cfg.Memory.Backend = config.MemoryBackendDatabase
	cfg.Database.Path = ":memory:"
	cfg.Logging.Persist = true
	ctx := context.Background()

	app, err := bootstrap.New(cfg, "test")
	require.NoError(t, err)
	defer app.Close()

	for i := 0; i < 3; i++ {
		_, err := app.RunTick(ctx)
		require.NoError(t, err)
	}

	response, err := app.Mediator.Send(app.Context(ctx), &colony.GetMemoryQuery{})
	require.NoError(t, err)
	assert.False(t, response.(*colony.GetMemoryResponse).Fresh)
}

func TestApp_MetricsMiddlewareIsWired(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = true

	app, err := bootstrap.New(cfg, "test")
	require.NoError(t, err)
	defer app.Close()

	_, err = app.RunTick(context.Background())

	require.NoError(t, err)
}

func TestApp_InvalidScenarioFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.Simulation.Scenario = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := bootstrap.New(cfg, "test")

	assert.Error(t, err)
}
