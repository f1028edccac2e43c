package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hive-go/internal/adapters/persistence"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/test/helpers"
)

func TestTickLogRepository_DeduplicatesWithinWindow(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := persistence.NewGormTickLogRepository(db, clock, time.Minute)
	ctx := context.Background()

	// Act
	require.NoError(t, repo.Log(ctx, "run-1", 1, "Pipeline step failed", "WARNING", nil))
	clock.Advance(10 * time.Second)
	require.NoError(t, repo.Log(ctx, "run-1", 2, "Pipeline step failed", "WARNING", nil))
	clock.Advance(time.Minute)
	require.NoError(t, repo.Log(ctx, "run-1", 3, "Pipeline step failed", "WARNING", nil))

	// Assert
	entries, err := repo.GetLogs(ctx, "run-1", 10, nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, shared.Tick(3), entries[0].Tick)
	assert.Equal(t, shared.Tick(1), entries[1].Tick)
}

func TestTickLogRepository_RunsAreSeparate(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTickLogRepository(db, nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Log(ctx, "run-1", 1, "Founded hive", "INFO", nil))
	require.NoError(t, repo.Log(ctx, "run-2", 1, "Founded hive", "INFO", nil))

	entries, err := repo.GetLogs(ctx, "run-2", 10, nil, nil)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTickLogRepository_FiltersAndMetadata(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := persistence.NewGormTickLogRepository(db, clock, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Log(ctx, "run-1", 1, "Spawning worker", "INFO", map[string]interface{}{"worker": "hauler:s1"}))
	clock.Advance(time.Second)
	require.NoError(t, repo.Log(ctx, "run-1", 2, "Pipeline step failed", "WARNING", nil))

	level := "INFO"
	entries, err := repo.GetLogs(ctx, "run-1", 10, &level, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hauler:s1", entries[0].Metadata["worker"])

	since := clock.Now().Add(-500 * time.Millisecond)
	entries, err = repo.GetLogs(ctx, "run-1", 10, nil, &since)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Pipeline step failed", entries[0].Message)
}
