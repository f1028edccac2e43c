package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hive-go/internal/adapters/logging"
	"github.com/andrescamacho/hive-go/internal/adapters/persistence"
	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/test/helpers"
)

func TestTickLogger_WritesStructuredEntries(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger := logging.NewTickLogger(base, "run-1", nil)
	logger.SetTick(7)

	logger.Log(common.LevelWarning, "Pipeline step failed", map[string]interface{}{"source": "s1", "room": "W1N1"})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="Pipeline step failed"`)
	assert.Contains(t, out, "run_id=run-1 tick=7 room=W1N1 source=s1")
}

func TestTickLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: logging.ParseLevel("warn")}))
	logger := logging.NewTickLogger(base, "run-1", nil)

	logger.Log(common.LevelDebug, "Task step failed", nil)
	logger.Log(common.LevelInfo, "Spawning worker", nil)

	assert.Empty(t, buf.String())
}

func TestTickLogger_PersistsToSink(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTickLogRepository(db, nil, time.Minute)
	var buf bytes.Buffer
	logger := logging.NewTickLogger(slog.New(slog.NewJSONHandler(&buf, nil)), "run-9", repo)
	logger.SetTick(3)

	logger.Log(common.LevelInfo, "Founded hive", map[string]interface{}{"room": "W1N1"})

	entries, err := repo.GetLogs(context.Background(), "run-9", 10, nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Founded hive", entries[0].Message)
	assert.EqualValues(t, 3, entries[0].Tick)
	assert.Equal(t, "W1N1", entries[0].Metadata["room"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}
