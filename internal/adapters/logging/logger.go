package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/andrescamacho/hive-go/internal/adapters/persistence"
	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/infrastructure/config"
)

// NewSlogLogger builds the process logger from config. The returned closer
// releases the log file when output is "file".
func NewSlogLogger(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	var out io.Writer
	var closer io.Closer = nopCloser{}

	switch cfg.Output {
	case "stderr":
		out = os.Stderr
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	default:
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps a config level name to a slog level; unknown names are info
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func slogLevel(level string) slog.Level {
	switch level {
	case common.LevelDebug:
		return slog.LevelDebug
	case common.LevelWarning:
		return slog.LevelWarn
	case common.LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// TickLogger implements common.TickLogger on top of slog, tagging every entry
// with the run id and current tick. With a sink attached, entries are also
// persisted.
type TickLogger struct {
	logger *slog.Logger
	sink   persistence.TickLogRepository
	runID  string

	mu   sync.Mutex
	tick shared.Tick
}

// NewTickLogger creates a tick logger; sink may be nil
func NewTickLogger(logger *slog.Logger, runID string, sink persistence.TickLogRepository) *TickLogger {
	return &TickLogger{
		logger: logger.With(slog.String("run_id", runID)),
		sink:   sink,
		runID:  runID,
	}
}

// SetTick sets the tick attached to subsequent entries
func (l *TickLogger) SetTick(tick shared.Tick) {
	l.mu.Lock()
	l.tick = tick
	l.mu.Unlock()
}

// Log writes one entry. Metadata keys are emitted in sorted order.
func (l *TickLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	tick := l.tick
	l.mu.Unlock()

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys)+1)
	attrs = append(attrs, slog.Uint64("tick", uint64(tick)))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, metadata[k]))
	}

	ctx := context.Background()
	l.logger.LogAttrs(ctx, slogLevel(level), message, attrs...)

	if l.sink != nil {
		if err := l.sink.Log(ctx, l.runID, tick, message, level, metadata); err != nil {
			l.logger.Warn("failed to persist log entry", slog.String("error", err.Error()))
		}
	}
}
