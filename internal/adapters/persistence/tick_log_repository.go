package persistence

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/hive-go/internal/domain/shared"
)

// TickLogRepository manages persisted colony log entries
type TickLogRepository interface {
	// Log writes a log entry to the database with deduplication
	Log(ctx context.Context, runID string, tick shared.Tick, message, level string, metadata map[string]interface{}) error

	// GetLogs retrieves logs for a run, newest first, with optional filtering
	GetLogs(ctx context.Context, runID string, limit int, level *string, since *time.Time) ([]TickLogEntry, error)
}

// TickLogEntry represents a log entry
type TickLogEntry struct {
	ID        int
	RunID     string
	Tick      shared.Tick
	Timestamp time.Time
	Level     string
	Message   string
	Metadata  map[string]interface{}
}

// GormTickLogRepository is a GORM-based implementation
type GormTickLogRepository struct {
	db    *gorm.DB
	clock shared.Clock

	// Deduplication cache
	dedupCache   map[string]time.Time // key: runID+message, value: last logged time
	dedupMu      sync.Mutex
	dedupWindow  time.Duration
	dedupMaxSize int
}

// NewGormTickLogRepository creates a new tick log repository.
// If clock is nil, uses RealClock (production behavior)
func NewGormTickLogRepository(db *gorm.DB, clock shared.Clock, dedupWindow time.Duration) *GormTickLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormTickLogRepository{
		db:           db,
		clock:        clock,
		dedupCache:   make(map[string]time.Time),
		dedupWindow:  dedupWindow,
		dedupMaxSize: 10000,
	}
}

// Log writes a log entry with time-windowed deduplication. The same message
// from the same run is stored at most once per window.
func (r *GormTickLogRepository) Log(ctx context.Context, runID string, tick shared.Tick, message, level string, metadata map[string]interface{}) error {
	now := r.clock.Now()
	cacheKey := runID + "|" + message

	r.dedupMu.Lock()
	if lastLogged, exists := r.dedupCache[cacheKey]; exists && now.Sub(lastLogged) < r.dedupWindow {
		r.dedupMu.Unlock()
		return nil
	}
	if len(r.dedupCache) >= r.dedupMaxSize {
		r.cleanupDedupCache(now)
	}
	r.dedupCache[cacheKey] = now
	r.dedupMu.Unlock()

	// Metadata is optional; an unencodable map is stored empty
	var metadataJSON string
	if len(metadata) > 0 {
		if jsonBytes, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	logEntry := &TickLogModel{
		RunID:     runID,
		Tick:      uint32(tick),
		Timestamp: now,
		Level:     level,
		Message:   message,
		Metadata:  metadataJSON,
	}

	return r.db.WithContext(ctx).Create(logEntry).Error
}

// cleanupDedupCache removes entries older than the window.
// Must be called while holding dedupMu lock
func (r *GormTickLogRepository) cleanupDedupCache(now time.Time) {
	cutoff := now.Add(-r.dedupWindow)
	for key, timestamp := range r.dedupCache {
		if timestamp.Before(cutoff) {
			delete(r.dedupCache, key)
		}
	}
}

// GetLogs retrieves logs for a run with optional filtering
func (r *GormTickLogRepository) GetLogs(ctx context.Context, runID string, limit int, level *string, since *time.Time) ([]TickLogEntry, error) {
	var models []TickLogModel

	query := r.db.WithContext(ctx).Where("run_id = ?", runID)
	if level != nil {
		query = query.Where("level = ?", *level)
	}
	if since != nil {
		query = query.Where("timestamp > ?", *since)
	}

	if err := query.Order("timestamp DESC").Order("id DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]TickLogEntry, len(models))
	for i, model := range models {
		var metadata map[string]interface{}
		if model.Metadata != "" {
			if err := json.Unmarshal([]byte(model.Metadata), &metadata); err != nil {
				metadata = nil
			}
		}

		entries[i] = TickLogEntry{
			ID:        model.ID,
			RunID:     model.RunID,
			Tick:      shared.Tick(model.Tick),
			Timestamp: model.Timestamp,
			Level:     model.Level,
			Message:   model.Message,
			Metadata:  metadata,
		}
	}

	return entries, nil
}
