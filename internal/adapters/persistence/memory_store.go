package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/hive-go/internal/application/colony"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
)

// GormMemoryStore keeps the colony memory blob in a relational table
type GormMemoryStore struct {
	db    *gorm.DB
	key   string
	clock shared.Clock
}

// NewGormMemoryStore creates a memory store for the given key.
// If clock is nil, uses RealClock (production behavior)
func NewGormMemoryStore(db *gorm.DB, key string, clock shared.Clock) *GormMemoryStore {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormMemoryStore{db: db, key: key, clock: clock}
}

// Load returns the stored blob or colony.ErrMemoryNotFound
func (s *GormMemoryStore) Load(ctx context.Context) ([]byte, error) {
	var model HiveMemoryModel
	result := s.db.WithContext(ctx).Where("memory_key = ?", s.key).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, colony.ErrMemoryNotFound
		}
		return nil, fmt.Errorf("failed to load memory %s: %w", s.key, result.Error)
	}
	return model.Blob, nil
}

// Save replaces the stored blob
func (s *GormMemoryStore) Save(ctx context.Context, blob []byte) error {
	model := &HiveMemoryModel{
		Key:       s.key,
		Blob:      blob,
		Size:      len(blob),
		UpdatedAt: s.clock.Now(),
	}
	if err := s.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save memory %s: %w", s.key, err)
	}
	return nil
}

// Clear deletes the stored blob; clearing an empty store is not an error
func (s *GormMemoryStore) Clear(ctx context.Context) error {
	result := s.db.WithContext(ctx).Where("memory_key = ?", s.key).Delete(&HiveMemoryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear memory %s: %w", s.key, result.Error)
	}
	return nil
}
