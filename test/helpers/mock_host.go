package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/hive-go/internal/application/colony"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// MockHost serves a MockWorld as the current snapshot and advances its tick on Commit
type MockHost struct {
	World     *MockWorld
	Commits   int
	CommitErr error
}

func NewMockHost(w *MockWorld) *MockHost {
	return &MockHost{World: w}
}

func (h *MockHost) Snapshot() world.Snapshot { return h.World }

func (h *MockHost) Commit(ctx context.Context) error {
	if h.CommitErr != nil {
		return h.CommitErr
	}
	h.Commits++
	h.World.Tick++
	return nil
}

// MemoryStore is an in-memory colony.MemoryStore
type MemoryStore struct {
	mu      sync.Mutex
	blob    []byte
	Saves   int
	LoadErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.blob == nil {
		return nil, colony.ErrMemoryNotFound
	}
	return append([]byte(nil), s.blob...), nil
}

func (s *MemoryStore) Save(ctx context.Context, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = append([]byte(nil), blob...)
	s.Saves++
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = nil
	return nil
}

// Blob returns the stored bytes, nil when empty
func (s *MemoryStore) Blob() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blob
}

// RecordedLog is one entry captured by RecordingLogger
type RecordedLog struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

// RecordingLogger captures log entries for assertions
type RecordingLogger struct {
	mu      sync.Mutex
	Entries []RecordedLog
}

func (l *RecordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, RecordedLog{Level: level, Message: message, Metadata: metadata})
}

// Messages returns the logged messages at level
func (l *RecordingLogger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var messages []string
	for _, entry := range l.Entries {
		if entry.Level == level {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}
