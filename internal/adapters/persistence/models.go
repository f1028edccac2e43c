package persistence

import (
	"time"
)

// HiveMemoryModel represents the hive_memory table. One row per memory key
// holds the encoded colony.
type HiveMemoryModel struct {
	Key       string    `gorm:"column:memory_key;primaryKey;not null"`
	Blob      []byte    `gorm:"column:blob;not null"`
	Size      int       `gorm:"column:size;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (HiveMemoryModel) TableName() string {
	return "hive_memory"
}

// TickLogModel represents the tick_logs table
type TickLogModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	RunID     string    `gorm:"column:run_id;not null;index"`
	Tick      uint32    `gorm:"column:tick;not null;default:0"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index"`
	Level     string    `gorm:"column:level;not null"`
	Message   string    `gorm:"column:message;type:text;not null"`
	Metadata  string    `gorm:"column:metadata;type:text"` // JSON as text
}

func (TickLogModel) TableName() string {
	return "tick_logs"
}
