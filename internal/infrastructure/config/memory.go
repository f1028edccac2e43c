package config

// Memory backends
const (
	MemoryBackendDatabase = "database"
	MemoryBackendFile     = "file"
	MemoryBackendRedis    = "redis"
)

// MemoryConfig selects where the colony memory blob is kept between ticks
type MemoryConfig struct {
	// Backend: database, file or redis
	Backend string `mapstructure:"backend" validate:"required,oneof=database file redis"`

	// Key names the blob inside the backend (row key, redis key)
	Key string `mapstructure:"key" validate:"required"`

	// GenesisRoom is where a new hive is founded; empty means the first room the host reports
	GenesisRoom string `mapstructure:"genesis_room" validate:"omitempty,room_name"`

	File  FileMemoryConfig  `mapstructure:"file"`
	Redis RedisMemoryConfig `mapstructure:"redis"`
}

// FileMemoryConfig configures the compressed snapshot file backend
type FileMemoryConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// RedisMemoryConfig configures the redis backend
type RedisMemoryConfig struct {
	// URL takes precedence over Address/DB when set
	URL      string `mapstructure:"url"`
	Address  string `mapstructure:"address" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}
