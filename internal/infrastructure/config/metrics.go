package config

// MetricsConfig controls the Prometheus registry and the endpoint the daemon
// serves it on. The CLI never starts the endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path string `mapstructure:"path"` // scrape path, "/metrics" unless overridden
}
