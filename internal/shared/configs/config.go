package configs

// Embedded zone database for analytics.timezone on images without one.
import _ "time/tzdata"

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Store     StoreConfig     `mapstructure:"store" validate:"required"`
	Analytics AnalyticsConfig `mapstructure:"analytics" validate:"required"`
	Info      InfoConfig      `mapstructure:"info" validate:"required"`
	Rollup    RollupConfig    `mapstructure:"rollup" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Driver    string `mapstructure:"driver" validate:"required,oneof=sqlite postgres firestore"`
	DSN       string `mapstructure:"dsn" validate:"required_unless=Driver firestore"`
	ProjectID string `mapstructure:"project_id" validate:"required_if=Driver firestore"`
}

// AnalyticsConfig holds the event namespace and the location whose
// midnight bounds every period.
type AnalyticsConfig struct {
	Namespace string `mapstructure:"namespace" validate:"required"`
	Timezone  string `mapstructure:"timezone" validate:"required,timezone"`
}

// InfoConfig holds the namespace of the public message feed.
type InfoConfig struct {
	Namespace string `mapstructure:"namespace" validate:"required"`
}

// RollupConfig holds rollup configuration.
type RollupConfig struct {
	PageSize int `mapstructure:"page_size" validate:"min=2000,max=10000"`
}

// CacheConfig holds query result cache configuration.
type CacheConfig struct {
	Backend      string `mapstructure:"backend" validate:"required,oneof=none memory redis"`
	TTLSeconds   int    `mapstructure:"ttl_seconds" validate:"min=1"`
	MaxSizeMB    int    `mapstructure:"max_size_mb" validate:"required_if=Backend memory"`
	RedisAddress string `mapstructure:"redis_address" validate:"required_if=Backend redis"`
}

// SchedulerConfig holds the in-process rollup cron specs.
type SchedulerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Daily   string `mapstructure:"daily"`
	Weekly  string `mapstructure:"weekly"`
	Monthly string `mapstructure:"monthly"`
}

// RateLimitConfig holds per-IP request limits. Zero disables a limit.
type RateLimitConfig struct {
	RecordPerMinute int `mapstructure:"record_per_minute" validate:"min=0"`
}
