package configs

import (
	"errors"
	"fmt"
	"strings"

	"usage-analytics/internal/shared/validators"

	"github.com/spf13/viper"
)

const envPrefix = "USAGE_ANALYTICS"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "usage-analytics.db")
	v.SetDefault("store.project_id", "")
	v.SetDefault("analytics.namespace", "analytics")
	v.SetDefault("analytics.timezone", "UTC")
	v.SetDefault("info.namespace", "ArcInfo")
	v.SetDefault("rollup.page_size", 10000)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.max_size_mb", 64)
	v.SetDefault("cache.redis_address", "")
	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.daily", "0 1 * * *")
	v.SetDefault("scheduler.weekly", "0 2 * * 1")
	v.SetDefault("scheduler.monthly", "0 3 1 * *")
	v.SetDefault("rate_limit.record_per_minute", 120)
}

// LoadConfig reads configuration from file, applies USAGE_ANALYTICS_*
// environment overrides (e.g. USAGE_ANALYTICS_STORE_DSN) and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		var ve validators.ValidationErrors
		if errors.As(err, &ve) {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()

	// "Config.Store.ProjectID" -> "store.projectid"
	if parts := strings.Split(e.StructNamespace(), "."); len(parts) >= 2 {
		field = strings.ToLower(strings.Join(parts[1:], "."))
	}

	switch e.Tag() {
	case "required", "required_if", "required_unless":
		return fmt.Sprintf("%s (required)", field)
	case "min", "max", "oneof":
		return fmt.Sprintf("%s (%s=%s)", field, e.Tag(), e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, e.Tag())
	}
}
