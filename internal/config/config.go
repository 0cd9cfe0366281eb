// Package config provides configuration loading and validation for the
// mDNS bridge.
//
// Configuration is loaded with the following priority (highest to lowest):
//  1. Command-line flags (not handled here, see cmd/mdnsbridged/main.go)
//  2. Environment variables (MDNSBRIDGE_* prefix)
//  3. YAML config file (if specified with --config)
//  4. Hardcoded defaults
//
// Environment variables are mapped from MDNSBRIDGE_CATEGORY_SETTING format,
// e.g., MDNSBRIDGE_ADMIN_API_PORT maps to admin_api.port in YAML.
//
// All configuration is validated during Load() to ensure correctness early.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/mdnsbridge/mdnsbridge/internal/helpers"
)

// initConfig sets up the config loader with defaults, env binding, and config file.
func initConfig(configPath string) (*viper.Viper, error) {
	v := viper.New()

	setDefaults(v)

	// Uses MDNSBRIDGE_ prefix: MDNSBRIDGE_RATE_LIMIT_QPS -> rate_limit.qps
	v.SetEnvPrefix("MDNSBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

// setDefaults configures all default values.
func setDefaults(v *viper.Viper) {
	// Listener defaults
	v.SetDefault("listener.workers_per_socket", "auto")
	v.SetDefault("listener.read_buffer_bytes", 4*1024*1024)

	// Logging defaults
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.structured", false)
	v.SetDefault("logging.structured_format", "json")
	v.SetDefault("logging.include_pid", false)
	v.SetDefault("logging.extra_fields", map[string]string{})

	// Rate limiting defaults
	v.SetDefault("rate_limit.qps", 50.0)
	v.SetDefault("rate_limit.burst", 100)
	v.SetDefault("rate_limit.cleanup_seconds", 60.0)
	v.SetDefault("rate_limit.max_entries", 16384)

	// Publisher defaults
	v.SetDefault("publisher.sink", "stdout")
	v.SetDefault("publisher.path", "")

	// Admin API defaults: enabled, loopback-only, distinct from the
	// mDNS port itself.
	v.SetDefault("admin_api.enabled", true)
	v.SetDefault("admin_api.host", "127.0.0.1")
	v.SetDefault("admin_api.port", 8090)
	v.SetDefault("admin_api.recent_buffer_size", 50)
}

// loadFromSource loads configuration from file and environment.
func loadFromSource(configPath string) (*Config, error) {
	v, err := initConfig(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}

	loadListenerConfig(v, cfg)
	loadLoggingConfig(v, cfg)
	loadRateLimitConfig(v, cfg)
	loadPublisherConfig(v, cfg)
	loadAdminAPIConfig(v, cfg)

	if err := normalizeConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadListenerConfig(v *viper.Viper, cfg *Config) {
	cfg.Listener.ReadBufferBytes = v.GetInt("listener.read_buffer_bytes")
	cfg.Listener.WorkersPerSocketRaw = v.GetString("listener.workers_per_socket")
	cfg.Listener.WorkersPerSocket = parseWorkers(cfg.Listener.WorkersPerSocketRaw)
}

func loadLoggingConfig(v *viper.Viper, cfg *Config) {
	cfg.Logging.Level = strings.ToUpper(v.GetString("logging.level"))
	cfg.Logging.Structured = v.GetBool("logging.structured")
	cfg.Logging.StructuredFormat = v.GetString("logging.structured_format")
	cfg.Logging.IncludePID = v.GetBool("logging.include_pid")
	cfg.Logging.ExtraFields = v.GetStringMapString("logging.extra_fields")
}

func loadRateLimitConfig(v *viper.Viper, cfg *Config) {
	cfg.RateLimit.QPS = v.GetFloat64("rate_limit.qps")
	cfg.RateLimit.Burst = v.GetInt("rate_limit.burst")
	cfg.RateLimit.CleanupSeconds = v.GetFloat64("rate_limit.cleanup_seconds")
	cfg.RateLimit.MaxEntries = v.GetInt("rate_limit.max_entries")
}

func loadPublisherConfig(v *viper.Viper, cfg *Config) {
	cfg.Publisher.Sink = strings.ToLower(v.GetString("publisher.sink"))
	cfg.Publisher.Path = v.GetString("publisher.path")
}

func loadAdminAPIConfig(v *viper.Viper, cfg *Config) {
	cfg.AdminAPI.Enabled = v.GetBool("admin_api.enabled")
	cfg.AdminAPI.Host = v.GetString("admin_api.host")
	cfg.AdminAPI.Port = v.GetInt("admin_api.port")
	cfg.AdminAPI.RecentBufSize = v.GetInt("admin_api.recent_buffer_size")
}

// parseWorkers converts the workers string to WorkerSetting.
func parseWorkers(raw string) WorkerSetting {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == "auto" {
		return WorkerSetting{Mode: WorkersAuto}
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return WorkerSetting{Mode: WorkersFixed, Value: n}
	}
	return WorkerSetting{Mode: WorkersAuto}
}

// normalizeConfig validates and normalizes the configuration.
func normalizeConfig(cfg *Config) error {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	if cfg.Publisher.Sink == "" {
		cfg.Publisher.Sink = "stdout"
	}
	if cfg.Publisher.Sink != "stdout" && cfg.Publisher.Sink != "jsonlines" {
		return fmt.Errorf("publisher.sink must be \"stdout\" or \"jsonlines\", got %q", cfg.Publisher.Sink)
	}

	if cfg.AdminAPI.Host == "" {
		cfg.AdminAPI.Host = "127.0.0.1"
	}
	if cfg.AdminAPI.Enabled {
		if cfg.AdminAPI.Port <= 0 || cfg.AdminAPI.Port > 65535 {
			return errors.New("admin_api.port must be 1..65535")
		}
	}
	if cfg.AdminAPI.RecentBufSize <= 0 {
		cfg.AdminAPI.RecentBufSize = 50
	}
	cfg.AdminAPI.RecentBufSize = helpers.ClampInt(cfg.AdminAPI.RecentBufSize, 1, 10000)
	cfg.RateLimit.MaxEntries = helpers.ClampInt(cfg.RateLimit.MaxEntries, 1, 1<<20)

	return nil
}
