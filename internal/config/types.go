// Package config provides configuration loading for the mDNS bridge using
// Viper. Configuration is loaded from a YAML file with automatic
// environment variable binding.
//
// Environment variables use the MDNSBRIDGE_ prefix and underscore-separated
// keys:
//   - MDNSBRIDGE_LISTENER_WORKERS_PER_SOCKET -> listener.workers_per_socket
//   - MDNSBRIDGE_RATE_LIMIT_QPS -> rate_limit.qps
//   - MDNSBRIDGE_ADMIN_API_PORT -> admin_api.port
package config

import (
	"os"
	"strconv"
	"strings"
)

// WorkersMode specifies how worker count is determined.
type WorkersMode int

const (
	// WorkersAuto leaves the worker count at the listener's default
	// (listener.DefaultWorkersPerSocket).
	WorkersAuto WorkersMode = iota
	// WorkersFixed uses a specific worker count.
	WorkersFixed
)

// WorkerSetting represents the listener's worker-pool size configuration.
type WorkerSetting struct {
	Mode  WorkersMode
	Value int
}

// String returns the string representation of the worker setting.
func (w WorkerSetting) String() string {
	if w.Mode == WorkersAuto {
		return "auto"
	}
	return strconv.Itoa(w.Value)
}

// ListenerConfig contains multicast-socket and worker-pool settings.
type ListenerConfig struct {
	WorkersPerSocket    WorkerSetting `yaml:"-"                     mapstructure:"-"`
	WorkersPerSocketRaw string        `yaml:"workers_per_socket"    mapstructure:"workers_per_socket"`
	ReadBufferBytes     int           `yaml:"read_buffer_bytes"     mapstructure:"read_buffer_bytes"`
}

// LoggingConfig contains logging settings, unchanged in shape from the
// teacher's own config.
type LoggingConfig struct {
	Level            string            `yaml:"level"             mapstructure:"level"             json:"level"`
	Structured       bool              `yaml:"structured"        mapstructure:"structured"        json:"structured"`
	StructuredFormat string            `yaml:"structured_format" mapstructure:"structured_format" json:"structured_format"`
	IncludePID       bool              `yaml:"include_pid"       mapstructure:"include_pid"       json:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields"      mapstructure:"extra_fields"      json:"extra_fields,omitempty"`
}

// RateLimitConfig controls the listener's per-peer admission control.
// Trimmed from the teacher's global/prefix/IP three-tier shape down to a
// single per-peer tier: mDNS traffic has no meaningful "prefix" grouping
// at LAN scale and no shared global budget worth tracking separately
// from the per-peer one.
type RateLimitConfig struct {
	// QPS is the per-peer datagrams-per-second limit (0 disables limiting).
	QPS float64 `yaml:"qps"              mapstructure:"qps"              json:"qps"`
	// Burst is the per-peer token bucket size.
	Burst int `yaml:"burst"            mapstructure:"burst"            json:"burst"`
	// CleanupSeconds is how often stale peer entries are swept.
	CleanupSeconds float64 `yaml:"cleanup_seconds"  mapstructure:"cleanup_seconds"  json:"cleanup_seconds"`
	// MaxEntries bounds the number of tracked peer addresses.
	MaxEntries int `yaml:"max_entries"      mapstructure:"max_entries"      json:"max_entries"`
}

// PublisherConfig selects and configures the sink the decoded summaries
// are written to.
type PublisherConfig struct {
	// Sink is "stdout" (slog summary lines) or "jsonlines" (one full
	// JSON object per datagram on Path, or stdout if Path is empty).
	Sink string `yaml:"sink" mapstructure:"sink" json:"sink"`
	Path string `yaml:"path" mapstructure:"path" json:"path"`
}

// AdminAPIConfig contains the admin/introspection HTTP surface settings.
type AdminAPIConfig struct {
	Enabled       bool `yaml:"enabled"         mapstructure:"enabled"`
	Host          string `yaml:"host"          mapstructure:"host"`
	Port          int    `yaml:"port"          mapstructure:"port"`
	RecentBufSize int    `yaml:"recent_buffer_size" mapstructure:"recent_buffer_size"`
}

// Config is the root configuration structure.
type Config struct {
	Listener  ListenerConfig  `yaml:"listener"   mapstructure:"listener"`
	Logging   LoggingConfig   `yaml:"logging"    mapstructure:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Publisher PublisherConfig `yaml:"publisher"  mapstructure:"publisher"`
	AdminAPI  AdminAPIConfig  `yaml:"admin_api"  mapstructure:"admin_api"`
}

// ResolveConfigPath determines the config file path from flag or environment.
func ResolveConfigPath(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	if v := strings.TrimSpace(os.Getenv("MDNSBRIDGE_CONFIG")); v != "" {
		return v
	}
	return ""
}

// Load loads configuration from a YAML file with environment variable overrides.
//
// Configuration priority (highest to lowest):
//  1. Environment variables (MDNSBRIDGE_*)
//  2. Config file values
//  3. Default values
func Load(path string) (*Config, error) {
	return loadFromSource(path)
}
