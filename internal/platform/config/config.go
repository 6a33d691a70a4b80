// Package config provides configuration loading and management using koanf.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "XUP_"

// Default configuration values.
const (
	// DefaultDoctrinePath is the doctrine file read when none is configured,
	// relative to the working directory.
	DefaultDoctrinePath = "xup.yaml"

	// DefaultServerPort is the default HTTP server port for `xup serve`.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (64KB).
	DefaultMaxRequestSize = 64 << 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 10

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Doctrine  DoctrineConfig  `koanf:"doctrine"  validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev prod test"`
}

// DoctrineConfig locates the doctrine document.
type DoctrineConfig struct {
	Path string `koanf:"path" validate:"required"`

	// Watch makes `xup serve` validate the file as soon as it changes.
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce" validate:"required,min=10ms"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// ServerConfig contains HTTP server settings for `xup serve`.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"min=0,max=65535"` // 0 picks a free port
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=100ms"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,hostname_port"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// MetricsConfig contains Prometheus settings for one-shot CLI runs.
type MetricsConfig struct {
	// TextfilePath, when set, receives the run's metrics in the Prometheus
	// text format (node_exporter textfile collector).
	TextfilePath string `koanf:"textfile_path"`
}

// LoadOptions selects the sources layered over the defaults.
type LoadOptions struct {
	// File is an optional settings YAML file. It must exist when set.
	File string

	// Overrides are applied last, keyed by dotted path (e.g. "doctrine.path").
	// Command-line flags land here.
	Overrides map[string]any
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "xup",
		"app.version":     "dev",
		"app.environment": "local",

		"doctrine.path":           DefaultDoctrinePath,
		"doctrine.watch":          false,
		"doctrine.watch_debounce": "250ms",

		"log.level":            "warn",
		"log.format":           "text",
		"log.file.enabled":     false,
		"log.file.path":        "",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"server.port":             DefaultServerPort,
		"server.host":             "127.0.0.1",
		"server.read_timeout":     "10s",
		"server.write_timeout":    "10s",
		"server.idle_timeout":     "60s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "5s",
		"server.max_request_size": DefaultMaxRequestSize,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "xup",
		"telemetry.sampling_rate": 1.0,

		"metrics.textfile_path": "",
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Overrides (command-line flags)
//  2. Environment variables (XUP_ prefix)
//  3. Settings file (opts.File)
//  4. Default values
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading settings file %q: %w", opts.File, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("loading overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// knownKeys maps the underscore form of every default key to its dotted
// form, so XUP_SERVER_READ_TIMEOUT resolves to server.read_timeout.
var knownKeys = func() map[string]string {
	keys := make(map[string]string)
	for k := range defaults() {
		keys[strings.ReplaceAll(k, ".", "_")] = k
	}
	return keys
}()

// envKey converts an environment variable name into a config key.
func envKey(s string) string {
	flat := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if key, ok := knownKeys[flat]; ok {
		return key
	}
	return strings.ReplaceAll(flat, "_", ".")
}

// Keys returns every configurable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for _, k := range knownKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
