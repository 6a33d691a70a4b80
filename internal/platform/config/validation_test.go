package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "xup",
			Version:     "1.0.0",
			Environment: "local",
		},
		Doctrine: DoctrineConfig{
			Path:          "xup.yaml",
			WatchDebounce: 250 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "127.0.0.1",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  5 * time.Second,
			MaxRequestSize:  65536,
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		errContains string
	}{
		{
			name:        "missing doctrine path",
			modify:      func(c *Config) { c.Doctrine.Path = "" },
			errContains: "doctrine.path is required",
		},
		{
			name:        "watch debounce too short",
			modify:      func(c *Config) { c.Doctrine.WatchDebounce = time.Millisecond },
			errContains: "doctrine.watch_debounce must be at least 10ms, got 1ms",
		},
		{
			name:        "invalid environment",
			modify:      func(c *Config) { c.App.Environment = "staging" },
			errContains: `app.environment must be one of local, dev, prod, test, got "staging"`,
		},
		{
			name:        "invalid log level",
			modify:      func(c *Config) { c.Log.Level = "verbose" },
			errContains: "log.level must be one of",
		},
		{
			name:        "invalid log format",
			modify:      func(c *Config) { c.Log.Format = "xml" },
			errContains: `log.format must be one of json, text, pretty, got "xml"`,
		},
		{
			name: "log file enabled without path",
			modify: func(c *Config) {
				c.Log.File.Enabled = true
			},
			errContains: "log.file.path is required when log.file.enabled is true",
		},
		{
			name:        "port out of range",
			modify:      func(c *Config) { c.Server.Port = 70000 },
			errContains: "server.port must be at most 65535, got 70000",
		},
		{
			name:        "read timeout too short",
			modify:      func(c *Config) { c.Server.ReadTimeout = 10 * time.Millisecond },
			errContains: "server.read_timeout must be at least 1s, got 10ms",
		},
		{
			name: "telemetry enabled without endpoint",
			modify: func(c *Config) {
				c.Telemetry.Enabled = true
				c.Telemetry.ServiceName = "xup"
			},
			errContains: "telemetry.endpoint is required when telemetry.enabled is true",
		},
		{
			name: "telemetry endpoint not host:port",
			modify: func(c *Config) {
				c.Telemetry.Enabled = true
				c.Telemetry.ServiceName = "xup"
				c.Telemetry.Endpoint = "http://collector"
			},
			errContains: `telemetry.endpoint must be host:port, got "http://collector"`,
		},
		{
			name:        "sampling rate above one",
			modify:      func(c *Config) { c.Telemetry.SamplingRate = 1.5 },
			errContains: "telemetry.sampling_rate must be at most 1, got 1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()

			require.ErrorIs(t, err, ErrInvalidSettings)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestConfig_Validate_TelemetryEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Telemetry = TelemetryConfig{
		Enabled:      true,
		Endpoint:     "localhost:4317",
		ServiceName:  "xup",
		SamplingRate: 0.5,
	}

	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Doctrine.Path = ""
	cfg.Log.Level = "loud"

	err := cfg.Validate()

	require.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, "invalid settings:\n"+
		"  doctrine.path is required\n"+
		"  log.level must be one of trace, debug, info, warn, error, got \"loud\"", err.Error())
}

func TestSettingKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "Config.doctrine.path", expected: "doctrine.path"},
		{input: "Config.log.file.max_size", expected: "log.file.max_size"},
		{input: "port", expected: "port"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, settingKey(tt.input))
		})
	}
}

func TestSiblingKey(t *testing.T) {
	assert.Equal(t, "log.file.enabled", siblingKey("log.file.path", "Enabled"))
	assert.Equal(t, "enabled", siblingKey("path", "Enabled"))
}
