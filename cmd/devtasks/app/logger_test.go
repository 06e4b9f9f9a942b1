package app

import (
	"testing"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default level when no flags set",
			config:   &Config{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			config:   &Config{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			config:   &Config{Quiet: true},
			expected: "warn",
		},
		{
			name:     "both flags prefer quiet",
			config:   &Config{Verbose: true, Quiet: true},
			expected: "warn",
		},
		{
			name:     "explicit log-level overrides verbose",
			config:   &Config{LogLevel: "error", Verbose: true},
			expected: "error",
		},
		{
			name:     "explicit log-level overrides quiet",
			config:   &Config{LogLevel: "trace", Quiet: true},
			expected: "trace",
		},
		{
			name:     "environment used without flags",
			config:   &Config{EnvLogLevel: "warn"},
			expected: "warn",
		},
		{
			name:     "verbose overrides environment",
			config:   &Config{EnvLogLevel: "error", Verbose: true},
			expected: "debug",
		},
		{
			name:     "invalid log-level falls back to info",
			config:   &Config{LogLevel: "loud"},
			expected: "info",
		},
		{
			name:     "invalid environment falls back to info",
			config:   &Config{EnvLogLevel: "loud"},
			expected: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineLogLevel(tt.config); got != tt.expected {
				t.Errorf("determineLogLevel() = %s, want %s", got, tt.expected)
			}
		})
	}
}

// TestValidateLogLevel tests log level validation.
func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		if got := validateLogLevel(level); got != level {
			t.Errorf("validateLogLevel(%q) = %q", level, got)
		}
	}
	if got := validateLogLevel("fatal"); got != "info" {
		t.Errorf("validateLogLevel(fatal) = %q, want info", got)
	}
}

// TestNewLogger verifies the logger level follows the config.
func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{Verbose: true, LogFormat: "json", LogOutput: "stderr"})
	if logger.GetLevel().String() != "debug" {
		t.Errorf("level = %s, want debug", logger.GetLevel())
	}
}
