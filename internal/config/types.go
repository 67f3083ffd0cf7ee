// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"hostprep/pkg/planfile"
)

// Log levels accepted by the configuration.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidRuntimeMode is returned when a default_runtime value is not recognized.
	ErrInvalidRuntimeMode = errors.New("invalid runtime mode")
)

type (
	// LogLevel controls runner log verbosity.
	LogLevel string

	// Config is the effective hostprep configuration.
	Config struct {
		// PlanFile is the plan loaded when --plan is not given.
		PlanFile string `mapstructure:"plan_file"`

		// DefaultRuntime is used by script steps that do not pick one.
		DefaultRuntime planfile.RuntimeMode `mapstructure:"default_runtime"`

		// LogLevel controls runner logging.
		LogLevel LogLevel `mapstructure:"log_level"`

		// ReportDir is where the last-run report is written.
		ReportDir string `mapstructure:"report_dir"`

		// Fetch configures installer downloads.
		Fetch FetchConfig `mapstructure:"fetch"`
	}

	// FetchConfig configures installer downloads.
	FetchConfig struct {
		// MaxResponseBytes bounds installer download size.
		MaxResponseBytes int64 `mapstructure:"max_response_bytes"`

		// RequireChecksum refuses installer steps without a sha256 pin.
		RequireChecksum bool `mapstructure:"require_checksum"`
	}
)

// DefaultConfig returns the built-in defaults applied before any file or
// environment overrides.
func DefaultConfig() *Config {
	return &Config{
		PlanFile:       planfile.DefaultFileName,
		DefaultRuntime: planfile.RuntimeNative,
		LogLevel:       LogLevelInfo,
		Fetch: FetchConfig{
			MaxResponseBytes: 8 << 20,
			RequireChecksum:  false,
		},
	}
}

// IsValid reports whether l is a known log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	}
	return false
}

// Validate checks enum fields after the viper merge. The CUE schema
// already restricts file-sourced values; this guards env overrides.
func (c *Config) Validate() error {
	if !c.LogLevel.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if !c.DefaultRuntime.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRuntimeMode, c.DefaultRuntime)
	}
	return nil
}
