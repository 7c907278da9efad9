package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bft-labs/runctl/internal/adapters/shell"
	"github.com/bft-labs/runctl/internal/domain"
)

// Defaults for a run.
const (
	DefaultTimeLimit      = 10 * time.Second
	DefaultMaxCycles      = int64(1_000_000_000)
	DefaultRenderInterval = 8_333_333 * time.Nanosecond
	DefaultPollInterval   = time.Millisecond
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "console"
)

// Config holds CLI configuration for runctl.
type Config struct {
	TimeLimit      time.Duration
	MaxCycles      int64
	RenderInterval time.Duration
	PollInterval   time.Duration

	Shell   string
	NoColor bool

	LogLevel  string
	LogFormat string
	LogFile   string

	Watch    bool
	AutoInit bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		TimeLimit:      DefaultTimeLimit,
		MaxCycles:      DefaultMaxCycles,
		RenderInterval: DefaultRenderInterval,
		PollInterval:   DefaultPollInterval,
		Shell:          shell.DefaultShell(),
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

// Validate checks the configuration. Errors wrap domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.TimeLimit <= 0 {
		return invalid("time limit must be positive")
	}
	if c.MaxCycles <= 0 {
		return invalid("max cycles must be positive")
	}
	if c.RenderInterval <= 0 {
		return invalid("render interval must be positive")
	}
	if c.PollInterval < 0 {
		return invalid("poll interval must not be negative")
	}
	if c.Shell == "" {
		return invalid("shell is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return invalid(err.Error())
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return invalid(fmt.Sprintf("unknown log format %q", c.LogFormat))
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, msg)
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt64 sets the value if positive and the flag was not set.
func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setInt64FromString parses value for environment variables. Non-positive
// numbers are ignored.
func (s *configSetter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
