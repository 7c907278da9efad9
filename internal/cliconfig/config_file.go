package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	TimeLimit      string `toml:"time_limit"`
	MaxCycles      int64  `toml:"max_cycles"`
	RenderInterval string `toml:"render_interval"`
	PollInterval   string `toml:"poll_interval"`
	Shell          string `toml:"shell"`
	NoColor        *bool  `toml:"no_color"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
	LogFile        string `toml:"log_file"`
	Watch          *bool  `toml:"watch"`
	AutoInit       *bool  `toml:"auto_init"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.runctl/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".runctl", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setDuration("time-limit", fc.TimeLimit, &cfg.TimeLimit); err != nil {
		return err
	}
	if err := s.setDuration("render-interval", fc.RenderInterval, &cfg.RenderInterval); err != nil {
		return err
	}
	if err := s.setDuration("poll-interval", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}

	s.setInt64("max-cycles", fc.MaxCycles, &cfg.MaxCycles)

	s.setString("shell", fc.Shell, &cfg.Shell)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)

	s.setBool("no-color", fc.NoColor, &cfg.NoColor)
	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("auto-init", fc.AutoInit, &cfg.AutoInit)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
