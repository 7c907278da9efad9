package cliconfig

import "os"

// ApplyEnvConfig applies RUNCTL_* environment variables. They override the
// config file but not flags that were set explicitly.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setDuration("time-limit", os.Getenv("RUNCTL_TIME_LIMIT"), &cfg.TimeLimit); err != nil {
		return err
	}
	if err := s.setDuration("render-interval", os.Getenv("RUNCTL_RENDER_INTERVAL"), &cfg.RenderInterval); err != nil {
		return err
	}
	if err := s.setDuration("poll-interval", os.Getenv("RUNCTL_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setInt64FromString("max-cycles", os.Getenv("RUNCTL_MAX_CYCLES"), &cfg.MaxCycles); err != nil {
		return err
	}

	s.setString("shell", os.Getenv("RUNCTL_SHELL"), &cfg.Shell)
	s.setString("log-level", os.Getenv("RUNCTL_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("RUNCTL_LOG_FORMAT"), &cfg.LogFormat)
	s.setString("log-file", os.Getenv("RUNCTL_LOG_FILE"), &cfg.LogFile)

	s.setBoolFromString("no-color", os.Getenv("RUNCTL_NO_COLOR"), &cfg.NoColor)
	s.setBoolFromString("watch", os.Getenv("RUNCTL_WATCH"), &cfg.Watch)
	s.setBoolFromString("auto-init", os.Getenv("RUNCTL_AUTO_INIT"), &cfg.AutoInit)

	return nil
}
