package runctl

import (
	"context"
	"time"
)

// Plugin extends a Runner with optional behavior that lives for the
// duration of Run.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string

	// Initialize is called before the session starts. A returned error
	// aborts Run after already initialized plugins are shut down.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called after the session ends.
	Shutdown(ctx context.Context) error
}

// PluginConfig is handed to plugins on Initialize.
type PluginConfig struct {
	Logger Logger
	Tuner  Tuner
}

// Tuner adjusts the limits of a running session.
type Tuner interface {
	SetMaxCycles(n int64) error
	SetTimeLimit(d time.Duration)
	MaxCycles() int64
	TimeLimit() time.Duration
}

// EventHandler receives lifecycle notifications.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
}

// StateChangeEvent describes one state transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}
