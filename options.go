package runctl

import (
	"github.com/bft-labs/runctl/internal/domain"
	"github.com/bft-labs/runctl/internal/ports"
	"github.com/bft-labs/runctl/pkg/lifecycle"
	"github.com/bft-labs/runctl/pkg/log"
	"github.com/bft-labs/runctl/pkg/timer"
)

// Re-exported types so callers can implement collaborators without
// importing internal packages.
type (
	// Logger is the structured logging interface from pkg/log.
	Logger = log.Logger

	// LogField is a structured log field.
	LogField = log.Field

	// State is a lifecycle run state.
	State = lifecycle.RunState

	// Console is the terminal the session reads keys from and draws on.
	Console = ports.Console

	// ShellExecutor runs input lines that are not commands.
	ShellExecutor = ports.ShellExecutor

	// Renderer formats a status frame.
	Renderer = ports.Renderer

	// StatusView is one status frame.
	StatusView = domain.StatusView

	// Clock supplies monotonic readings to the run timer.
	Clock = timer.Clock
)

// Option configures optional behavior of a Runner.
type Option func(*options)

type options struct {
	logger       Logger
	console      Console
	shell        ShellExecutor
	renderer     Renderer
	clock        Clock
	eventHandler EventHandler
	plugins      []Plugin
	user         string
	host         string
}

func defaultOptions() options {
	return options{}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConsole replaces the terminal. If not provided, Run opens stdin and
// stdout, switching stdin to raw mode when it is a terminal.
func WithConsole(c Console) Option {
	return func(o *options) {
		o.console = c
	}
}

// WithShell replaces the shell executor built from Config.Shell.
func WithShell(s ShellExecutor) Option {
	return func(o *options) {
		o.shell = s
	}
}

// WithRenderer replaces the status renderer chosen by Config.NoColor.
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithClock sets the clock used by the run timer.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithEventHandler sets a handler for state changes.
// Events are delivered synchronously, in order, after each action.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when Run starts.
// Plugins are initialized in registration order and shut down in reverse.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithIdentity sets the user and host shown in the prompt.
func WithIdentity(user, host string) Option {
	return func(o *options) {
		o.user = user
		o.host = host
	}
}
