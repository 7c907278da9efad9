package runctl

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bft-labs/runctl/internal/adapters/console"
	logAdapter "github.com/bft-labs/runctl/internal/adapters/log"
	"github.com/bft-labs/runctl/internal/adapters/shell"
	"github.com/bft-labs/runctl/internal/app"
	"github.com/bft-labs/runctl/internal/domain"
	"github.com/bft-labs/runctl/internal/ports"
	"github.com/bft-labs/runctl/pkg/lifecycle"
	"github.com/bft-labs/runctl/pkg/log"
	"github.com/bft-labs/runctl/pkg/timer"
)

// Errors returned by Runner. Check them with errors.Is.
var (
	ErrInvalidConfig    = domain.ErrInvalidConfig
	ErrShellLaunch      = domain.ErrShellLaunch
	ErrInvalidMaxCycles = domain.ErrInvalidMaxCycles
	ErrAlreadyRunning   = domain.ErrAlreadyRunning
)

// Exit codes returned by Run.
const (
	ExitCodeOK     = domain.ExitCodeOK
	ExitCodeError  = domain.ExitCodeError
	ExitCodeKilled = domain.ExitCodeKilled
)

// Config holds the run settings of a Runner.
type Config struct {
	// TimeLimit bounds the run time counted by the timer. Default: 10s
	TimeLimit time.Duration

	// MaxCycles is the cycle count that triggers a clean exit. Default: 1e9
	MaxCycles int64

	// RenderInterval is the status refresh period. Default: 8.333333ms
	RenderInterval time.Duration

	// PollInterval is the pause between input polls. Zero polls continuously.
	PollInterval time.Duration

	// Shell runs lines that are not commands. Default: sh (cmd on Windows)
	Shell string

	// NoColor selects the plain renderer.
	NoColor bool

	// AutoInit runs init before the loop starts.
	AutoInit bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		TimeLimit:      10 * time.Second,
		MaxCycles:      app.DefaultMaxCycles,
		RenderInterval: app.DefaultRenderInterval,
		PollInterval:   time.Millisecond,
		Shell:          shell.DefaultShell(),
	}
}

// Validate checks the configuration. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.TimeLimit <= 0:
		return fmt.Errorf("%w: time limit must be positive", ErrInvalidConfig)
	case c.MaxCycles <= 0:
		return fmt.Errorf("%w: max cycles must be positive", ErrInvalidConfig)
	case c.RenderInterval <= 0:
		return fmt.Errorf("%w: render interval must be positive", ErrInvalidConfig)
	case c.PollInterval < 0:
		return fmt.Errorf("%w: poll interval must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Runner drives one interactive console session through its lifecycle.
// Use New to create one and Run to start it.
type Runner struct {
	cfg    Config
	opts   options
	logger Logger
	timers *timer.Factory

	mu      sync.Mutex
	running bool
	ctrl    *app.Controller
}

// New creates a Runner. Nothing touches the terminal until Run.
func New(cfg Config, opts ...Option) (*Runner, error) {
	if cfg.Shell == "" {
		cfg.Shell = shell.DefaultShell()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logAdapter.NewNoopLogger()
	}
	if o.shell == nil {
		o.shell = shell.New(cfg.Shell)
	}
	if o.renderer == nil {
		if cfg.NoColor {
			o.renderer = console.PlainRenderer{}
		} else {
			o.renderer = console.StyledRenderer{}
		}
	}
	if o.user == "" {
		o.user = console.User()
	}
	if o.host == "" {
		o.host = console.Hostname()
	}

	return &Runner{
		cfg:    cfg,
		opts:   o,
		logger: o.logger,
		timers: timer.NewFactory(o.clock),
	}, nil
}

// Run attaches to the console, initializes plugins and runs the session
// until it exits, is killed, runs out of time or ctx is cancelled. The
// returned code is ExitCodeKilled for a killed session. The caller decides
// whether to exit the process with it.
func (r *Runner) Run(ctx context.Context) (int, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ExitCodeError, ErrAlreadyRunning
	}
	r.running = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	con := r.opts.console
	if con == nil {
		tc, err := console.Open(os.Stdin, os.Stdout)
		if err != nil {
			return ExitCodeError, err
		}
		defer func() {
			if err := tc.Close(); err != nil {
				r.logger.Error("failed to restore terminal", log.Err(err))
			}
		}()
		con = tc
	}

	ctrl := app.NewController(app.Config{
		MaxCycles:      r.cfg.MaxCycles,
		RenderInterval: r.cfg.RenderInterval,
		PollInterval:   r.cfg.PollInterval,
		User:           r.opts.user,
		Host:           r.opts.host,
	}, app.Deps{
		Console:  con,
		Shell:    r.opts.shell,
		Renderer: r.opts.renderer,
		Logger:   r.logger,
		Emitter:  &eventEmitterWrapper{handler: r.opts.eventHandler},
		Timer:    r.timers.New("main"),
	})
	ctrl.SetTimeLimit(r.cfg.TimeLimit)

	r.mu.Lock()
	r.ctrl = ctrl
	r.mu.Unlock()

	initialized, err := r.initPlugins(ctx)
	defer r.shutdownPlugins(initialized)
	if err != nil {
		return ExitCodeError, err
	}

	if r.cfg.AutoInit && !ctrl.DoInit() {
		r.logger.Warn("auto init failed", log.Stringer("state", ctrl.State()))
	}

	code, err := ctrl.Loop(ctx, r.cfg.TimeLimit)
	r.logger.Info("run finished",
		log.Stringer("state", ctrl.State()),
		log.Stringer("outcome", ctrl.Outcome()),
		log.Int64("cycles", ctrl.Cycles()),
		log.Int("exit_code", code),
	)
	return code, err
}

func (r *Runner) initPlugins(ctx context.Context) ([]Plugin, error) {
	cfg := PluginConfig{Logger: r.logger, Tuner: r}
	var done []Plugin
	for _, p := range r.opts.plugins {
		if err := p.Initialize(ctx, cfg); err != nil {
			r.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			return done, fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		r.logger.Info("plugin initialized", log.String("plugin", p.Name()))
		done = append(done, p)
	}
	return done, nil
}

// shutdownPlugins stops plugins in reverse order of initialization.
func (r *Runner) shutdownPlugins(plugins []Plugin) {
	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			r.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			continue
		}
		r.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
	}
}

func (r *Runner) controller() *app.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctrl
}

// State returns the lifecycle state of the current or last session.
func (r *Runner) State() State {
	if c := r.controller(); c != nil {
		return c.State()
	}
	return lifecycle.Uninitialized
}

// Cycles returns the cycle count of the current or last session.
func (r *Runner) Cycles() int64 {
	if c := r.controller(); c != nil {
		return c.Cycles()
	}
	return 0
}

// MaxCycles returns the cycle limit.
func (r *Runner) MaxCycles() int64 {
	if c := r.controller(); c != nil {
		return c.MaxCycles()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.MaxCycles
}

// SetMaxCycles changes the cycle limit, live if a session is running.
// A non-positive n sets the limit to 1 and returns ErrInvalidMaxCycles.
func (r *Runner) SetMaxCycles(n int64) error {
	r.mu.Lock()
	c := r.ctrl
	if n <= 0 {
		r.cfg.MaxCycles = 1
	} else {
		r.cfg.MaxCycles = n
	}
	r.mu.Unlock()

	if c != nil {
		return c.SetMaxCycles(n)
	}
	if n <= 0 {
		return ErrInvalidMaxCycles
	}
	return nil
}

// TimeLimit returns the run-time limit.
func (r *Runner) TimeLimit() time.Duration {
	if c := r.controller(); c != nil {
		return c.TimeLimit()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.TimeLimit
}

// SetTimeLimit changes the run-time limit, live if a session is running.
// Non-positive limits are ignored.
func (r *Runner) SetTimeLimit(d time.Duration) {
	if d <= 0 {
		return
	}
	r.mu.Lock()
	r.cfg.TimeLimit = d
	c := r.ctrl
	r.mu.Unlock()

	if c != nil {
		c.SetTimeLimit(d)
	}
}

// eventEmitterWrapper adapts EventHandler to the controller's emitter.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current lifecycle.RunState, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	})
}

var (
	_ Tuner               = (*Runner)(nil)
	_ ports.Console       = (*console.Console)(nil)
	_ ports.ShellExecutor = (*shell.Executor)(nil)
)
