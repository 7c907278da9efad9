package app

import (
	"sync"
	"time"

	"github.com/bft-labs/runctl/internal/domain"
	"github.com/bft-labs/runctl/internal/ports"
	"github.com/bft-labs/runctl/pkg/lifecycle"
	"github.com/bft-labs/runctl/pkg/log"
	"github.com/bft-labs/runctl/pkg/timer"
)

// Defaults applied by NewController when a Config field is zero.
const (
	DefaultMaxCycles      int64         = 1_000_000_000
	DefaultRenderInterval time.Duration = 8_333_333 * time.Nanosecond
)

// Config holds the tunables of a Controller.
type Config struct {
	// MaxCycles is the cycle count that triggers an exit. Zero means default.
	MaxCycles int64

	// RenderInterval is the status display refresh period. Zero means default.
	RenderInterval time.Duration

	// PollInterval is the pause between input polls. Zero polls without pausing.
	PollInterval time.Duration

	// User and Host appear in the prompt line.
	User string
	Host string
}

// Deps are the collaborators of a Controller. Console and Shell are required.
type Deps struct {
	Console  ports.Console
	Shell    ports.ShellExecutor
	Renderer ports.Renderer
	Logger   ports.Logger
	Emitter  lifecycle.EventEmitter
	Timer    *timer.Timer
	Table    *lifecycle.Table
	Commands *lifecycle.CommandTable
}

type stateChange struct {
	previous lifecycle.RunState
	current  lifecycle.RunState
	reason   string
}

// Controller drives the run lifecycle of an interactive console program.
//
// All state, buffers, counters and the timer are guarded by one mutex
// shared by the input loop and the render loop. Event handlers are called
// after the mutex is released, in transition order.
type Controller struct {
	mu sync.Mutex

	table    *lifecycle.Table
	commands *lifecycle.CommandTable
	timer    *timer.Timer
	console  ports.Console
	shell    ports.ShellExecutor
	renderer ports.Renderer
	logger   ports.Logger
	emitter  lifecycle.EventEmitter

	state   lifecycle.RunState
	status  bool
	outcome domain.Outcome
	pending []stateChange

	input     string
	output    string
	execText  string
	timerText string
	timerSecs string

	cycles    int64
	maxCycles int64

	renderInterval time.Duration
	pollInterval   time.Duration
	user           string
	host           string
}

// NewController creates a controller in the Uninitialized state.
func NewController(cfg Config, deps Deps) *Controller {
	c := &Controller{
		table:          deps.Table,
		commands:       deps.Commands,
		timer:          deps.Timer,
		console:        deps.Console,
		shell:          deps.Shell,
		renderer:       deps.Renderer,
		logger:         deps.Logger,
		emitter:        deps.Emitter,
		state:          lifecycle.Uninitialized,
		maxCycles:      cfg.MaxCycles,
		renderInterval: cfg.RenderInterval,
		pollInterval:   cfg.PollInterval,
		user:           cfg.User,
		host:           cfg.Host,
	}
	if c.table == nil {
		c.table = lifecycle.DefaultTable()
	}
	if c.commands == nil {
		c.commands = lifecycle.DefaultCommandTable()
	}
	if c.timer == nil {
		c.timer = timer.NewFactory(nil).New("main")
	}
	if c.renderer == nil {
		c.renderer = ports.RenderFunc(domain.StatusView.String)
	}
	if c.logger == nil {
		c.logger = log.NewNoopLogger()
	}
	if c.maxCycles <= 0 {
		c.maxCycles = DefaultMaxCycles
	}
	if c.renderInterval <= 0 {
		c.renderInterval = DefaultRenderInterval
	}
	return c
}

// do runs fn under the lock, then delivers the transitions it produced.
func (c *Controller) do(fn func() bool) bool {
	c.mu.Lock()
	ok := fn()
	events := c.pending
	c.pending = nil
	c.mu.Unlock()

	if c.emitter != nil {
		for _, e := range events {
			c.emitter.OnStateChange(e.previous, e.current, e.reason)
		}
	}
	return ok
}

// setState requires c.mu.
func (c *Controller) setState(target lifecycle.RunState, reason string) bool {
	prev := c.state
	next, ok := c.table.Transition(prev, target)
	c.status = ok
	if !ok {
		c.logger.Debug("transition refused",
			ports.Stringer("from", prev),
			ports.Stringer("to", target),
			ports.String("reason", reason),
		)
		return false
	}

	c.state = next
	c.logger.Info("state transition",
		ports.Stringer("from", prev),
		ports.Stringer("to", next),
		ports.String("reason", reason),
	)
	c.pending = append(c.pending, stateChange{previous: prev, current: next, reason: reason})
	return true
}

// SetState attempts a single table transition to target.
func (c *Controller) SetState(target lifecycle.RunState) bool {
	return c.do(func() bool { return c.setState(target, "set state") })
}

// State returns the current run state.
func (c *Controller) State() lifecycle.RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Is reports whether the controller is in state s.
func (c *Controller) Is(s lifecycle.RunState) bool {
	return c.State() == s
}

// Status returns the result of the last transition or dispatched action.
func (c *Controller) Status() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SetStatus overrides the recorded status and returns it.
func (c *Controller) SetStatus(status bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
	return status
}

// Outcome returns how the run ended, or OutcomeNone while it has not.
func (c *Controller) Outcome() domain.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// IsRunning reports whether the state counts as actively running.
// Paused, Stopped, Restarted and the terminal states do not.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isRunning()
}

func (c *Controller) isRunning() bool {
	s := c.state
	return (s > lifecycle.Uninitialized && s < lifecycle.Paused) ||
		(s >= lifecycle.Resuming && s < lifecycle.Exited &&
			s != lifecycle.Stopped && s != lifecycle.Restarted)
}

// DoInit moves Uninitialized to Initialized.
func (c *Controller) DoInit() bool { return c.do(c.doInit) }

// DoStart moves to Started and starts the timer.
func (c *Controller) DoStart() bool { return c.do(c.doStart) }

// DoPause moves to Paused and pauses the timer.
func (c *Controller) DoPause() bool { return c.do(c.doPause) }

// DoResume moves to Resumed and resumes the timer.
func (c *Controller) DoResume() bool { return c.do(c.doResume) }

// DoStop moves to Stopped, stops the timer and resets the cycle count.
func (c *Controller) DoStop() bool { return c.do(c.doStop) }

// DoRestart moves to Restarted, restarts the timer and clears the input,
// the output and the cycle count.
func (c *Controller) DoRestart() bool { return c.do(c.doRestart) }

// DoExit moves to Exited. When Exited cannot be reached it falls back to
// DoKill, so a failed exit still terminates the run. It reports whether
// Exited was reached.
func (c *Controller) DoExit() bool { return c.do(c.doExit) }

// DoKill moves to Killed and records OutcomeKilled. The process is left
// running; the caller decides how to terminate.
func (c *Controller) DoKill() bool { return c.do(c.doKill) }

func (c *Controller) doInit() bool {
	if c.state != lifecycle.Uninitialized {
		c.status = false
		return false
	}
	return c.setState(lifecycle.Initializing, "init") &&
		c.setState(lifecycle.Initialized, "init")
}

func (c *Controller) doStart() bool {
	if !c.setState(lifecycle.Starting, "start") {
		return false
	}
	c.timer.Start()
	return c.setState(lifecycle.Started, "start")
}

func (c *Controller) doPause() bool {
	if !c.setState(lifecycle.Pausing, "pause") {
		return false
	}
	c.timer.Pause()
	return c.setState(lifecycle.Paused, "pause")
}

func (c *Controller) doResume() bool {
	if !c.setState(lifecycle.Resuming, "resume") {
		return false
	}
	c.timer.Resume()
	return c.setState(lifecycle.Resumed, "resume")
}

func (c *Controller) doStop() bool {
	if !c.setState(lifecycle.Stopping, "stop") {
		return false
	}
	c.timer.Stop()
	c.cycles = 0
	return c.setState(lifecycle.Stopped, "stop")
}

func (c *Controller) doRestart() bool {
	if !c.setState(lifecycle.Restarting, "restart") {
		return false
	}
	c.timer.Restart()
	c.input = ""
	c.output = ""
	c.cycles = 0
	return c.setState(lifecycle.Restarted, "restart")
}

func (c *Controller) doExit() bool {
	if c.setState(lifecycle.Exiting, "exit") && c.setState(lifecycle.Exited, "exit") {
		c.outcome = domain.OutcomeExited
		return true
	}
	c.logger.Warn("exit failed, killing", ports.Stringer("state", c.state))
	c.doKill()
	return false
}

func (c *Controller) doKill() bool {
	if !c.setState(lifecycle.Killing, "kill") {
		return false
	}
	if !c.setState(lifecycle.Killed, "kill") {
		return false
	}
	c.outcome = domain.OutcomeKilled
	return true
}

// Dispatch runs the action for an active verb state and returns the state
// it settles in. The bool is false when target is not a verb or the action
// failed; the recorded status reflects the same result.
func (c *Controller) Dispatch(target lifecycle.RunState) (lifecycle.RunState, bool) {
	var settled lifecycle.RunState
	ok := c.do(func() bool {
		var ok bool
		settled, ok = c.dispatch(target)
		return ok
	})
	return settled, ok
}

// dispatch requires c.mu.
func (c *Controller) dispatch(target lifecycle.RunState) (lifecycle.RunState, bool) {
	var (
		action func() bool
		done   lifecycle.RunState
	)
	switch target {
	case lifecycle.Initializing:
		action, done = c.doInit, lifecycle.Initialized
	case lifecycle.Starting:
		action, done = c.doStart, lifecycle.Started
	case lifecycle.Pausing:
		action, done = c.doPause, lifecycle.Paused
	case lifecycle.Resuming:
		action, done = c.doResume, lifecycle.Resumed
	case lifecycle.Stopping:
		action, done = c.doStop, lifecycle.Stopped
	case lifecycle.Restarting:
		action, done = c.doRestart, lifecycle.Restarted
	case lifecycle.Exiting:
		action, done = c.doExit, lifecycle.Exited
	case lifecycle.Killing:
		action, done = c.doKill, lifecycle.Killed
	default:
		c.status = false
		return c.state, false
	}

	ok := action()
	c.status = ok
	if !ok {
		return c.state, false
	}
	return done, true
}

// Input returns the pending input line.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// SetInput replaces the pending input line, dropping NUL, CR and BS bytes.
func (c *Controller) SetInput(input string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setInput(input)
}

func (c *Controller) setInput(input string) {
	c.input = strip(input, 0, '\r', '\b')
}

// Output returns the last rendered frame.
func (c *Controller) Output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.output
}

// ExecText returns the captured output of the last shell command.
func (c *Controller) ExecText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.execText
}

// Cycles returns the number of cycles counted while running.
func (c *Controller) Cycles() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cycles
}

// SetCycles overwrites the cycle count.
func (c *Controller) SetCycles(n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cycles = n
}

// ResetCycles sets the cycle count to zero.
func (c *Controller) ResetCycles() {
	c.SetCycles(0)
}

// MaxCycles returns the cycle limit.
func (c *Controller) MaxCycles() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxCycles
}

// SetMaxCycles sets the cycle limit. A non-positive n sets the limit to 1
// and returns ErrInvalidMaxCycles.
func (c *Controller) SetMaxCycles(n int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 {
		c.maxCycles = 1
		return domain.ErrInvalidMaxCycles
	}
	c.maxCycles = n
	return nil
}

// TimeLimit returns the run-time limit of the controller's timer.
func (c *Controller) TimeLimit() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.Limit()
}

// SetTimeLimit replaces the run-time limit of the controller's timer.
func (c *Controller) SetTimeLimit(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer.SetLimit(d)
}

// Remaining returns the run time left before the limit.
func (c *Controller) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.Remaining()
}

// Timer returns the controller's timer. Callers must not mutate it while
// the loops are running.
func (c *Controller) Timer() *timer.Timer {
	return c.timer
}

// Commands returns the command table used to resolve input lines.
func (c *Controller) Commands() *lifecycle.CommandTable {
	return c.commands
}

// Table returns the transition table.
func (c *Controller) Table() *lifecycle.Table {
	return c.table
}

func strip(s string, drop ...byte) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		keep := true
		for _, d := range drop {
			if s[i] == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, s[i])
		}
	}
	return string(out)
}
