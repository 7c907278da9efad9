package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bft-labs/runctl/internal/ports"
	"github.com/bft-labs/runctl/pkg/lifecycle"
	"github.com/bft-labs/runctl/pkg/timer"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (m *mockLogger) record(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
}

func (m *mockLogger) Debug(msg string, fields ...ports.Field) { m.record(msg) }
func (m *mockLogger) Info(msg string, fields ...ports.Field)  { m.record(msg) }
func (m *mockLogger) Warn(msg string, fields ...ports.Field)  { m.record(msg) }
func (m *mockLogger) Error(msg string, fields ...ports.Field) { m.record(msg) }

func (m *mockLogger) Has(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.msgs {
		if s == msg {
			return true
		}
	}
	return false
}

// mockEmitter tracks state change events for testing.
type mockEmitter struct {
	mu     sync.Mutex
	events []stateChangeEvent
}

type stateChangeEvent struct {
	previous lifecycle.RunState
	current  lifecycle.RunState
	reason   string
}

func (m *mockEmitter) OnStateChange(previous, current lifecycle.RunState, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, stateChangeEvent{previous, current, reason})
}

func (m *mockEmitter) Events() []stateChangeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stateChangeEvent{}, m.events...)
}

// fakeConsole replays queued keys and records what was printed.
type fakeConsole struct {
	mu     sync.Mutex
	keys   []int
	prints []string
	clears int
}

func (f *fakeConsole) Type(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < len(s); i++ {
		f.keys = append(f.keys, int(s[i]))
	}
}

func (f *fakeConsole) Key(k int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, k)
}

func (f *fakeConsole) KeyHit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.keys) > 0
}

func (f *fakeConsole) ReadChar() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k
}

func (f *fakeConsole) ClearScreen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
}

func (f *fakeConsole) Print(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prints = append(f.prints, text)
}

func (f *fakeConsole) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.keys)
}

func (f *fakeConsole) Clears() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clears
}

// fakeShell returns canned output and records the commands it ran.
type fakeShell struct {
	mu       sync.Mutex
	out      string
	err      error
	commands []string
}

func (f *fakeShell) Exec(ctx context.Context, command string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, command)
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func (f *fakeShell) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.commands...)
}

var errLaunch = errors.New("launch failed")

// fakeClock is a manually advanced timer.Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Duration
}

func (c *fakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

type fixture struct {
	ctrl    *Controller
	console *fakeConsole
	shell   *fakeShell
	clock   *fakeClock
	emitter *mockEmitter
	logger  *mockLogger
}

func newFixture(cfg Config) *fixture {
	f := &fixture{
		console: &fakeConsole{},
		shell:   &fakeShell{},
		clock:   &fakeClock{now: time.Second},
		emitter: &mockEmitter{},
		logger:  &mockLogger{},
	}
	if cfg.User == "" {
		cfg.User = "alice"
	}
	if cfg.Host == "" {
		cfg.Host = "box"
	}
	f.ctrl = NewController(cfg, Deps{
		Console: f.console,
		Shell:   f.shell,
		Logger:  f.logger,
		Emitter: f.emitter,
		Timer:   timer.NewFactory(f.clock).New("main"),
	})
	return f
}

// submit types line followed by Enter and processes every key.
func (f *fixture) submit(line string) error {
	f.console.Type(line + "\n")
	for f.console.Pending() > 0 {
		if err := f.ctrl.ProcessInput(context.Background()); err != nil {
			return err
		}
	}
	return nil
}
