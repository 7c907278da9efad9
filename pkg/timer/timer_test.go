package timer

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now += d }

func newTestTimer() (*Timer, *fakeClock) {
	clk := &fakeClock{now: time.Second}
	return NewFactory(clk).New("test"), clk
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{None, "None"},
		{Started, "Started"},
		{Paused, "Paused"},
		{Resumed, "Resumed"},
		{Stopped, "Stopped"},
		{Restarted, "Restarted"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimer_Transitions(t *testing.T) {
	tm, _ := newTestTimer()

	steps := []struct {
		name string
		op   func() bool
		want bool
		end  State
	}{
		{"pause before start", tm.Pause, false, None},
		{"resume before start", tm.Resume, false, None},
		{"stop before start", tm.Stop, false, None},
		{"restart before start", tm.Restart, false, None},
		{"start", tm.Start, true, Started},
		{"start twice", tm.Start, false, Started},
		{"resume while started", tm.Resume, false, Started},
		{"pause", tm.Pause, true, Paused},
		{"pause twice", tm.Pause, false, Paused},
		{"resume", tm.Resume, true, Resumed},
		{"pause after resume", tm.Pause, true, Paused},
		{"stop while paused", tm.Stop, true, Stopped},
		{"stop twice", tm.Stop, false, Stopped},
		{"start after stop", tm.Start, true, Started},
		{"restart", tm.Restart, true, Restarted},
		{"restart twice", tm.Restart, true, Restarted},
		{"start after restart", tm.Start, true, Started},
	}

	for _, s := range steps {
		if got := s.op(); got != s.want {
			t.Fatalf("%s: got %v, want %v", s.name, got, s.want)
		}
		if tm.State() != s.end {
			t.Fatalf("%s: state = %v, want %v", s.name, tm.State(), s.end)
		}
	}
}

func TestTimer_ElapsedExcludesPauses(t *testing.T) {
	tm, clk := newTestTimer()

	if tm.Elapsed() != 0 {
		t.Fatalf("Elapsed() before start = %v, want 0", tm.Elapsed())
	}

	tm.Start()
	clk.Advance(3 * time.Second)
	tm.Pause()
	clk.Advance(5 * time.Second)
	tm.Resume()
	clk.Advance(2 * time.Second)

	if got, want := tm.Elapsed(), 5*time.Second; got != want {
		t.Errorf("Elapsed() = %v, want %v", got, want)
	}
	if got, want := tm.Offset(), 5*time.Second; got != want {
		t.Errorf("Offset() = %v, want %v", got, want)
	}
}

func TestTimer_ElapsedGrowsWhilePaused(t *testing.T) {
	tm, clk := newTestTimer()

	tm.Start()
	clk.Advance(time.Second)
	tm.Pause()
	before := tm.Elapsed()
	clk.Advance(time.Second)

	if tm.Elapsed() <= before {
		t.Errorf("Elapsed() while paused did not grow: %v <= %v", tm.Elapsed(), before)
	}
	if !tm.IsRunning() {
		t.Error("IsRunning() = false while paused, want true")
	}
}

func TestTimer_RepeatedPauses(t *testing.T) {
	tm, clk := newTestTimer()

	tm.Start()
	for i := 0; i < 4; i++ {
		clk.Advance(time.Second)
		tm.Pause()
		clk.Advance(10 * time.Second)
		tm.Resume()
	}

	if got, want := tm.Elapsed(), 4*time.Second; got != want {
		t.Errorf("Elapsed() = %v, want %v", got, want)
	}
}

func TestTimer_StopAndRestartReset(t *testing.T) {
	tm, clk := newTestTimer()

	tm.Start()
	clk.Advance(time.Second)
	tm.Pause()
	clk.Advance(time.Second)
	tm.Resume()

	tm.Stop()
	if tm.Elapsed() != 0 {
		t.Errorf("Elapsed() after stop = %v, want 0", tm.Elapsed())
	}
	if tm.IsRunning() {
		t.Error("IsRunning() after stop = true")
	}

	tm.Restart()
	if tm.Offset() != 0 || tm.StartedAt() != 0 || tm.PausedAt() != 0 ||
		tm.ResumedAt() != 0 || tm.StoppedAt() != 0 {
		t.Error("Restart() did not clear timestamps and offset")
	}
	if tm.RestartedAt() != clk.Now() {
		t.Errorf("RestartedAt() = %v, want %v", tm.RestartedAt(), clk.Now())
	}
}

func TestTimer_Remaining(t *testing.T) {
	tm, clk := newTestTimer()

	if tm.Limit() != DefaultLimit {
		t.Fatalf("Limit() = %v, want %v", tm.Limit(), DefaultLimit)
	}

	tm.SetLimit(10 * time.Second)
	tm.Start()
	clk.Advance(4 * time.Second)
	if got, want := tm.Remaining(), 6*time.Second; got != want {
		t.Errorf("Remaining() = %v, want %v", got, want)
	}

	clk.Advance(7 * time.Second)
	if tm.Remaining() >= 0 {
		t.Errorf("Remaining() = %v, want negative", tm.Remaining())
	}

	tm.Restart()
	if tm.Limit() != 10*time.Second {
		t.Errorf("Restart() changed limit to %v", tm.Limit())
	}
}

func TestFactory_Naming(t *testing.T) {
	f := NewFactory(&fakeClock{})

	a := f.New("main")
	b := f.New("")

	if a.ID() != 1 || b.ID() != 2 {
		t.Errorf("IDs = %d, %d, want 1, 2", a.ID(), b.ID())
	}
	if a.Name() != "Timer [1]-(main)" {
		t.Errorf("Name() = %q", a.Name())
	}
	if b.Name() != "Timer_2" {
		t.Errorf("Name() = %q", b.Name())
	}
	if f.Count() != 2 {
		t.Errorf("Count() = %d, want 2", f.Count())
	}

	other := NewFactory(&fakeClock{})
	if got := other.New("x").ID(); got != 1 {
		t.Errorf("independent factory ID = %d, want 1", got)
	}
}

func TestSystemClock_Monotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.Now()
	b := c.Now()
	if b < a {
		t.Errorf("Now() went backwards: %v then %v", a, b)
	}
}
