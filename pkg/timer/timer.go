package timer

import (
	"sync"
	"time"
)

// State is the run state of a Timer.
type State int

const (
	None State = iota
	Started
	Paused
	Resumed
	Stopped
	Restarted
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case None:
		return "None"
	case Started:
		return "Started"
	case Paused:
		return "Paused"
	case Resumed:
		return "Resumed"
	case Stopped:
		return "Stopped"
	case Restarted:
		return "Restarted"
	default:
		return "Unknown"
	}
}

// DefaultLimit is the run-time limit of a freshly created Timer.
const DefaultLimit = 100000 * time.Second

// Timer tracks elapsed run time, excluding paused intervals, against a limit.
//
// Timestamps are stored offset-adjusted: each records clock.Now() minus
// the accumulated pause offset at the moment it was taken.
type Timer struct {
	mu sync.Mutex

	id    int
	name  string
	clock Clock
	state State

	started   time.Duration
	paused    time.Duration
	resumed   time.Duration
	stopped   time.Duration
	restarted time.Duration
	offset    time.Duration
	limit     time.Duration
}

func newTimer(id int, name string, clock Clock) *Timer {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Timer{
		id:    id,
		name:  name,
		clock: clock,
		state: None,
		limit: DefaultLimit,
	}
}

// ID returns the identifier assigned by the Factory that built the timer.
func (t *Timer) ID() int { return t.id }

// Name returns the display name of the timer.
func (t *Timer) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name
}

// SetName replaces the display name.
func (t *Timer) SetName(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.name = name
}

// State returns the current timer state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Is reports whether the timer is in state s.
func (t *Timer) Is(s State) bool {
	return t.State() == s
}

// Now returns the timer clock's current reading.
func (t *Timer) Now() time.Duration {
	return t.clock.Now()
}

func (t *Timer) nowOffset() time.Duration {
	return t.clock.Now() - t.offset
}

// Start begins timing from None, Stopped or Restarted.
func (t *Timer) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case None, Stopped, Restarted:
		t.started = t.nowOffset()
		t.state = Started
		return true
	}
	return false
}

// Pause marks the start of an interval excluded from Elapsed.
func (t *Timer) Pause() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case Started, Resumed:
		t.paused = t.nowOffset()
		t.state = Paused
		return true
	}
	return false
}

// Resume ends a paused interval and folds its length into the offset.
func (t *Timer) Resume() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Paused {
		return false
	}
	t.resumed = t.nowOffset()
	t.offset += t.resumed - t.paused
	t.state = Resumed
	return true
}

// Stop ends timing. Elapsed reports zero until the timer is started again.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == None || t.state == Stopped {
		return false
	}
	t.stopped = t.nowOffset()
	t.state = Stopped
	return true
}

// Restart clears all timestamps and the pause offset. The limit is kept.
func (t *Timer) Restart() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == None {
		return false
	}
	t.started = 0
	t.paused = 0
	t.resumed = 0
	t.stopped = 0
	t.offset = 0
	t.restarted = t.clock.Now()
	t.state = Restarted
	return true
}

// IsRunning reports whether the timer has been started and not stopped or
// restarted since. A paused timer counts as running.
func (t *Timer) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running()
}

func (t *Timer) running() bool {
	return t.state == Started || t.state == Resumed || t.state == Paused
}

// Elapsed returns run time excluding completed pauses. While paused the
// value keeps growing until Resume folds the pause into the offset.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed()
}

func (t *Timer) elapsed() time.Duration {
	if !t.running() {
		return 0
	}
	return t.clock.Now() - t.started - t.offset
}

// Remaining returns the limit minus Elapsed.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.limit - t.elapsed()
}

// Limit returns the configured run-time limit.
func (t *Timer) Limit() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.limit
}

// SetLimit replaces the run-time limit.
func (t *Timer) SetLimit(limit time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.limit = limit
}

// Offset returns the total length of completed pauses.
func (t *Timer) Offset() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset
}

// StartedAt returns the offset-adjusted start timestamp.
func (t *Timer) StartedAt() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

// PausedAt returns the offset-adjusted timestamp of the last pause.
func (t *Timer) PausedAt() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// ResumedAt returns the offset-adjusted timestamp of the last resume.
func (t *Timer) ResumedAt() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resumed
}

// StoppedAt returns the offset-adjusted timestamp of the last stop.
func (t *Timer) StoppedAt() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// RestartedAt returns the clock reading of the last restart.
func (t *Timer) RestartedAt() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.restarted
}
