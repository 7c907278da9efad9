package lifecycle

// RunState is the lifecycle phase of a controlled application.
//
// The numeric order is meaningful: loops compare states with < and >=,
// so new states must not be inserted in the middle.
type RunState int

const (
	Uninitialized RunState = iota
	Initializing
	Initialized
	Starting
	Started
	Pausing
	Paused
	Resuming
	Resumed
	Stopping
	Stopped
	Restarting
	Restarted
	Exiting
	Exited
	Killing
	Killed
)

// NumStates is the number of enumerated run states.
const NumStates = int(Killed) + 1

var stateNames = [NumStates]string{
	"Uninitialized", "Initializing", "Initialized", "Starting", "Started",
	"Pausing", "Paused", "Resuming", "Resumed", "Stopping",
	"Stopped", "Restarting", "Restarted", "Exiting", "Exited",
	"Killing", "Killed",
}

// String returns a human-readable representation of the state.
func (s RunState) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return stateNames[s]
}

// Valid reports whether s is one of the enumerated states.
func (s RunState) Valid() bool {
	return s >= Uninitialized && s <= Killed
}

// IsActiveVerb reports whether s is one of the "-ing" states that an
// operator command can request.
func (s RunState) IsActiveVerb() bool {
	switch s {
	case Initializing, Starting, Pausing, Resuming, Stopping, Restarting, Exiting, Killing:
		return true
	}
	return false
}

// ParseRunState resolves a state by its exact name.
func ParseRunState(name string) (RunState, bool) {
	for i, n := range stateNames {
		if n == name {
			return RunState(i), true
		}
	}
	return Uninitialized, false
}

// States returns every run state in numeric order.
func States() []RunState {
	out := make([]RunState, NumStates)
	for i := range out {
		out[i] = RunState(i)
	}
	return out
}

// EventEmitter is called when the run state changes.
type EventEmitter interface {
	OnStateChange(previous, current RunState, reason string)
}
