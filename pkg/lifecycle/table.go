package lifecycle

// MaxSuccessors bounds how many entries Transition inspects in a row.
const MaxSuccessors = 8

// Table is the immutable transition graph: for every state, the ordered
// list of states reachable from it in one step. Order is scan order.
type Table struct {
	rows [NumStates][]RunState
}

// DefaultTable returns the standard lifecycle graph. Every row starts with
// its own state; that entry never matches because self-transitions are
// rejected before the scan.
func DefaultTable() *Table {
	t := &Table{}
	t.rows[Uninitialized] = []RunState{Uninitialized, Initializing}
	t.rows[Initializing] = []RunState{Initializing, Initialized, Exiting, Killing}
	t.rows[Initialized] = []RunState{Initialized, Starting, Exiting, Killing}
	t.rows[Starting] = []RunState{Starting, Started, Restarting, Exiting, Killing}
	t.rows[Started] = []RunState{Started, Pausing, Stopping, Restarting, Exiting, Killing}
	t.rows[Pausing] = []RunState{Pausing, Paused, Resuming, Restarting, Exiting, Killing}
	t.rows[Paused] = []RunState{Paused, Resuming, Restarting, Exiting, Killing}
	t.rows[Resuming] = []RunState{Resuming, Resumed, Stopping, Restarting, Exiting, Killing}
	t.rows[Resumed] = []RunState{Resumed, Pausing, Stopping, Restarting, Exiting, Killing}
	t.rows[Stopping] = []RunState{Stopping, Stopped, Restarting, Exiting, Killing}
	t.rows[Stopped] = []RunState{Stopped, Starting, Restarting, Exiting, Killing}
	t.rows[Restarting] = []RunState{Restarting, Restarted, Exiting, Killing}
	t.rows[Restarted] = []RunState{Restarted, Restarting, Starting, Exiting, Killing}
	t.rows[Exiting] = []RunState{Exiting, Exited, Killing}
	t.rows[Exited] = []RunState{Exited, Killing}
	t.rows[Killing] = []RunState{Killing, Killed}
	t.rows[Killed] = []RunState{Killed, Uninitialized}
	return t
}

// Successors returns a copy of the row for from, or nil for an invalid state.
func (t *Table) Successors(from RunState) []RunState {
	if !from.Valid() {
		return nil
	}
	row := t.rows[from]
	out := make([]RunState, len(row))
	copy(out, row)
	return out
}

// CanTransition reports whether to appears in from's successor list.
func (t *Table) CanTransition(from, to RunState) bool {
	if !from.Valid() {
		return false
	}
	for _, s := range t.rows[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition resolves a requested move from current to target.
// It returns (target, true) on the first matching successor, and
// (current, false) for a no-op request, an out-of-range target, or a
// target that is not listed within the first MaxSuccessors entries.
func (t *Table) Transition(current, target RunState) (RunState, bool) {
	if target == current {
		return current, false
	}
	if !target.Valid() || !current.Valid() {
		return current, false
	}
	row := t.rows[current]
	for i := 0; i < len(row) && i < MaxSuccessors; i++ {
		if row[i] == target {
			return target, true
		}
	}
	return current, false
}
