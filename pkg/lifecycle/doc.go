// Package lifecycle provides the run-state graph and command resolution
// for runctl.
//
// A controlled application is always in exactly one [RunState]. Operator
// requests move it through an "-ing" state into the matching "-ed" state,
// for example Starting then Started. Which moves are legal is decided by a
// [Table], an ordered successor list per state:
//
//	t := lifecycle.DefaultTable()
//	next, ok := t.Transition(lifecycle.Started, lifecycle.Pausing)
//	// next == lifecycle.Pausing, ok == true
//
//	next, ok = t.Transition(lifecycle.Paused, lifecycle.Starting)
//	// next == lifecycle.Paused, ok == false
//
// Requesting the current state is reported as a failure since nothing
// changed.
//
// Operator input is mapped to target states by a [CommandTable]. Each verb
// is reachable by name and by a numeric shortcut:
//
//	init|1 start|2 pause|3 resume|4 stop|5 restart|6 exit|7 kill|8
//
// # Version
//
// Current version: 0.1.0
// Minimum compatible version: 0.1.0
package lifecycle
