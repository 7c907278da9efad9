// Package timer provides a pausable run-time tracker with a time limit.
//
// A [Timer] moves through None, Started, Paused, Resumed, Stopped and
// Restarted. Elapsed time excludes completed pauses; Remaining is the
// configured limit minus Elapsed. Timers are built by a [Factory], which
// owns the ID counter and the [Clock] used for readings.
//
//	f := timer.NewFactory(nil)
//	t := f.New("main")
//	t.SetLimit(10 * time.Second)
//	t.Start()
//	...
//	if t.Remaining() <= 0 {
//	    // out of time
//	}
//
// # Version
//
// Current version: 0.1.0
// Minimum compatible version: 0.1.0
package timer
