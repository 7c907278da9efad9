// Package runctl runs an interactive console session through a fixed
// lifecycle: init, start, pause, resume, stop, restart, exit and kill.
//
// Keys typed at the prompt are collected into a line. A line naming a
// command ("start" or "2", "exit" or "7", ...) moves the session through
// its state table; any other line runs in the shell and its output is
// shown below the status. The status display is redrawn about 120 times a
// second.
//
// Example usage:
//
//	cfg := runctl.DefaultConfig()
//	cfg.TimeLimit = 30 * time.Second
//	r, err := runctl.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	code, err := r.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Exit(code)
package runctl
