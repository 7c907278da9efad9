package domain

import "errors"

// Errors returned by the public API. Check them with errors.Is.
var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("runctl: invalid configuration")

	// ErrShellLaunch is returned when a command line cannot be handed to the shell.
	// A command that runs and exits non-zero is not a launch failure.
	ErrShellLaunch = errors.New("runctl: shell launch failed")

	// ErrInvalidMaxCycles is returned when a non-positive cycle limit is requested.
	ErrInvalidMaxCycles = errors.New("runctl: max cycles must be positive")

	// ErrAlreadyRunning is returned when Run is called on a runner that is running.
	ErrAlreadyRunning = errors.New("runctl: already running")
)
