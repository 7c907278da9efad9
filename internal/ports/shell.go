package ports

import "context"

// ShellExecutor runs a line the command table did not recognise.
type ShellExecutor interface {
	// Exec runs command and returns its standard output. The error is
	// non-nil only when the command could not be launched; a non-zero exit
	// status still returns the captured output and a nil error.
	Exec(ctx context.Context, command string) (string, error)
}
