// Package shell runs input lines through the system command interpreter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/bft-labs/runctl/internal/domain"
)

// DefaultShell is the interpreter used when none is configured.
func DefaultShell() string {
	if runtime.GOOS == "windows" {
		return "cmd"
	}
	return "sh"
}

// Executor runs command lines with "<shell> -c" (or "cmd /C" on Windows)
// and captures standard output.
type Executor struct {
	shell string
	flag  string
}

// New returns an executor for the named shell. An empty name selects
// DefaultShell.
func New(shell string) *Executor {
	if shell == "" {
		shell = DefaultShell()
	}
	flag := "-c"
	if shell == "cmd" || shell == "cmd.exe" {
		flag = "/C"
	}
	return &Executor{shell: shell, flag: flag}
}

// Shell returns the interpreter name.
func (e *Executor) Shell() string {
	return e.shell
}

// Exec runs command and returns what it wrote to stdout. A command that
// starts and exits non-zero is not an error.
func (e *Executor) Exec(ctx context.Context, command string) (string, error) {
	cmd := exec.CommandContext(ctx, e.shell, e.flag, command)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.String(), nil
		}
		return "", fmt.Errorf("%w: %s: %v", domain.ErrShellLaunch, e.shell, err)
	}
	return stdout.String(), nil
}
