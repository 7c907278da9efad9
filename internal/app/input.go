package app

import (
	"context"
	"fmt"

	"github.com/bft-labs/runctl/internal/ports"
	"github.com/bft-labs/runctl/pkg/lifecycle"
)

// Key codes handled by the line editor.
const (
	keyBackspace = 8
	keyEscape    = 27
	keyDelete    = 127
)

// ProcessInput handles at most one waiting key. A completed line that
// names a command dispatches it; any other non-empty line runs through the
// shell and its output becomes the exec text. The returned error is a
// shell launch failure and ends the run.
func (c *Controller) ProcessInput(ctx context.Context) error {
	var (
		line string
		exec bool
	)
	c.do(func() bool {
		if c.state > lifecycle.Exited || !c.console.KeyHit() {
			return false
		}

		ch := c.console.ReadChar()
		switch ch {
		case '\n', '\r', 0:
			line = c.input
			c.input = ""
			if target, ok := c.commands.Resolve(line); ok {
				c.logger.Debug("command", ports.String("token", line), ports.Stringer("target", target))
				c.dispatch(target)
				return true
			}
			exec = line != ""
		case keyBackspace, keyDelete, keyEscape:
			if n := len(c.input); n > 0 {
				c.setInput(c.input[:n-1])
			}
		default:
			c.setInput(c.input + string([]byte{byte(ch)}))
		}
		return true
	})
	if !exec {
		return nil
	}

	out, err := c.shell.Exec(ctx, line)
	if err != nil {
		c.logger.Error("shell command failed", ports.String("command", line), ports.Err(err))
		return fmt.Errorf("exec %q: %w", line, err)
	}

	c.mu.Lock()
	c.execText = out
	c.mu.Unlock()
	return nil
}

// ProcessCycles counts one cycle while running and exits once the cycle
// limit is reached.
func (c *Controller) ProcessCycles() {
	c.do(func() bool {
		if c.isRunning() {
			c.cycles++
		}
		if c.maxCycles > 0 && c.cycles >= c.maxCycles && c.state < lifecycle.Exited {
			c.logger.Warn("cycle limit reached",
				ports.Int64("cycles", c.cycles),
				ports.Int64("max_cycles", c.maxCycles),
			)
			c.doExit()
		}
		return true
	})
}
