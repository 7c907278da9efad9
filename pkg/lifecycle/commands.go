package lifecycle

import (
	"errors"
	"fmt"
)

// ErrInvalidCommand is returned when a command targets a state that no
// do-action handles.
var ErrInvalidCommand = errors.New("lifecycle: invalid command")

// Command binds an operator token to the state it requests.
type Command struct {
	Token  string
	Target RunState
	Arg    string
}

// CommandTable resolves operator tokens to target states.
type CommandTable struct {
	commands []Command
}

// DefaultCommands returns the standard token list: each verb by name and
// by its numeric shortcut.
func DefaultCommands() []Command {
	return []Command{
		{Token: "init", Target: Initializing},
		{Token: "1", Target: Initializing},
		{Token: "start", Target: Starting},
		{Token: "2", Target: Starting},
		{Token: "pause", Target: Pausing},
		{Token: "3", Target: Pausing},
		{Token: "resume", Target: Resuming},
		{Token: "4", Target: Resuming},
		{Token: "stop", Target: Stopping},
		{Token: "5", Target: Stopping},
		{Token: "restart", Target: Restarting},
		{Token: "6", Target: Restarting},
		{Token: "exit", Target: Exiting},
		{Token: "7", Target: Exiting},
		{Token: "kill", Target: Killing},
		{Token: "8", Target: Killing},
	}
}

// NewCommandTable validates cmds and returns a table over a copy of them.
func NewCommandTable(cmds []Command) (*CommandTable, error) {
	for _, c := range cmds {
		if !c.Target.IsActiveVerb() {
			return nil, fmt.Errorf("%w: %q targets %s", ErrInvalidCommand, c.Token, c.Target)
		}
	}
	cp := make([]Command, len(cmds))
	copy(cp, cmds)
	return &CommandTable{commands: cp}, nil
}

// DefaultCommandTable returns a table over DefaultCommands.
func DefaultCommandTable() *CommandTable {
	ct, err := NewCommandTable(DefaultCommands())
	if err != nil {
		panic(err)
	}
	return ct
}

// Resolve returns the target state of the first command whose token
// matches exactly.
func (c *CommandTable) Resolve(token string) (RunState, bool) {
	for _, cmd := range c.commands {
		if cmd.Token == token {
			return cmd.Target, true
		}
	}
	return Uninitialized, false
}

// Arg returns the argument bound to token. Unknown tokens yield "".
func (c *CommandTable) Arg(token string) string {
	for _, cmd := range c.commands {
		if cmd.Token == token {
			return cmd.Arg
		}
	}
	return ""
}

// Commands returns a copy of the command list in lookup order.
func (c *CommandTable) Commands() []Command {
	out := make([]Command, len(c.commands))
	copy(out, c.commands)
	return out
}
