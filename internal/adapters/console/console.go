// Package console implements the terminal side of the controller: key
// polling on stdin, screen clearing and printing on stdout, and renderers
// for the status display.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"
	"sync"

	"golang.org/x/term"
)

const clearSequence = "\033[2J\033[1;1H"

// Console reads keys from an input stream without blocking the caller and
// writes frames to an output stream.
type Console struct {
	out io.Writer

	fd       int
	raw      bool
	oldState *term.State

	keys chan byte

	mu      sync.Mutex
	next    byte
	hasNext bool
}

// Open attaches to in and out. When in is a terminal it is switched to raw
// mode so keys arrive one at a time; Close restores it.
func Open(in *os.File, out io.Writer) (*Console, error) {
	c := newConsole(in, out)
	c.fd = int(in.Fd())
	if term.IsTerminal(c.fd) {
		state, err := term.MakeRaw(c.fd)
		if err != nil {
			return nil, fmt.Errorf("failed to set raw mode: %w", err)
		}
		c.oldState = state
		c.raw = true
	}
	return c, nil
}

// New attaches to arbitrary streams without touching terminal modes.
func New(in io.Reader, out io.Writer) *Console {
	return newConsole(in, out)
}

func newConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{
		out:  out,
		fd:   -1,
		keys: make(chan byte, 256),
	}
	go c.readLoop(bufio.NewReader(in))
	return c
}

// readLoop feeds bytes from r into the key channel until r fails.
// A blocked read cannot be interrupted, so the goroutine ends with the
// process or when the input is closed.
func (c *Console) readLoop(r *bufio.Reader) {
	defer close(c.keys)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		c.keys <- b
	}
}

// KeyHit reports whether a key is waiting.
func (c *Console) KeyHit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasNext {
		return true
	}
	select {
	case b, ok := <-c.keys:
		if !ok {
			return false
		}
		c.next, c.hasNext = b, true
		return true
	default:
		return false
	}
}

// ReadChar returns the waiting key, blocking until one arrives. It returns
// -1 once the input is exhausted.
func (c *Console) ReadChar() int {
	c.mu.Lock()
	if c.hasNext {
		c.hasNext = false
		b := c.next
		c.mu.Unlock()
		return int(b)
	}
	c.mu.Unlock()

	b, ok := <-c.keys
	if !ok {
		return -1
	}
	return int(b)
}

// ClearScreen clears the display and moves the cursor home.
func (c *Console) ClearScreen() {
	_, _ = io.WriteString(c.out, clearSequence)
}

// Print writes text. In raw mode line feeds are expanded to CR LF.
func (c *Console) Print(text string) {
	if c.raw {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	_, _ = io.WriteString(c.out, text)
}

// Raw reports whether the input terminal is in raw mode.
func (c *Console) Raw() bool {
	return c.raw
}

// Close restores the terminal mode saved by Open.
func (c *Console) Close() error {
	if !c.raw {
		return nil
	}
	c.raw = false
	if err := term.Restore(c.fd, c.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	return nil
}

// User returns the login name of the current user, falling back to $USER.
func User() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		name := u.Username
		// Windows reports DOMAIN\user.
		if i := strings.LastIndex(name, `\`); i >= 0 {
			name = name[i+1:]
		}
		return name
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "user"
}

// Hostname returns the machine's host name, or "localhost" if unknown.
func Hostname() string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return "localhost"
}
