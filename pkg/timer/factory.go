package timer

import (
	"fmt"
	"sync"
)

// Factory builds timers that share a clock and hands out sequential IDs.
// The ID counter belongs to the factory, so independent factories never
// interfere with each other's naming.
type Factory struct {
	mu     sync.Mutex
	clock  Clock
	nextID int
}

// NewFactory returns a factory using clock, or a SystemClock when nil.
func NewFactory(clock Clock) *Factory {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Factory{clock: clock}
}

// New builds a timer with the next ID. An empty name yields "Timer_<id>".
func (f *Factory) New(name string) *Timer {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.mu.Unlock()

	if name == "" {
		name = fmt.Sprintf("Timer_%d", id)
	} else {
		name = fmt.Sprintf("Timer [%d]-(%s)", id, name)
	}
	return newTimer(id, name, f.clock)
}

// Count returns how many timers the factory has built.
func (f *Factory) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nextID
}
