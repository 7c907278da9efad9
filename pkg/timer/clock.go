package timer

import "time"

// Clock yields monotonic readings as durations since an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the runtime's monotonic clock relative to its creation.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock returns a clock whose origin is the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// Now returns the monotonic time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.origin)
}
