package app

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Clock supplies the block time of the next operation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// OffsetClock is a wall clock that dev nodes can move forward, the way test
// chains expose evm_increaseTime.
type OffsetClock struct {
	mu     sync.RWMutex
	base   func() time.Time
	offset time.Duration
}

// NewOffsetClock returns an OffsetClock over the wall clock.
func NewOffsetClock() *OffsetClock {
	return &OffsetClock{base: SystemClock{}.Now}
}

func (c *OffsetClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base().Add(c.offset)
}

// Offset returns how far the clock is ahead of its base.
func (c *OffsetClock) Offset() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offset
}

// Advance moves the clock forward by d and returns the new time.
func (c *OffsetClock) Advance(d time.Duration) (time.Time, error) {
	if d < 0 {
		return time.Time{}, errors.Errorf("cannot move the clock back by %s", -d)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset += d
	return c.base().Add(c.offset), nil
}

// Set jumps the clock to t, which must not be earlier than the current time.
func (c *OffsetClock) Set(t time.Time) (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.base()
	if t.Before(now.Add(c.offset)) {
		return time.Time{}, errors.Errorf("cannot set the clock back to %s", t.UTC().Format(time.RFC3339))
	}
	c.offset = t.Sub(now)
	return now.Add(c.offset), nil
}
