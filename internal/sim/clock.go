package sim

import (
	"math/rand"
	"time"
)

// Clock supplies the elapsed time between two simulation steps.
// A zero delta means "no time information" and is skipped by the session.
type Clock interface {
	Tick() time.Duration
}

// WallClock measures real elapsed time with the monotonic clock.
// The first Tick returns 0 because there is no previous frame yet.
type WallClock struct {
	last time.Time
	now  func() time.Time
}

// NewWallClock creates a clock backed by time.Now.
func NewWallClock() *WallClock {
	return &WallClock{now: time.Now}
}

// Tick returns the time since the previous Tick.
func (c *WallClock) Tick() time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now
	return dt
}

// Reset forgets the previous frame so the next Tick returns 0.
// Frontends call this after a pause so the paused time is not replayed.
func (c *WallClock) Reset() {
	c.last = time.Time{}
}

// FixedClock returns the same step every tick.
type FixedClock struct {
	Step time.Duration
}

// Tick returns the fixed step.
func (c FixedClock) Tick() time.Duration {
	return c.Step
}

// ScriptedClock returns a predetermined list of deltas, then zeros.
type ScriptedClock struct {
	deltas []time.Duration
	next   int
}

// NewScriptedClock creates a clock that replays deltas in order.
func NewScriptedClock(deltas ...time.Duration) *ScriptedClock {
	return &ScriptedClock{deltas: deltas}
}

// Tick returns the next scripted delta, or 0 once exhausted.
func (c *ScriptedClock) Tick() time.Duration {
	if c.next >= len(c.deltas) {
		return 0
	}
	dt := c.deltas[c.next]
	c.next++
	return dt
}

// Remaining returns how many scripted deltas have not been consumed.
func (c *ScriptedClock) Remaining() int {
	return len(c.deltas) - c.next
}

// JitterClock produces irregular deltas around a base step, with an
// occasional dropped frame that doubles or triples the delta.
// It is seeded, so a run is reproducible.
type JitterClock struct {
	base   time.Duration
	jitter time.Duration
	rng    *rand.Rand
}

// NewJitterClock creates a jittering clock. jitter is the maximum deviation
// in either direction; the delta never goes below zero.
func NewJitterClock(base, jitter time.Duration, seed int64) *JitterClock {
	return &JitterClock{
		base:   base,
		jitter: jitter,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Tick returns the next irregular delta.
func (c *JitterClock) Tick() time.Duration {
	dt := c.base
	if c.jitter > 0 {
		dt += time.Duration(c.rng.Int63n(int64(2*c.jitter)+1)) - c.jitter
	}
	// 1 in 20 frames is dropped
	if c.rng.Intn(20) == 0 {
		dt *= time.Duration(2 + c.rng.Intn(2))
	}
	return max(dt, 0)
}
