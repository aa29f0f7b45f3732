package sim

import (
	"time"

	"github.com/vovakirdan/tui-flap/internal/core"
)

// Timeline is a repeating linear path from From to To over Duration.
// Its value is a function of elapsed time since the cycle started, so the
// period stays exact however irregular the deltas fed to Advance are.
type Timeline struct {
	From, To float64
	Duration time.Duration

	elapsed time.Duration // phase within the current cycle, always < Duration
	cycles  int           // completed cycles since the last Restart
	running bool
}

// NewTimeline creates a running timeline at phase 0.
func NewTimeline(from, to float64, d time.Duration) *Timeline {
	return &Timeline{From: from, To: to, Duration: d, running: true}
}

// Advance moves the timeline forward by dt. Paused timelines and
// non-positive deltas are ignored.
func (t *Timeline) Advance(dt time.Duration) {
	if !t.running || dt <= 0 || t.Duration <= 0 {
		return
	}
	t.elapsed += dt
	if t.elapsed >= t.Duration {
		t.cycles += int(t.elapsed / t.Duration)
		t.elapsed %= t.Duration
	}
}

// Value samples the path at the current phase.
func (t *Timeline) Value() float64 {
	if t.Duration <= 0 {
		return t.From
	}
	return core.Lerp(t.From, t.To, float64(t.elapsed)/float64(t.Duration))
}

// Phase returns the elapsed time within the current cycle.
func (t *Timeline) Phase() time.Duration {
	return t.elapsed
}

// Cycles returns how many full cycles completed since the last Restart.
func (t *Timeline) Cycles() int {
	return t.cycles
}

// Running reports whether Advance currently moves the timeline.
func (t *Timeline) Running() bool {
	return t.running
}

// Pause freezes the timeline at its current phase.
func (t *Timeline) Pause() {
	t.running = false
}

// Resume continues from the phase the timeline was paused at.
func (t *Timeline) Resume() {
	t.running = true
}

// Restart rewinds to phase 0 and starts running.
func (t *Timeline) Restart() {
	t.elapsed = 0
	t.cycles = 0
	t.running = true
}
