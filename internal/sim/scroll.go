package sim

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flap/internal/config"
	"github.com/vovakirdan/tui-flap/internal/core"
)

// Crossing fires when a monitored value moves from strictly above Threshold
// to at-or-below it between two consecutive samples.
type Crossing struct {
	Threshold float64
}

// Downward reports whether prev -> cur crosses the threshold going down.
func (c Crossing) Downward(prev, cur float64) bool {
	return prev > c.Threshold && cur <= c.Threshold
}

// Sample is one observation of the pair's x with the observation before it.
// HasPrev is false for the first sample after start or restart.
type Sample struct {
	Prev, Cur float64
	HasPrev   bool
}

// Crossed applies c to the sample. The first sample never crosses.
func (s Sample) Crossed(c Crossing) bool {
	return s.HasPrev && c.Downward(s.Prev, s.Cur)
}

// Pair is the top and bottom obstacle at one instant. Both share one x.
type Pair struct {
	Top, Bottom core.Rect
}

// Rects returns both obstacles, bottom first.
func (p Pair) Rects() []core.Rect {
	return []core.Rect{p.Bottom, p.Top}
}

// Scroller moves the obstacle pair along its repeating path and owns the
// pair's vertical offset.
type Scroller struct {
	cfg      config.ObstacleConfig
	fieldW   float64
	fieldH   float64
	timeline *Timeline
	respawn  Crossing
	rng      *rand.Rand

	x       float64
	offset  float64
	prev    float64
	hasPrev bool
}

// NewScroller creates a scroller with the pair at the right edge and a zero
// offset. seed drives the offset randomization.
func NewScroller(cfg config.ObstacleConfig, fieldW, fieldH float64, seed int64) *Scroller {
	s := &Scroller{
		cfg:      cfg,
		fieldW:   fieldW,
		fieldH:   fieldH,
		timeline: NewTimeline(fieldW, cfg.EndX, cfg.ScrollDuration),
		respawn:  Crossing{Threshold: cfg.RespawnX},
		rng:      rand.New(rand.NewSource(seed)),
	}
	s.Restart()
	return s
}

// Advance moves the timeline by dt and takes a new sample of x. When the
// sample crosses the respawn threshold the offset is re-randomized before
// the sample is returned. A non-positive dt changes nothing and returns
// ok=false.
func (s *Scroller) Advance(dt time.Duration) (sample Sample, respawned bool, ok bool) {
	if dt <= 0 {
		return Sample{}, false, false
	}

	s.timeline.Advance(dt)
	cur := s.timeline.Value()

	sample = Sample{Prev: s.prev, Cur: cur, HasPrev: s.hasPrev}
	s.x = cur
	s.prev = cur
	s.hasPrev = true

	if sample.Crossed(s.respawn) {
		s.offset = s.randomOffset()
		respawned = true
	}
	return sample, respawned, true
}

// randomOffset draws uniformly from [OffsetMin, OffsetMax).
func (s *Scroller) randomOffset() float64 {
	return s.cfg.OffsetMin + s.rng.Float64()*(s.cfg.OffsetMax-s.cfg.OffsetMin)
}

// Pause freezes x and the offset at their current values.
func (s *Scroller) Pause() {
	s.timeline.Pause()
}

// Restart puts the pair back at the right edge with a zero offset and starts
// the path from phase 0. The next sample is treated as the first.
func (s *Scroller) Restart() {
	s.timeline.Restart()
	s.x = s.timeline.Value()
	s.offset = 0
	s.prev = 0
	s.hasPrev = false
}

// X returns the pair's current horizontal position.
func (s *Scroller) X() float64 {
	return s.x
}

// Offset returns the pair's current vertical offset.
func (s *Scroller) Offset() float64 {
	return s.offset
}

// Laps returns the number of completed traversals since the last restart.
func (s *Scroller) Laps() int {
	return s.timeline.Cycles()
}

// Running reports whether the scroll timeline is advancing.
func (s *Scroller) Running() bool {
	return s.timeline.Running()
}

// Pair derives the current obstacle rectangles from x and offset.
func (s *Scroller) Pair() Pair {
	w, h, base := s.cfg.Width, s.cfg.Height, s.cfg.Baseline
	return Pair{
		Bottom: core.NewRect(s.x, s.fieldH-base+s.offset, w, h),
		Top:    core.NewRect(s.x, s.offset-base, w, h),
	}
}
