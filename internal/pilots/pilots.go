// Package pilots contains automated players. Each pilot registers itself
// with the registry and taps through the same interface a human uses.
package pilots

import (
	"time"

	"github.com/vovakirdan/tui-flap/internal/registry"
	"github.com/vovakirdan/tui-flap/internal/sim"
)

func init() {
	registry.Register("idle", func() registry.Pilot { return &Idle{} })
	registry.Register("metronome", func() registry.Pilot { return NewMetronome(time.Second) })
	registry.Register("auto", func() registry.Pilot { return NewAuto(55) })
}

// Idle never taps. The body falls out of the field.
type Idle struct{}

func (p *Idle) ID() string { return "idle" }
func (p *Idle) Title() string { return "Idle" }
func (p *Idle) Reset(int64) {}
func (p *Idle) Decide(sim.Snapshot) bool { return false }

// Metronome taps once per period of simulated time, regardless of
// frame rate.
type Metronome struct {
	Period time.Duration
	last   int64
}

// NewMetronome creates a metronome pilot. A one second period keeps the
// body roughly level with the default physics.
func NewMetronome(period time.Duration) *Metronome {
	return &Metronome{Period: period, last: -1}
}

func (p *Metronome) ID() string    { return "metronome" }
func (p *Metronome) Title() string { return "Metronome" }

func (p *Metronome) Reset(int64) {
	p.last = -1
}

func (p *Metronome) Decide(snap sim.Snapshot) bool {
	if snap.Mode != sim.ModePlaying || p.Period <= 0 {
		return false
	}
	if snap.Steps == 0 {
		p.last = -1
	}
	beat := int64(snap.Elapsed / p.Period)
	if beat == p.last {
		return false
	}
	p.last = beat
	return true
}

// Auto steers the reference point toward the centre of the gap.
// It taps when the reference point has sunk Margin units below the gap
// centre and the body is no longer rising.
type Auto struct {
	Margin float64
}

// NewAuto creates an auto pilot with the given margin below the gap centre.
func NewAuto(margin float64) *Auto {
	return &Auto{Margin: margin}
}

func (p *Auto) ID() string    { return "auto" }
func (p *Auto) Title() string { return "Auto" }
func (p *Auto) Reset(int64)   {}

func (p *Auto) Decide(snap sim.Snapshot) bool {
	if snap.Mode != sim.ModePlaying {
		return false
	}
	return snap.Ref.Y > GapCentre(snap.Pair)+p.Margin && snap.Velocity >= 0
}

// GapCentre returns the y of the middle of the opening between the two
// obstacles of a pair.
func GapCentre(pair sim.Pair) float64 {
	return (pair.Top.Bottom() + pair.Bottom.Y) / 2
}
