// Package replay records the inputs of a run and re-runs them through a
// fresh session. A recording holds only the seed, the effective tuning and
// one {dt, taps} entry per frame; the session's determinism does the rest.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/vovakirdan/tui-flap/internal/config"
	"github.com/vovakirdan/tui-flap/internal/sim"
)

// ErrMismatch is returned by Verify when a replayed run ends differently
// from the recorded one.
var ErrMismatch = errors.New("replay: outcome mismatch")

// Frame is one recorded step. Taps are delivered before the step runs.
type Frame struct {
	DT   time.Duration
	Taps int
}

// Outcome summarises how a run ended.
type Outcome struct {
	Mode     sim.Mode
	Score    int
	Steps    int
	Elapsed  time.Duration
	Restarts int
}

// Recording is a complete, replayable run.
type Recording struct {
	ID        int64  // assigned by storage
	Source    string // who produced the inputs, e.g. "play" or "sim:auto"
	Seed      int64
	Config    config.FlapConfig
	Frames    []Frame
	Outcome   Outcome
	CreatedAt time.Time
}

// Duration returns the total simulated time covered by the frames.
func (r Recording) Duration() time.Duration {
	return lo.SumBy(r.Frames, func(f Frame) time.Duration { return max(f.DT, 0) })
}

// Recorder wraps a session and captures every tap and step sent to it.
type Recorder struct {
	session  *sim.Session
	source   string
	seed     int64
	frames   []Frame
	pending  int
	restarts int
}

// NewRecorder creates a fresh session from cfg and seed and records
// everything sent to it.
func NewRecorder(cfg config.FlapConfig, seed int64, source string) *Recorder {
	return &Recorder{
		session: sim.New(cfg, seed),
		source:  source,
		seed:    seed,
	}
}

// Session returns the recorded session for read access.
func (r *Recorder) Session() *sim.Session {
	return r.session
}

// Tap forwards a tap and counts it toward the next frame.
func (r *Recorder) Tap() sim.StepResult {
	r.pending++
	res := r.session.Tap()
	if res.Has(sim.EventRestarted) {
		r.restarts++
	}
	return res
}

// Step forwards a step and closes the current frame.
func (r *Recorder) Step(dt time.Duration) sim.StepResult {
	r.frames = append(r.frames, Frame{DT: dt, Taps: r.pending})
	r.pending = 0
	return r.session.Step(dt)
}

// Len returns the number of frames recorded so far.
func (r *Recorder) Len() int {
	return len(r.frames)
}

// Recording returns the run captured so far. Taps not yet followed by a step
// are kept as a trailing zero-length frame.
func (r *Recorder) Recording() Recording {
	frames := make([]Frame, len(r.frames), len(r.frames)+1)
	copy(frames, r.frames)
	if r.pending > 0 {
		frames = append(frames, Frame{Taps: r.pending})
	}

	return Recording{
		Source:  r.source,
		Seed:    r.seed,
		Config:  r.session.Config(),
		Frames:  frames,
		Outcome: outcomeOf(r.session.Snapshot(), r.restarts),
	}
}

// Play re-runs a recording through a new session and returns how it ended.
func Play(rec Recording) Outcome {
	s := sim.New(rec.Config, rec.Seed)
	restarts := 0
	for _, f := range rec.Frames {
		for i := 0; i < f.Taps; i++ {
			if s.Tap().Has(sim.EventRestarted) {
				restarts++
			}
		}
		s.Step(f.DT)
	}
	return outcomeOf(s.Snapshot(), restarts)
}

// Verify replays rec and checks the result against the recorded outcome.
func Verify(rec Recording) error {
	got := Play(rec)
	if got != rec.Outcome {
		return fmt.Errorf("%w: recorded %s, replayed %s", ErrMismatch, rec.Outcome, got)
	}
	return nil
}

func outcomeOf(snap sim.Snapshot, restarts int) Outcome {
	return Outcome{
		Mode:     snap.Mode,
		Score:    snap.Score,
		Steps:    snap.Steps,
		Elapsed:  snap.Elapsed,
		Restarts: restarts,
	}
}

// String formats the outcome for logs and error messages.
func (o Outcome) String() string {
	return fmt.Sprintf("%s score=%d steps=%d elapsed=%s restarts=%d",
		o.Mode, o.Score, o.Steps, o.Elapsed, o.Restarts)
}
