// Package sim implements the flap simulation: a body falling under gravity,
// an obstacle pair scrolling on a timed path, collision and lap scoring, and
// the Playing/GameOver state machine.
//
// A Session is the single owner of all simulation state. Frontends drive it
// with Step once per frame and Tap on input, and read it back with Snapshot.
// Nothing in this package blocks, allocates goroutines or fails.
package sim

import (
	"time"

	"github.com/samber/lo"

	"github.com/vovakirdan/tui-flap/internal/config"
	"github.com/vovakirdan/tui-flap/internal/core"
)

// Mode is the session state.
type Mode int

const (
	ModePlaying Mode = iota
	ModeGameOver
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModeGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// EventKind identifies something that happened during a step or tap.
type EventKind int

const (
	EventScored    EventKind = iota // pair passed the body
	EventRespawned                  // offset re-randomized at the lap boundary
	EventCrashed                    // Playing -> GameOver
	EventJumped
	EventRestarted // GameOver -> Playing
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventScored:
		return "scored"
	case EventRespawned:
		return "respawned"
	case EventCrashed:
		return "crashed"
	case EventJumped:
		return "jumped"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Event is one occurrence reported by Step or Tap.
type Event struct {
	Kind   EventKind
	Score  int     // score after the event
	Offset float64 // new offset for EventRespawned
	Cause  Cause   // for EventCrashed
}

// StepResult is returned by Step and Tap.
type StepResult struct {
	Snapshot Snapshot
	Events   []Event
}

// Has reports whether an event of kind k occurred.
func (r StepResult) Has(k EventKind) bool {
	return lo.ContainsBy(r.Events, func(e Event) bool { return e.Kind == k })
}

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Mode     Mode
	Score    int
	FieldW   float64
	FieldH   float64
	BodyX    float64
	BodyY    float64
	Velocity float64
	Rotation float64    // radians, presentational only
	Ref      core.Point // collision reference point
	PairX    float64
	Offset   float64
	Pair     Pair
	Cause    Cause         // why the last run ended, CauseNone while playing
	Elapsed  time.Duration // simulated play time since start or restart
	Steps    int           // steps applied since start or restart
	Laps     int           // completed scroll cycles since start or restart
}

// Session owns the body, the scrolling pair, the score and the mode.
type Session struct {
	cfg        config.FlapConfig
	integrator Integrator
	scroller   *Scroller
	tracker    ScoreTracker
	bounds     Bounds

	bodyX  float64
	startY float64
	body   Body
	mode   Mode
	cause  Cause

	elapsed time.Duration
	steps   int
}

// New creates a session in Playing mode with the body at its start height
// and the pair at the right edge. seed drives the obstacle offsets; the same
// seed and the same sequence of Step/Tap calls always produce the same run.
func New(cfg config.FlapConfig, seed int64) *Session {
	fw, fh := cfg.Field.Width, cfg.Field.Height
	bodyX := fw * cfg.Body.XFraction

	s := &Session{
		cfg:        cfg,
		integrator: NewIntegrator(cfg.Physics),
		scroller:   NewScroller(cfg.Obstacles, fw, fh, seed),
		tracker:    NewScoreTracker(bodyX),
		bounds:     NewBounds(fh, cfg.Field.TopMargin, cfg.Field.BottomMargin),
		bodyX:      bodyX,
		startY:     fh * cfg.Body.StartFraction,
	}
	s.reset()
	return s
}

// reset puts every entity in its start state. The offset RNG keeps its
// position so restarts stay deterministic without reseeding.
func (s *Session) reset() {
	s.body = Body{Y: s.startY}
	s.tracker.Reset()
	s.scroller.Restart()
	s.mode = ModePlaying
	s.cause = CauseNone
	s.elapsed = 0
	s.steps = 0
}

// Step advances the simulation by dt.
//
// Order within a step: the pair is sampled once and both threshold checks
// (offset respawn, scoring) use that one prev/current pair; the body is
// integrated; the collision check runs against the updated pair; a hit
// switches to GameOver and freezes the scroll timeline.
//
// In GameOver, or with a non-positive dt, Step changes nothing.
func (s *Session) Step(dt time.Duration) StepResult {
	if s.mode == ModeGameOver || dt <= 0 {
		return StepResult{Snapshot: s.Snapshot()}
	}

	var events []Event

	sample, respawned, _ := s.scroller.Advance(dt)
	if respawned {
		events = append(events, Event{Kind: EventRespawned, Score: s.tracker.Score(), Offset: s.scroller.Offset()})
	}
	if s.tracker.Observe(sample) {
		events = append(events, Event{Kind: EventScored, Score: s.tracker.Score()})
	}

	s.integrator.Integrate(&s.body, dt)
	s.elapsed += dt
	s.steps++

	if hit, cause := Check(s.ref(), s.scroller.Pair().Rects(), s.body.Y, s.bounds); hit {
		s.mode = ModeGameOver
		s.cause = cause
		s.scroller.Pause()
		events = append(events, Event{Kind: EventCrashed, Score: s.tracker.Score(), Cause: cause})
	}

	return StepResult{Snapshot: s.Snapshot(), Events: events}
}

// Tap delivers one abstract tap: a jump while Playing, a restart in GameOver.
func (s *Session) Tap() StepResult {
	switch Route(s.mode) {
	case CommandRestart:
		return s.Restart()
	default:
		return s.Jump()
	}
}

// Jump overwrites the body's velocity with the jump force.
// It has no effect in GameOver.
func (s *Session) Jump() StepResult {
	if s.mode != ModePlaying {
		return StepResult{Snapshot: s.Snapshot()}
	}
	s.integrator.Jump(&s.body)
	return StepResult{
		Snapshot: s.Snapshot(),
		Events:   []Event{{Kind: EventJumped, Score: s.tracker.Score()}},
	}
}

// Restart resets the whole session to its start state. It only applies in
// GameOver; while Playing it is a no-op.
func (s *Session) Restart() StepResult {
	if s.mode != ModeGameOver {
		return StepResult{Snapshot: s.Snapshot()}
	}
	s.reset()
	return StepResult{
		Snapshot: s.Snapshot(),
		Events:   []Event{{Kind: EventRestarted}},
	}
}

// Mode returns the current mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.tracker.Score()
}

// Config returns the tuning the session was created with.
func (s *Session) Config() config.FlapConfig {
	return s.cfg
}

// ref is the body's collision reference point.
func (s *Session) ref() core.Point {
	return core.Point{
		X: s.bodyX + s.cfg.Body.RefOffsetX,
		Y: s.body.Y + s.cfg.Body.RefOffsetY,
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Mode:     s.mode,
		Score:    s.tracker.Score(),
		FieldW:   s.cfg.Field.Width,
		FieldH:   s.cfg.Field.Height,
		BodyX:    s.bodyX,
		BodyY:    s.body.Y,
		Velocity: s.body.Velocity,
		Rotation: Tilt(s.body.Velocity, s.cfg.Body.TiltVelocity, s.cfg.Body.MaxTilt),
		Ref:      s.ref(),
		PairX:    s.scroller.X(),
		Offset:   s.scroller.Offset(),
		Pair:     s.scroller.Pair(),
		Cause:    s.cause,
		Elapsed:  s.elapsed,
		Steps:    s.steps,
		Laps:     s.scroller.Laps(),
	}
}
