package sim

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-flap/internal/config"
)

func TestNewSessionStartState(t *testing.T) {
	s := New(config.DefaultFlapConfig(), 1)
	snap := s.Snapshot()

	if snap.Mode != ModePlaying || snap.Score != 0 {
		t.Errorf("start mode=%v score=%d, expected playing and 0", snap.Mode, snap.Score)
	}
	if snap.BodyX != 100 {
		t.Errorf("BodyX = %v, expected width/4 = 100", snap.BodyX)
	}
	if !approxEqual(snap.BodyY, 800.0/3.0) || snap.Velocity != 0 {
		t.Errorf("body = (%v, %v), expected (height/3, 0)", snap.BodyY, snap.Velocity)
	}
	if snap.PairX != 400 || snap.Offset != 0 {
		t.Errorf("pair x=%v offset=%v, expected 400 and 0", snap.PairX, snap.Offset)
	}
	if snap.Ref.X != 132 || !approxEqual(snap.Ref.Y, snap.BodyY+24) {
		t.Errorf("reference point = %+v, expected (132, y+24)", snap.Ref)
	}
}

func TestSessionEulerRecurrence(t *testing.T) {
	s := New(config.DefaultFlapConfig(), 1)
	deltas := []time.Duration{16 * ms, 17 * ms, 33 * ms, 8 * ms, 50 * ms, 16 * ms}

	y, v, sum := s.Snapshot().BodyY, 0.0, 0.0
	for _, dt := range deltas {
		res := s.Step(dt)
		if res.Snapshot.Mode != ModePlaying {
			t.Fatalf("run ended early at y=%v", res.Snapshot.BodyY)
		}
		secs := dt.Seconds()
		y += v * secs
		v += 1000 * secs
		sum += secs
	}

	snap := s.Snapshot()
	if !approxEqual(snap.BodyY, y) {
		t.Errorf("BodyY = %v, expected %v", snap.BodyY, y)
	}
	if !approxEqual(snap.Velocity, 1000*sum) {
		t.Errorf("Velocity = %v, expected %v", snap.Velocity, 1000*sum)
	}
	if snap.Elapsed != 140*ms || snap.Steps != len(deltas) {
		t.Errorf("Elapsed=%s Steps=%d, expected 140ms and %d", snap.Elapsed, snap.Steps, len(deltas))
	}
}

func TestSessionDegenerateDeltaIsNoop(t *testing.T) {
	s := New(config.DefaultFlapConfig(), 1)
	s.Step(16 * ms)
	before := s.Snapshot()

	for _, dt := range []time.Duration{0, -time.Second} {
		res := s.Step(dt)
		if len(res.Events) != 0 {
			t.Errorf("Step(%s) emitted events %v", dt, res.Events)
		}
		if res.Snapshot != before {
			t.Errorf("Step(%s) changed state:\n%+v\n%+v", dt, before, res.Snapshot)
		}
	}
}

func TestSessionJumpOverwrites(t *testing.T) {
	s := New(config.DefaultFlapConfig(), 1)
	s.Step(100 * ms) // velocity is now +100

	s.Tap()
	res := s.Tap()

	if res.Snapshot.Velocity != -500 {
		t.Errorf("Velocity after two taps = %v, expected -500", res.Snapshot.Velocity)
	}
	if !res.Has(EventJumped) {
		t.Error("tap while playing should report a jump")
	}
}

func TestSessionFallsOutOfBounds(t *testing.T) {
	s := New(config.DefaultFlapConfig(), 1)

	var prev Snapshot
	for i := 0; i < 1000; i++ {
		prev = s.Snapshot()
		res := s.Step(16 * ms)
		if res.Snapshot.Mode == ModeGameOver {
			if res.Snapshot.Cause != CauseBounds {
				t.Errorf("Cause = %v, expected out of bounds", res.Snapshot.Cause)
			}
			if res.Snapshot.BodyY <= 700 || prev.BodyY > 700 {
				t.Errorf("game over at y=%v (prev %v), expected the step that passed 700", res.Snapshot.BodyY, prev.BodyY)
			}
			if !res.Has(EventCrashed) {
				t.Error("crash step should report EventCrashed")
			}
			return
		}
	}
	t.Fatal("body never left the field")
}

func TestSessionOutOfBoundsAbove(t *testing.T) {
	s := New(config.DefaultFlapConfig(), 1)
	s.body = Body{Y: -1}

	res := s.Step(16 * ms)
	if res.Snapshot.Mode != ModeGameOver || res.Snapshot.Cause != CauseBounds {
		t.Errorf("body above the field: mode=%v cause=%v", res.Snapshot.Mode, res.Snapshot.Cause)
	}
}

func TestSessionObstacleCollision(t *testing.T) {
	s := New(config.DefaultFlapConfig(), 1)

	// Hold the body level inside the top obstacle's band until the pair arrives
	var res StepResult
	for i := 0; i < 1000 && s.Mode() == ModePlaying; i++ {
		s.body = Body{Y: 200}
		res = s.Step(16 * ms)
	}

	if res.Snapshot.Cause != CauseObstacle {
		t.Fatalf("Cause = %v, expected obstacle", res.Snapshot.Cause)
	}
	top := res.Snapshot.Pair.Top
	if !top.ContainsPoint(res.Snapshot.Ref) {
		t.Errorf("reference point %+v should be inside top obstacle %+v", res.Snapshot.Ref, top)
	}
}

func TestSessionGameOverIsMonotonic(t *testing.T) {
	s := New(config.DefaultFlapConfig(), 1)
	over := stepUntilGameOver(s, 16*ms, 1000).Snapshot
	if over.Mode != ModeGameOver {
		t.Fatal("run did not end")
	}

	for i := 0; i < 200; i++ {
		s.Step(16 * ms)
		s.Jump()
		if s.Mode() != ModeGameOver {
			t.Fatal("mode left GameOver without a restart")
		}
	}

	after := s.Snapshot()
	if after.PairX != over.PairX || after.Offset != over.Offset {
		t.Errorf("pair moved after game over: x %v -> %v", over.PairX, after.PairX)
	}
	if after.BodyY != over.BodyY || after.Velocity != over.Velocity {
		t.Errorf("body moved after game over: %v -> %v", over.BodyY, after.BodyY)
	}
}

func TestSessionRestartOnlyFromGameOver(t *testing.T) {
	s := New(config.DefaultFlapConfig(), 1)
	s.Step(200 * ms)
	before := s.Snapshot()

	res := s.Restart()
	if res.Has(EventRestarted) || res.Snapshot != before {
		t.Error("Restart while playing should be a no-op")
	}
}

func TestSessionTapRestartsFullReset(t *testing.T) {
	s := New(openConfig(), 3)

	// Score a few laps, then force a crash through the bounds
	for i := 0; i < 600; i++ {
		s.Step(16 * ms)
	}
	if s.Score() == 0 {
		t.Fatal("expected some score before the crash")
	}
	s.bounds = NewBounds(800, 0, 100)
	s.body = Body{Y: 9000, Velocity: 77}
	s.Step(16 * ms)
	if s.Mode() != ModeGameOver {
		t.Fatal("expected game over")
	}

	res := s.Tap()
	if !res.Has(EventRestarted) {
		t.Error("tap in game over should restart")
	}

	snap := res.Snapshot
	if snap.Mode != ModePlaying || snap.Score != 0 {
		t.Errorf("after restart mode=%v score=%d", snap.Mode, snap.Score)
	}
	if !approxEqual(snap.BodyY, 800.0/3.0) || snap.Velocity != 0 {
		t.Errorf("after restart body=(%v, %v), expected start height and 0", snap.BodyY, snap.Velocity)
	}
	if snap.PairX != 400 || snap.Offset != 0 || snap.Laps != 0 {
		t.Errorf("after restart pair x=%v offset=%v laps=%d", snap.PairX, snap.Offset, snap.Laps)
	}
	if snap.Cause != CauseNone || snap.Elapsed != 0 || snap.Steps != 0 {
		t.Errorf("after restart cause=%v elapsed=%s steps=%d", snap.Cause, snap.Elapsed, snap.Steps)
	}

	// The timeline runs again from phase 0
	s.Step(1500 * ms)
	if !approxEqual(s.Snapshot().PairX, 125) {
		t.Errorf("PairX 1.5s after restart = %v, expected 125", s.Snapshot().PairX)
	}
}

func TestSessionScoresOncePerLap(t *testing.T) {
	s := New(openConfig(), 5)

	scoredAt := []int{}
	for i := 0; i < 594; i++ { // 9.504s
		res := s.Step(16 * ms)
		if res.Has(EventScored) {
			scoredAt = append(scoredAt, i)
		}
	}

	// Pair passes x=100 at 1.636s into each 3s lap
	if len(scoredAt) != 3 {
		t.Fatalf("scored %d times at steps %v, expected 3", len(scoredAt), scoredAt)
	}
	if s.Score() != 3 || s.Snapshot().Laps != 3 {
		t.Errorf("Score=%d Laps=%d, expected 3 and 3", s.Score(), s.Snapshot().Laps)
	}
}

func TestSessionNoScoreOnFirstSample(t *testing.T) {
	s := New(openConfig(), 5)

	// The first sample already lands left of the body
	res := s.Step(2 * time.Second)
	if res.Snapshot.PairX > res.Snapshot.BodyX {
		t.Fatalf("setup: pair x %v should be left of body %v", res.Snapshot.PairX, res.Snapshot.BodyX)
	}
	if res.Has(EventScored) || s.Score() != 0 {
		t.Error("the first sample must not score")
	}
}

func TestSessionScoreCountIsJitterIndependent(t *testing.T) {
	s := New(openConfig(), 11)
	clock := NewJitterClock(16*ms, 8*ms, 2024)

	for s.Snapshot().Elapsed < 30*time.Second {
		s.Step(clock.Tick())
	}

	elapsed := s.Snapshot().Elapsed.Seconds()
	crossing := 3.0 * 300.0 / 550.0
	want := 0
	for k := 0; crossing+3*float64(k) < elapsed; k++ {
		want++
	}

	if s.Score() != want {
		t.Errorf("Score = %d after %.3fs of jittered frames, expected %d", s.Score(), elapsed, want)
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := New(config.DefaultFlapConfig(), 12345)
		clock := NewJitterClock(16*ms, 6*ms, 99)
		restarts := 0
		for i := 0; i < 3000 && restarts < 3; i++ {
			if i%19 == 0 {
				if s.Tap().Has(EventRestarted) {
					restarts++
				}
			}
			s.Step(clock.Tick())
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("identical runs diverged:\n%+v\n%+v", a, b)
	}
}

func TestRoute(t *testing.T) {
	if Route(ModePlaying) != CommandJump {
		t.Error("tap while playing should jump")
	}
	if Route(ModeGameOver) != CommandRestart {
		t.Error("tap in game over should restart")
	}
}
