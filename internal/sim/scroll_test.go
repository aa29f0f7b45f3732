package sim

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-flap/internal/config"
)

func TestCrossingFiresOncePerLap(t *testing.T) {
	const width = 400.0
	respawn := Crossing{Threshold: -100}

	samples := []float64{50, -50, -150, width}
	var fired []int

	var prev float64
	for i, cur := range samples {
		s := Sample{Prev: prev, Cur: cur, HasPrev: i > 0}
		if s.Crossed(respawn) {
			fired = append(fired, i)
		}
		prev = cur
	}

	if len(fired) != 1 || fired[0] != 2 {
		t.Errorf("crossing fired at samples %v, expected only between -50 and -150 (index 2)", fired)
	}
}

func TestCrossingThresholdTies(t *testing.T) {
	c := Crossing{Threshold: 100}

	tests := []struct {
		name     string
		s        Sample
		expected bool
	}{
		{"above to equal", Sample{Prev: 101, Cur: 100, HasPrev: true}, true},
		{"equal to below", Sample{Prev: 100, Cur: 99, HasPrev: true}, false},
		{"upward", Sample{Prev: 50, Cur: 150, HasPrev: true}, false},
		{"first sample at threshold", Sample{Prev: 0, Cur: 100}, false},
		{"first sample with stale prev", Sample{Prev: 400, Cur: 50}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.Crossed(c); got != tc.expected {
				t.Errorf("Crossed() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestScrollerRespawnsOncePerLap(t *testing.T) {
	cfg := config.DefaultFlapConfig().Obstacles
	cfg.ScrollDuration = 5500 * ms // 100 units/s from 400 to -150

	s := NewScroller(cfg, 400, 800, 7)

	steps := []struct {
		dt        time.Duration
		x         float64
		respawned bool
	}{
		{3500 * ms, 50, false},
		{1000 * ms, -50, false},
		{990 * ms, -149, true},
		{20 * ms, 399, false}, // wrapped back to the right edge
	}

	for i, st := range steps {
		sample, respawned, ok := s.Advance(st.dt)
		if !ok {
			t.Fatalf("step %d: Advance reported no sample", i)
		}
		if !approxEqual(sample.Cur, st.x) {
			t.Errorf("step %d: x = %v, expected %v", i, sample.Cur, st.x)
		}
		if respawned != st.respawned {
			t.Errorf("step %d: respawned = %v, expected %v", i, respawned, st.respawned)
		}
	}

	if s.Laps() != 1 {
		t.Errorf("Laps() = %d, expected 1", s.Laps())
	}
}

func TestScrollerOffsetRange(t *testing.T) {
	cfg := config.DefaultFlapConfig().Obstacles
	s := NewScroller(cfg, 400, 800, 99)

	respawns := 0
	for i := 0; i < 20000; i++ {
		if _, respawned, _ := s.Advance(16 * ms); respawned {
			respawns++
			if off := s.Offset(); off < -200 || off >= 200 {
				t.Fatalf("offset %v outside [-200, 200)", off)
			}
		}
	}

	// 320s of scrolling at one lap per 3s
	if respawns != 106 {
		t.Errorf("respawns = %d, expected 106", respawns)
	}
}

func TestScrollerPairGeometry(t *testing.T) {
	cfg := config.DefaultFlapConfig().Obstacles
	s := NewScroller(cfg, 400, 800, 1)

	p := s.Pair()
	if p.Top.X != 400 || p.Bottom.X != 400 {
		t.Errorf("pair should start at the right edge, got top=%v bottom=%v", p.Top.X, p.Bottom.X)
	}
	if p.Bottom.Y != 480 || p.Top.Y != -320 {
		t.Errorf("bottom.Y=%v top.Y=%v, expected 480 and -320", p.Bottom.Y, p.Top.Y)
	}
	if p.Top.W != 104 || p.Top.H != 640 || p.Bottom.W != 104 || p.Bottom.H != 640 {
		t.Errorf("obstacles should be 104x640, got %+v %+v", p.Top, p.Bottom)
	}

	// Both members always share x and offset
	for i := 0; i < 500; i++ {
		s.Advance(13 * ms)
		p = s.Pair()
		if p.Top.X != p.Bottom.X {
			t.Fatalf("top and bottom x diverged: %v vs %v", p.Top.X, p.Bottom.X)
		}
		if !approxEqual(p.Bottom.Y-800+320, p.Top.Y+320) {
			t.Fatalf("top and bottom offsets diverged: %+v", p)
		}
	}
}

func TestScrollerPauseFreezes(t *testing.T) {
	s := NewScroller(config.DefaultFlapConfig().Obstacles, 400, 800, 1)
	s.Advance(500 * ms)
	x, off := s.X(), s.Offset()

	s.Pause()
	for i := 0; i < 300; i++ {
		s.Advance(16 * ms)
	}

	if s.X() != x || s.Offset() != off {
		t.Errorf("paused scroller moved: x %v -> %v, offset %v -> %v", x, s.X(), off, s.Offset())
	}
}

func TestScrollerDegenerateDelta(t *testing.T) {
	s := NewScroller(config.DefaultFlapConfig().Obstacles, 400, 800, 1)
	if _, _, ok := s.Advance(0); ok {
		t.Error("Advance(0) should not produce a sample")
	}
	if s.X() != 400 {
		t.Errorf("X() = %v after Advance(0), expected 400", s.X())
	}
}
