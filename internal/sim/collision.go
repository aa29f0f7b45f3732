package sim

import (
	"github.com/samber/lo"

	"github.com/vovakirdan/tui-flap/internal/core"
)

// Cause describes why a collision check failed the run.
type Cause int

const (
	CauseNone Cause = iota
	CauseObstacle
	CauseBounds
)

// String returns a human-readable name for the cause.
func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseObstacle:
		return "obstacle"
	case CauseBounds:
		return "out of bounds"
	default:
		return "unknown"
	}
}

// Bounds is the vertical band the body's raw y must stay within.
type Bounds struct {
	Top    float64
	Bottom float64
}

// NewBounds derives the band from the field height and its margins.
func NewBounds(fieldH, topMargin, bottomMargin float64) Bounds {
	return Bounds{Top: topMargin, Bottom: fieldH - bottomMargin}
}

// Contains reports whether y is inside the band (edges included).
func (b Bounds) Contains(y float64) bool {
	return y >= b.Top && y <= b.Bottom
}

// Check tests the body's reference point against every obstacle and its raw
// y against the bounds. Obstacles take precedence when both fail.
func Check(ref core.Point, obstacles []core.Rect, bodyY float64, bounds Bounds) (bool, Cause) {
	if lo.SomeBy(obstacles, func(r core.Rect) bool { return r.ContainsPoint(ref) }) {
		return true, CauseObstacle
	}
	if !bounds.Contains(bodyY) {
		return true, CauseBounds
	}
	return false, CauseNone
}
