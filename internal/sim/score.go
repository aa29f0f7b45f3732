package sim

// ScoreTracker counts laps in which the pair passed the body.
type ScoreTracker struct {
	pass  Crossing
	score int
}

// NewScoreTracker creates a tracker that scores when the pair's x crosses
// bodyX going left.
func NewScoreTracker(bodyX float64) ScoreTracker {
	return ScoreTracker{pass: Crossing{Threshold: bodyX}}
}

// Observe scores at most one point for the sample and reports whether it did.
func (t *ScoreTracker) Observe(s Sample) bool {
	if !s.Crossed(t.pass) {
		return false
	}
	t.score++
	return true
}

// Score returns the current score.
func (t *ScoreTracker) Score() int {
	return t.score
}

// Reset sets the score back to zero.
func (t *ScoreTracker) Reset() {
	t.score = 0
}
