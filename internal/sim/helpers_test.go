package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-flap/internal/config"
)

const ms = time.Millisecond

// openConfig returns the default tuning with the obstacles moved far outside
// the field and the out-of-bounds band disabled, so runs never end by
// themselves. Scroll timing is unchanged.
func openConfig() config.FlapConfig {
	cfg := config.DefaultFlapConfig()
	cfg.Obstacles.Baseline = 1e6
	cfg.Field.TopMargin = -1e9
	cfg.Field.BottomMargin = -1e9
	return cfg
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// stepUntilGameOver steps with a fixed delta until the run ends or limit
// steps pass, returning the last result.
func stepUntilGameOver(s *Session, dt time.Duration, limit int) StepResult {
	var res StepResult
	for i := 0; i < limit; i++ {
		res = s.Step(dt)
		if res.Snapshot.Mode == ModeGameOver {
			break
		}
	}
	return res
}
