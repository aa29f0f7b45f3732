package sim

import (
	"time"

	"github.com/vovakirdan/tui-flap/internal/config"
	"github.com/vovakirdan/tui-flap/internal/core"
)

// Body is the vertical state of the controlled body.
// Y grows downward; a negative velocity moves the body up.
type Body struct {
	Y        float64 // units, field-relative
	Velocity float64 // units/second
}

// Integrator advances a Body under constant acceleration.
type Integrator struct {
	Gravity   float64
	JumpForce float64
}

// NewIntegrator creates an integrator from the physics tuning.
func NewIntegrator(cfg config.PhysicsConfig) Integrator {
	return Integrator{Gravity: cfg.Gravity, JumpForce: cfg.JumpForce}
}

// Integrate applies one explicit Euler step: position first with the old
// velocity, then gravity. A non-positive dt leaves the body untouched.
func (in Integrator) Integrate(b *Body, dt time.Duration) {
	if dt <= 0 {
		return
	}
	secs := dt.Seconds()
	b.Y += b.Velocity * secs
	b.Velocity += in.Gravity * secs
}

// Jump overwrites the velocity with the jump force. Repeated jumps do not
// accumulate.
func (in Integrator) Jump(b *Body) {
	b.Velocity = in.JumpForce
}

// Tilt maps velocity to a presentational rotation in radians: velocity is
// clamped to [-tiltVelocity, tiltVelocity] and scaled to [-maxTilt, maxTilt].
func Tilt(velocity, tiltVelocity, maxTilt float64) float64 {
	return core.Remap(velocity, -tiltVelocity, tiltVelocity, -maxTilt, maxTilt)
}
