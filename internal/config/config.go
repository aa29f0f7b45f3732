// Package config provides YAML-based tuning for the flap simulation: physics
// constants, body geometry, obstacle path and field margins.
package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// FlapConfig contains every tunable constant of the simulation.
type FlapConfig struct {
	Field     FieldConfig    `yaml:"field"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Body      BodyConfig     `yaml:"body"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
}

// FieldConfig defines the play field and its out-of-bounds margins.
type FieldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	TopMargin    float64 `yaml:"top_margin"`    // body y below this is out of bounds
	BottomMargin float64 `yaml:"bottom_margin"` // body y above height-bottom_margin is out of bounds
}

// PhysicsConfig defines the body integrator constants (units and seconds).
type PhysicsConfig struct {
	Gravity   float64 `yaml:"gravity"`    // units/s^2, positive is down
	JumpForce float64 `yaml:"jump_force"` // units/s, negative is up
}

// BodyConfig defines the controlled body geometry.
type BodyConfig struct {
	XFraction     float64 `yaml:"x_fraction"`     // fixed x as a fraction of field width
	StartFraction float64 `yaml:"start_fraction"` // start y as a fraction of field height
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	RefOffsetX    float64 `yaml:"ref_offset_x"` // collision reference point offset
	RefOffsetY    float64 `yaml:"ref_offset_y"`
	MaxTilt       float64 `yaml:"max_tilt"`      // radians at full tilt
	TiltVelocity  float64 `yaml:"tilt_velocity"` // |velocity| that reaches full tilt
}

// ObstacleConfig defines the obstacle pair and its scroll path.
type ObstacleConfig struct {
	Width          float64       `yaml:"width"`
	Height         float64       `yaml:"height"`
	Baseline       float64       `yaml:"baseline"` // distance from field edge to each obstacle's centre line
	ScrollDuration time.Duration `yaml:"scroll_duration"`
	EndX           float64       `yaml:"end_x"`
	RespawnX       float64       `yaml:"respawn_x"` // crossing this re-randomizes the offset
	OffsetMin      float64       `yaml:"offset_min"`
	OffsetMax      float64       `yaml:"offset_max"` // exclusive
}

// Validate reports configuration values the simulation cannot run with.
func (c FlapConfig) Validate() error {
	var errs []error

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %vx%v", c.Field.Width, c.Field.Height))
	}
	if c.Obstacles.ScrollDuration <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.scroll_duration must be positive, got %s", c.Obstacles.ScrollDuration))
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.Height <= 0 {
		errs = append(errs, errors.New("obstacle size must be positive"))
	}
	if c.Obstacles.OffsetMax <= c.Obstacles.OffsetMin {
		errs = append(errs, fmt.Errorf("offset range [%v, %v) is empty", c.Obstacles.OffsetMin, c.Obstacles.OffsetMax))
	}
	if c.Obstacles.EndX >= c.Field.Width {
		errs = append(errs, errors.New("obstacles.end_x must be left of the field's right edge"))
	}
	if c.Body.TiltVelocity <= 0 {
		errs = append(errs, errors.New("body.tilt_velocity must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// WithField returns a copy of the config using the given field size.
// Non-positive dimensions leave the configured value in place.
func (c FlapConfig) WithField(width, height float64) FlapConfig {
	if width > 0 {
		c.Field.Width = width
	}
	if height > 0 {
		c.Field.Height = height
	}
	return c
}

// Marshal serialises the config as YAML. Replays store this so a recording
// re-runs under the exact constants it was captured with.
func (c FlapConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: cannot marshal: %w", err)
	}
	return data, nil
}

// Parse decodes YAML produced by Marshal or written by hand.
// Missing keys keep their default values.
func Parse(data []byte) (FlapConfig, error) {
	cfg := DefaultFlapConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse: %w", err)
	}
	return cfg, nil
}
