package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	embedded, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	if embedded != DefaultFlapConfig() {
		t.Errorf("embedded defaults differ from DefaultFlapConfig():\n%+v\n%+v", embedded, DefaultFlapConfig())
	}
	if err := embedded.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDefaultConstants(t *testing.T) {
	cfg := DefaultFlapConfig()

	if cfg.Physics.Gravity != 1000 {
		t.Errorf("Gravity = %v, expected 1000", cfg.Physics.Gravity)
	}
	if cfg.Physics.JumpForce != -500 {
		t.Errorf("JumpForce = %v, expected -500", cfg.Physics.JumpForce)
	}
	if cfg.Obstacles.Width != 104 || cfg.Obstacles.Height != 640 {
		t.Errorf("obstacle size = %vx%v, expected 104x640", cfg.Obstacles.Width, cfg.Obstacles.Height)
	}
	if cfg.Obstacles.ScrollDuration != 3*time.Second {
		t.Errorf("ScrollDuration = %s, expected 3s", cfg.Obstacles.ScrollDuration)
	}
	if cfg.Obstacles.RespawnX != -100 || cfg.Obstacles.EndX != -150 {
		t.Errorf("path thresholds = %v/%v, expected -100/-150", cfg.Obstacles.RespawnX, cfg.Obstacles.EndX)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 1500\nobstacles:\n  scroll_duration: 2500ms\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Physics.Gravity != 1500 {
		t.Errorf("Gravity = %v, expected override 1500", cfg.Physics.Gravity)
	}
	if cfg.Obstacles.ScrollDuration != 2500*time.Millisecond {
		t.Errorf("ScrollDuration = %s, expected 2.5s", cfg.Obstacles.ScrollDuration)
	}
	// Untouched keys keep defaults
	if cfg.Physics.JumpForce != -500 {
		t.Errorf("JumpForce = %v, expected default -500", cfg.Physics.JumpForce)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  offset_min: 10\n  offset_max: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "offset range") {
		t.Errorf("Load() should reject an empty offset range, got %v", err)
	}
}

func TestMarshalRoundTripKeepsDuration(t *testing.T) {
	cfg := DefaultFlapConfig().WithField(640, 480)

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "scroll_duration: 3s") {
		t.Errorf("durations should marshal as strings, got:\n%s", data)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip mismatch:\n%+v\n%+v", back, cfg)
	}
}

func TestWithFieldIgnoresNonPositive(t *testing.T) {
	cfg := DefaultFlapConfig().WithField(0, -3)
	if cfg.Field.Width != 400 || cfg.Field.Height != 800 {
		t.Errorf("WithField(0, -3) changed field to %vx%v", cfg.Field.Width, cfg.Field.Height)
	}
}
