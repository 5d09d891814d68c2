package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pong.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValidAndAligned(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !c.GridAligned() {
		t.Fatalf("default config should sit on the ball step grid")
	}
	if x, y := c.Spawn(); x != 397.5 || y != 297.5 {
		t.Fatalf("spawn = (%v, %v), want (397.5, 297.5)", x, y)
	}
	if c.LeftPlane() != 10 || c.RightPlane() != 790 {
		t.Fatalf("planes = %v, %v, want 10, 790", c.LeftPlane(), c.RightPlane())
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
ball_speed = 3.0
round_over_ticks = 30

[keys]
left_up = ["i"]
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.BallSpeed != 3 || c.RoundOverTicks != 30 {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.CourtWidth != 800 || c.PaddleHeight != 50 {
		t.Fatalf("defaults lost: %+v", c)
	}
	if got := c.Keys["left_up"]; len(got) != 1 || got[0] != "i" {
		t.Fatalf("keys = %v", c.Keys)
	}
	if c.GridAligned() {
		t.Fatalf("speed 3 should not be grid aligned")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"paddle taller than court", "paddle_height = 700.0"},
		{"zero speed", "ball_speed = 0.0"},
		{"negative delay", "round_over_ticks = -1"},
		{"negative inset", "paddle_inset = -2.0"},
		{"no room between paddles", "court_width = 30.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadReportsSyntaxErrors(t *testing.T) {
	_, err := Load(writeConfig(t, "court_width = ["))
	if err == nil {
		t.Fatalf("expected a decode error")
	}
	if errors.Is(err, ErrInvalid) {
		t.Fatalf("syntax error should not be reported as ErrInvalid: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestValidateRejectsNaNInset(t *testing.T) {
	c := Default()
	c.PaddleInset = math.NaN()
	if err := c.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestSpawnOnGridForDefaults(t *testing.T) {
	c := Default()
	x, y := c.Spawn()
	// 159 steps of 2.5 take the ball from the spawn point to the right side-out
	if got := x + 159*c.BallSpeed; got != c.CourtWidth-c.BallRadius {
		t.Fatalf("spawn x %v + 159 steps = %v, want %v", x, got, c.CourtWidth-c.BallRadius)
	}
	if got := y + 119*c.BallSpeed; got != c.CourtHeight-c.BallRadius {
		t.Fatalf("spawn y %v + 119 steps = %v, want %v", y, got, c.CourtHeight-c.BallRadius)
	}
}
