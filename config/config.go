// Package config holds the court and physics parameters shared by every
// simulation component.
package config

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is passed by value to every constructor; there are no package level
// game constants.
type Config struct {
	CourtWidth  float64 `toml:"court_width"`
	CourtHeight float64 `toml:"court_height"`

	PaddleWidth  float64 `toml:"paddle_width"`
	PaddleHeight float64 `toml:"paddle_height"`
	PaddleSpeed  float64 `toml:"paddle_speed"`

	// distance between a side edge of the court and the back of its paddle
	PaddleInset float64 `toml:"paddle_inset"`

	BallRadius float64 `toml:"ball_radius"`
	BallSpeed  float64 `toml:"ball_speed"`

	// ticks the ball stays frozen after a side-out before the round resets
	RoundOverTicks int `toml:"round_over_ticks"`

	Keys map[string][]string `toml:"keys"`
}

// Default returns the parameters of the classic 800x600 court.
func Default() Config {
	return Config{
		CourtWidth:     800,
		CourtHeight:    600,
		PaddleWidth:    5,
		PaddleHeight:   50,
		PaddleInset:    5,
		PaddleSpeed:    10,
		BallRadius:     5,
		BallSpeed:      2.5,
		RoundOverTicks: 0,
	}
}

// Load reads a TOML file on top of Default and validates the result.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Printf("config %s: ignoring unknown keys %v", path, undecoded)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if !c.GridAligned() {
		log.Printf("config %s: ball speed %.3f does not divide the court offsets, bounces land between grid points", path, c.BallSpeed)
	}
	return c, nil
}

func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"court_width", c.CourtWidth},
		{"court_height", c.CourtHeight},
		{"paddle_width", c.PaddleWidth},
		{"paddle_height", c.PaddleHeight},
		{"paddle_speed", c.PaddleSpeed},
		{"ball_radius", c.BallRadius},
		{"ball_speed", c.BallSpeed},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalid, p.name, p.v)
		}
	}
	if !(c.PaddleInset >= 0) || math.IsInf(c.PaddleInset, 0) {
		return fmt.Errorf("%w: paddle_inset must not be negative, got %v", ErrInvalid, c.PaddleInset)
	}
	if c.PaddleHeight > c.CourtHeight {
		return fmt.Errorf("%w: paddle_height %v exceeds court_height %v", ErrInvalid, c.PaddleHeight, c.CourtHeight)
	}
	if c.LeftPlane()+2*c.BallRadius >= c.RightPlane() {
		return fmt.Errorf("%w: paddles leave no room for the ball", ErrInvalid)
	}
	if 2*c.BallRadius >= c.CourtHeight {
		return fmt.Errorf("%w: ball_radius %v does not fit the court", ErrInvalid, c.BallRadius)
	}
	if c.RoundOverTicks < 0 {
		return fmt.Errorf("%w: round_over_ticks must not be negative, got %d", ErrInvalid, c.RoundOverTicks)
	}
	return nil
}

// MaxPaddlePosition is the largest legal paddle offset.
func (c Config) MaxPaddlePosition() float64 {
	return c.CourtHeight - c.PaddleHeight
}

// PaddleCenter is the offset that vertically centers a paddle.
func (c Config) PaddleCenter() float64 {
	return (c.CourtHeight - c.PaddleHeight) / 2
}

// Spawn is where the ball starts every round: (397.5, 297.5) on the default
// court.
func (c Config) Spawn() (x, y float64) {
	return (c.CourtWidth - c.BallRadius) / 2, (c.CourtHeight - c.BallRadius) / 2
}

// LeftPlane is the x coordinate of the left paddle's court-facing edge.
func (c Config) LeftPlane() float64 {
	return c.PaddleInset + c.PaddleWidth
}

// RightPlane is the x coordinate of the right paddle's court-facing edge.
func (c Config) RightPlane() float64 {
	return c.CourtWidth - c.PaddleInset - c.PaddleWidth
}

// GridAligned reports whether every boundary the ball can reach from the spawn
// point is a whole number of ball steps away. On an aligned grid the ball
// lands exactly on each boundary on the tick it reaches it.
func (c Config) GridAligned() bool {
	x, y := c.Spawn()
	offsets := []float64{
		x - c.BallRadius,
		c.CourtWidth - c.BallRadius - x,
		y - c.BallRadius,
		c.CourtHeight - c.BallRadius - y,
		x - c.BallRadius - c.LeftPlane(),
		c.RightPlane() - c.BallRadius - x,
	}
	for _, d := range offsets {
		if !multipleOf(d, c.BallSpeed) {
			return false
		}
	}
	return true
}

func multipleOf(d, step float64) bool {
	n := math.Round(d / step)
	return math.Abs(n*step-d) < 1e-9
}
