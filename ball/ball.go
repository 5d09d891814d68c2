package ball

import (
	"fmt"
	"math"

	"github.com/mo-shahab/pong-sim/config"
)

// Vec is a position or a velocity in court coordinates.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

type Ball struct {
	court Court
	speed float64
	spawn Vec

	radius   float64
	position Vec
	velocity Vec
	last     Crossing
}

// New places a ball at the spawn point moving along the canonical diagonal.
func New(cfg config.Config) *Ball {
	x, y := cfg.Spawn()
	b := &Ball{
		court:  NewCourt(cfg),
		speed:  cfg.BallSpeed,
		spawn:  Vec{x, y},
		radius: cfg.BallRadius,
	}
	b.Reset()
	return b
}

func (b *Ball) Radius() float64 { return b.radius }
func (b *Ball) Position() Vec { return b.position }
func (b *Ball) Velocity() Vec { return b.velocity }
func (b *Ball) LastCrossing() Crossing { return b.last }

// Update classifies the current state against both paddle offsets, applies a
// bounce if there is one and then always advances by the velocity.
func (b *Ball) Update(left, right float64) {
	b.last = b.court.Classify(b.position, b.velocity, left, right)
	if b.last.Kind == Bounce {
		b.velocity = b.last.Velocity
	}
	b.position = b.position.Add(b.velocity)
}

// Reset moves the ball back to the spawn point with the canonical velocity so
// every round starts the same way.
func (b *Ball) Reset() {
	b.position = b.spawn
	b.velocity = Vec{b.speed, b.speed}
	b.last = Crossing{}
}

// Place puts the ball at an arbitrary state. Both velocity components must
// have the configured speed.
func (b *Ball) Place(pos, vel Vec) {
	if math.Abs(vel.X) != b.speed || math.Abs(vel.Y) != b.speed {
		panic(fmt.Sprintf("ball: velocity %v does not have speed %v", vel, b.speed))
	}
	b.position = pos
	b.velocity = vel
	b.last = Crossing{}
}
