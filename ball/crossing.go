package ball

import (
	"fmt"

	"github.com/mo-shahab/pong-sim/config"
	"github.com/mo-shahab/pong-sim/paddle"
)

// Kind tags a Crossing.
type Kind uint8

const (
	Nothing Kind = iota
	Bounce
	SideOut
)

func (k Kind) String() string {
	switch k {
	case Nothing:
		return "Nothing"
	case Bounce:
		return "Bounce"
	case SideOut:
		return "SideOut"
	default:
		return "Unknown"
	}
}

// Crossing is the outcome of classifying one tick. Velocity is set for
// Bounce, Winner for SideOut.
type Crossing struct {
	Kind     Kind
	Velocity Vec
	Winner   paddle.Side
}

func (c Crossing) String() string {
	switch c.Kind {
	case Bounce:
		return fmt.Sprintf("Bounce(%v, %v)", c.Velocity.X, c.Velocity.Y)
	case SideOut:
		return fmt.Sprintf("SideOut(%s)", c.Winner)
	default:
		return c.Kind.String()
	}
}

// Court is the fixed geometry the classifier tests against, derived once from
// a config.Config.
type Court struct {
	width, height float64
	radius        float64
	paddleHeight  float64
	maxPaddle     float64
	leftPlane     float64
	rightPlane    float64
}

func NewCourt(cfg config.Config) Court {
	return Court{
		width:        cfg.CourtWidth,
		height:       cfg.CourtHeight,
		radius:       cfg.BallRadius,
		paddleHeight: cfg.PaddleHeight,
		maxPaddle:    cfg.MaxPaddlePosition(),
		leftPlane:    cfg.LeftPlane(),
		rightPlane:   cfg.RightPlane(),
	}
}

// Classify decides what happens to a ball at pos moving with vel, given both
// paddle offsets. Conditions are checked in order and the first match wins:
// side-outs, then walls, then paddles.
//
// Boundaries are crossing tests rather than equality tests: a side or wall
// counts once the ball is at or past it, and a paddle plane counts on the tick
// the ball's leading edge reaches it. With a speed that evenly divides the
// court offsets both readings fire on the same tick.
func (c Court) Classify(pos, vel Vec, left, right float64) Crossing {
	c.checkPaddle(paddle.Left, left)
	c.checkPaddle(paddle.Right, right)

	switch {
	case vel.X < 0 && pos.X <= c.radius:
		return Crossing{Kind: SideOut, Winner: paddle.Right}
	case vel.X > 0 && pos.X >= c.width-c.radius:
		return Crossing{Kind: SideOut, Winner: paddle.Left}
	}

	if (vel.Y > 0 && pos.Y >= c.height-c.radius) || (vel.Y < 0 && pos.Y <= c.radius) {
		return Crossing{Kind: Bounce, Velocity: Vec{vel.X, -vel.Y}}
	}

	switch {
	case vel.X < 0 && c.reachedLeft(pos.X, vel.X) && c.within(pos.Y, left):
		return Crossing{Kind: Bounce, Velocity: Vec{-vel.X, vel.Y}}
	case vel.X > 0 && c.reachedRight(pos.X, vel.X) && c.within(pos.Y, right):
		return Crossing{Kind: Bounce, Velocity: Vec{-vel.X, vel.Y}}
	}

	return Crossing{Kind: Nothing}
}

// reachedLeft reports whether the leading edge got to the left plane on the
// step that brought the ball to x.
func (c Court) reachedLeft(x, dx float64) bool {
	edge := x - c.radius
	return edge <= c.leftPlane && edge-dx > c.leftPlane
}

func (c Court) reachedRight(x, dx float64) bool {
	edge := x + c.radius
	return edge >= c.rightPlane && edge-dx < c.rightPlane
}

func (c Court) within(y, p float64) bool {
	return y >= p && y <= p+c.paddleHeight
}

// checkPaddle panics on an offset the paddle itself could never produce.
func (c Court) checkPaddle(side paddle.Side, p float64) {
	if p < 0 || p > c.maxPaddle {
		panic(fmt.Sprintf("ball: %s paddle position %v outside [0, %v]", side, p, c.maxPaddle))
	}
}
