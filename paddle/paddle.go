package paddle

import "github.com/mo-shahab/pong-sim/config"

// Side identifies a player. The zero value is not a valid side.
type Side uint8

const (
	Left Side = iota + 1
	Right
)

// Opposite returns the other player.
func (s Side) Opposite() Side {
	switch s {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return s
	}
}

func (s Side) String() string {
	switch s {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Command is a discrete movement request delivered between ticks.
type Command uint8

const (
	None Command = iota
	// MoveTowardZero moves the paddle up the screen.
	MoveTowardZero
	// MoveAwayFromZero moves the paddle down the screen.
	MoveAwayFromZero
)

func (c Command) String() string {
	switch c {
	case None:
		return "None"
	case MoveTowardZero:
		return "MoveTowardZero"
	case MoveAwayFromZero:
		return "MoveAwayFromZero"
	default:
		return "Unknown"
	}
}

type Paddle struct {
	side     Side
	position float64
	score    uint32

	step float64
	max  float64
}

func New(side Side, cfg config.Config) *Paddle {
	p := &Paddle{
		side: side,
		step: cfg.PaddleSpeed,
		max:  cfg.MaxPaddlePosition(),
	}
	p.ResetPosition()
	return p
}

func (p *Paddle) Side() Side { return p.side }
func (p *Paddle) Position() float64 { return p.position }
func (p *Paddle) Score() uint32 { return p.score }
func (p *Paddle) MaxPosition() float64 { return p.max }

// Handle applies one movement command, clamping to the court. Unknown commands
// are ignored.
func (p *Paddle) Handle(cmd Command) {
	switch cmd {
	case MoveTowardZero:
		p.position -= p.step
		if p.position < 0 {
			p.position = 0
		}
	case MoveAwayFromZero:
		p.position += p.step
		if p.position > p.max {
			p.position = p.max
		}
	}
}

func (p *Paddle) Win() {
	p.score++
}

// ResetPosition recenters the paddle. The score is kept.
func (p *Paddle) ResetPosition() {
	p.position = p.max / 2
}
