package game

import (
	"github.com/mo-shahab/pong-sim/ball"
	"github.com/mo-shahab/pong-sim/paddle"
)

// State is the round controller's phase.
type State uint8

const (
	InProgress State = iota
	RoundOver
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "InProgress"
	case RoundOver:
		return "RoundOver"
	default:
		return "Unknown"
	}
}

type PaddleState struct {
	Side     paddle.Side
	Position float64
	Score    uint32
}

type BallState struct {
	Position ball.Vec
	Velocity ball.Vec
	Radius   float64
}

// Snapshot is everything a renderer needs to draw one frame.
type Snapshot struct {
	Tick         uint64
	State        State
	Ball         BallState
	Left         PaddleState
	Right        PaddleState
	LastCrossing ball.Crossing
}

// Observer receives round events as the engine produces them. Calls happen
// synchronously inside Tick.
type Observer interface {
	OnScore(winner paddle.Side, left, right uint32)
	OnRoundReset()
}
