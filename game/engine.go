// Package game drives one match: it owns both paddles and the ball and runs
// the round state machine one tick at a time.
package game

import (
	"log"

	"github.com/mo-shahab/pong-sim/ball"
	"github.com/mo-shahab/pong-sim/config"
	"github.com/mo-shahab/pong-sim/paddle"
)

// Engine is not safe for concurrent use. Each tick runs to completion without
// blocking.
type Engine struct {
	left  *paddle.Paddle
	right *paddle.Paddle
	ball  *ball.Ball

	state     State
	delay     int
	frozen    int
	tick      uint64
	observers []Observer
	logger    *log.Logger
}

type Option func(*Engine)

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// NewEngine creates a match in the InProgress state with both paddles centered
// and the ball at its spawn point. cfg is expected to be valid.
func NewEngine(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		left:   paddle.New(paddle.Left, cfg),
		right:  paddle.New(paddle.Right, cfg),
		ball:   ball.New(cfg),
		state:  InProgress,
		delay:  cfg.RoundOverTicks,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Paddle(side paddle.Side) *paddle.Paddle {
	if side == paddle.Right {
		return e.right
	}
	return e.left
}

func (e *Engine) Ball() *ball.Ball { return e.ball }
func (e *Engine) State() State { return e.state }
func (e *Engine) Ticks() uint64 { return e.tick }

// Handle applies a movement command to one paddle between ticks.
func (e *Engine) Handle(side paddle.Side, cmd paddle.Command) {
	switch side {
	case paddle.Left:
		e.left.Handle(cmd)
	case paddle.Right:
		e.right.Handle(cmd)
	}
}

// Tick advances the match by one step.
func (e *Engine) Tick() {
	e.tick++

	switch e.state {
	case InProgress:
		e.ball.Update(e.left.Position(), e.right.Position())

		crossing := e.ball.LastCrossing()
		if crossing.Kind != ball.SideOut {
			return
		}

		e.Paddle(crossing.Winner).Win()
		e.state = RoundOver
		e.frozen = 0
		e.logger.Printf("%s Player Scored! Score: %d-%d", crossing.Winner, e.left.Score(), e.right.Score())
		for _, o := range e.observers {
			o.OnScore(crossing.Winner, e.left.Score(), e.right.Score())
		}

	case RoundOver:
		if e.frozen < e.delay {
			e.frozen++
			return
		}
		e.reset()
	}
}

func (e *Engine) reset() {
	e.logger.Printf("Round reset after %d frozen ticks, score %d-%d", e.frozen, e.left.Score(), e.right.Score())

	e.left.ResetPosition()
	e.right.ResetPosition()
	e.ball.Reset()
	e.state = InProgress
	e.frozen = 0

	for _, o := range e.observers {
		o.OnRoundReset()
	}
}

// Snapshot copies out the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:  e.tick,
		State: e.state,
		Ball: BallState{
			Position: e.ball.Position(),
			Velocity: e.ball.Velocity(),
			Radius:   e.ball.Radius(),
		},
		Left:         paddleState(e.left),
		Right:        paddleState(e.right),
		LastCrossing: e.ball.LastCrossing(),
	}
}

func paddleState(p *paddle.Paddle) PaddleState {
	return PaddleState{Side: p.Side(), Position: p.Position(), Score: p.Score()}
}
