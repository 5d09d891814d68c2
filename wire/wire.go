// Package wire encodes game snapshots in protobuf wire format so a renderer in
// any language can decode them with a matching .proto:
//
//	message Snapshot {
//	  uint64   tick          = 1;
//	  uint32   state         = 2;
//	  Ball     ball          = 3;
//	  Paddle   left          = 4;
//	  Paddle   right         = 5;
//	  Crossing last_crossing = 6;
//	}
//	message Ball     { double x = 1; double y = 2; double dx = 3; double dy = 4; double radius = 5; }
//	message Paddle   { uint32 side = 1; double position = 2; uint32 score = 3; }
//	message Crossing { uint32 kind = 1; double dx = 2; double dy = 3; uint32 winner = 4; }
package wire

import (
	"errors"
	"fmt"
	"io"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mo-shahab/pong-sim/ball"
	"github.com/mo-shahab/pong-sim/game"
	"github.com/mo-shahab/pong-sim/paddle"
)

var (
	ErrTruncated  = errors.New("wire: truncated message")
	ErrOutOfRange = errors.New("wire: value out of range")
)

const (
	snapshotTick     protowire.Number = 1
	snapshotState    protowire.Number = 2
	snapshotBall     protowire.Number = 3
	snapshotLeft     protowire.Number = 4
	snapshotRight    protowire.Number = 5
	snapshotCrossing protowire.Number = 6

	ballX      protowire.Number = 1
	ballY      protowire.Number = 2
	ballDX     protowire.Number = 3
	ballDY     protowire.Number = 4
	ballRadius protowire.Number = 5

	paddleSide     protowire.Number = 1
	paddlePosition protowire.Number = 2
	paddleScore    protowire.Number = 3

	crossingKind   protowire.Number = 1
	crossingDX     protowire.Number = 2
	crossingDY     protowire.Number = 3
	crossingWinner protowire.Number = 4
)

// Encode returns the wire form of s.
func Encode(s game.Snapshot) []byte {
	return AppendSnapshot(nil, s)
}

func AppendSnapshot(b []byte, s game.Snapshot) []byte {
	b = appendVarint(b, snapshotTick, s.Tick)
	b = appendVarint(b, snapshotState, uint64(s.State))
	b = appendMessage(b, snapshotBall, appendBall(nil, s.Ball))
	b = appendMessage(b, snapshotLeft, appendPaddle(nil, s.Left))
	b = appendMessage(b, snapshotRight, appendPaddle(nil, s.Right))
	b = appendMessage(b, snapshotCrossing, appendCrossing(nil, s.LastCrossing))
	return b
}

func appendBall(b []byte, s game.BallState) []byte {
	b = appendDouble(b, ballX, s.Position.X)
	b = appendDouble(b, ballY, s.Position.Y)
	b = appendDouble(b, ballDX, s.Velocity.X)
	b = appendDouble(b, ballDY, s.Velocity.Y)
	b = appendDouble(b, ballRadius, s.Radius)
	return b
}

func appendPaddle(b []byte, p game.PaddleState) []byte {
	b = appendVarint(b, paddleSide, uint64(p.Side))
	b = appendDouble(b, paddlePosition, p.Position)
	b = appendVarint(b, paddleScore, uint64(p.Score))
	return b
}

func appendCrossing(b []byte, c ball.Crossing) []byte {
	b = appendVarint(b, crossingKind, uint64(c.Kind))
	b = appendDouble(b, crossingDX, c.Velocity.X)
	b = appendDouble(b, crossingDY, c.Velocity.Y)
	b = appendVarint(b, crossingWinner, uint64(c.Winner))
	return b
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendMessage(b []byte, num protowire.Number, m []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m)
}

// Decode parses a snapshot produced by Encode. Unknown fields are skipped.
func Decode(b []byte) (game.Snapshot, error) {
	var s game.Snapshot
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == snapshotTick && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			s.Tick = v
			return n, nil
		case num == snapshotState && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n >= 0 && v > uint64(game.RoundOver) {
				return n, outOfRange("state", v)
			}
			s.State = game.State(v)
			return n, nil
		case typ == protowire.BytesType && num >= snapshotBall && num <= snapshotCrossing:
			m, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			var err error
			switch num {
			case snapshotBall:
				s.Ball, err = decodeBall(m)
			case snapshotLeft:
				s.Left, err = decodePaddle(m)
			case snapshotRight:
				s.Right, err = decodePaddle(m)
			case snapshotCrossing:
				s.LastCrossing, err = decodeCrossing(m)
			}
			return n, err
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return game.Snapshot{}, err
	}
	return s, nil
}

func decodeBall(b []byte) (game.BallState, error) {
	var s game.BallState
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.Fixed64Type {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
		v, n := consumeDouble(b)
		switch num {
		case ballX:
			s.Position.X = v
		case ballY:
			s.Position.Y = v
		case ballDX:
			s.Velocity.X = v
		case ballDY:
			s.Velocity.Y = v
		case ballRadius:
			s.Radius = v
		}
		return n, nil
	})
	return s, err
}

func decodePaddle(b []byte) (game.PaddleState, error) {
	var p game.PaddleState
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == paddleSide && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n >= 0 && v > uint64(paddle.Right) {
				return n, outOfRange("paddle side", v)
			}
			p.Side = paddle.Side(v)
			return n, nil
		case num == paddlePosition && typ == protowire.Fixed64Type:
			v, n := consumeDouble(b)
			p.Position = v
			return n, nil
		case num == paddleScore && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n >= 0 && v > math.MaxUint32 {
				return n, outOfRange("score", v)
			}
			p.Score = uint32(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return p, err
}

func decodeCrossing(b []byte) (ball.Crossing, error) {
	var c ball.Crossing
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == crossingKind && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n >= 0 && v > uint64(ball.SideOut) {
				return n, outOfRange("crossing kind", v)
			}
			c.Kind = ball.Kind(v)
			return n, nil
		case num == crossingDX && typ == protowire.Fixed64Type:
			v, n := consumeDouble(b)
			c.Velocity.X = v
			return n, nil
		case num == crossingDY && typ == protowire.Fixed64Type:
			v, n := consumeDouble(b)
			c.Velocity.Y = v
			return n, nil
		case num == crossingWinner && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n >= 0 && v > uint64(paddle.Right) {
				return n, outOfRange("winner", v)
			}
			c.Winner = paddle.Side(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return c, err
}

func outOfRange(field string, v uint64) error {
	return fmt.Errorf("%w: %s %d", ErrOutOfRange, field, v)
}

func consumeDouble(b []byte) (float64, int) {
	v, n := protowire.ConsumeFixed64(b)
	return math.Float64frombits(v), n
}

// walk calls field for every tag in b. field consumes the value that follows
// the tag and returns how many bytes it used, or a negative protowire error
// code.
func walk(b []byte, field func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return parseError(n)
		}
		b = b[n:]

		n, err := field(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			return parseError(n)
		}
		b = b[n:]
	}
	return nil
}

func parseError(n int) error {
	err := protowire.ParseError(n)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return fmt.Errorf("wire: %w", err)
}
