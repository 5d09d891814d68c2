package ball

import (
	"math"
	"testing"

	"github.com/mo-shahab/pong-sim/config"
	"github.com/mo-shahab/pong-sim/paddle"
)

func TestNewBallAtSpawn(t *testing.T) {
	b := New(config.Default())
	if b.Position() != (Vec{397.5, 297.5}) {
		t.Fatalf("position = %v, want (397.5, 297.5)", b.Position())
	}
	if b.Velocity() != (Vec{2.5, 2.5}) {
		t.Fatalf("velocity = %v, want (2.5, 2.5)", b.Velocity())
	}
	if b.LastCrossing().Kind != Nothing {
		t.Fatalf("last crossing = %s, want Nothing", b.LastCrossing())
	}
}

func TestUpdateAdvancesAfterBounce(t *testing.T) {
	b := New(config.Default())
	b.Place(Vec{400, 595}, Vec{2.5, 2.5})

	b.Update(275, 275)
	if b.LastCrossing().Kind != Bounce {
		t.Fatalf("last crossing = %s, want Bounce", b.LastCrossing())
	}
	if b.Velocity() != (Vec{2.5, -2.5}) {
		t.Fatalf("velocity = %v, want (2.5, -2.5)", b.Velocity())
	}
	if b.Position() != (Vec{402.5, 592.5}) {
		t.Fatalf("position = %v, want (402.5, 592.5)", b.Position())
	}
}

func TestUpdateKeepsMovingOnSideOut(t *testing.T) {
	b := New(config.Default())
	b.Place(Vec{795, 300}, Vec{2.5, 2.5})

	b.Update(275, 275)
	want := Crossing{Kind: SideOut, Winner: paddle.Left}
	if b.LastCrossing() != want {
		t.Fatalf("last crossing = %s, want %s", b.LastCrossing(), want)
	}
	if b.Position() != (Vec{797.5, 302.5}) {
		t.Fatalf("position = %v, want (797.5, 302.5)", b.Position())
	}
}

func TestSpeedConservedOverManyUpdates(t *testing.T) {
	cfg := config.Default()
	b := New(cfg)
	for i := 0; i < 5000; i++ {
		b.Update(0, cfg.MaxPaddlePosition())
		if b.LastCrossing().Kind == SideOut {
			b.Reset()
		}
		v := b.Velocity()
		if math.Abs(v.X) != cfg.BallSpeed || math.Abs(v.Y) != cfg.BallSpeed {
			t.Fatalf("tick %d: velocity %v lost speed %v", i, v, cfg.BallSpeed)
		}
	}
}

func TestResetRestoresCanonicalState(t *testing.T) {
	b := New(config.Default())
	b.Place(Vec{100, 100}, Vec{-2.5, -2.5})
	b.Update(275, 275)

	b.Reset()
	if b.Position() != (Vec{397.5, 297.5}) || b.Velocity() != (Vec{2.5, 2.5}) {
		t.Fatalf("reset left ball at %v moving %v", b.Position(), b.Velocity())
	}
	if b.LastCrossing().Kind != Nothing {
		t.Fatalf("last crossing = %s, want Nothing", b.LastCrossing())
	}
}

func TestPlaceRejectsWrongSpeed(t *testing.T) {
	b := New(config.Default())
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for velocity with the wrong speed")
		}
	}()
	b.Place(Vec{100, 100}, Vec{3, 2.5})
}
