package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mo-shahab/pong-sim/ball"
	"github.com/mo-shahab/pong-sim/game"
	"github.com/mo-shahab/pong-sim/wire"
)

func readTrace(t *testing.T, path string) []game.Snapshot {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open trace: %v", err)
	}
	defer f.Close()

	var frames []game.Snapshot
	r := wire.NewReader(f)
	for {
		s, err := r.Read()
		if err == io.EOF {
			return frames
		}
		if err != nil {
			t.Fatalf("frame %d: %v", len(frames), err)
		}
		frames = append(frames, s)
	}
}

func TestRunWritesTraceWithSideOutAndReset(t *testing.T) {
	out := filepath.Join(t.TempDir(), "trace.bin")
	if err := run("", 400, 2, out, ""); err != nil {
		t.Fatalf("run: %v", err)
	}

	frames := readTrace(t, out)
	if len(frames) != 400 {
		t.Fatalf("got %d frames, want 400", len(frames))
	}

	// frame i holds the state after tick i+1
	scored := frames[159]
	if scored.Tick != 160 || scored.State != game.RoundOver || scored.LastCrossing.Kind != ball.SideOut {
		t.Fatalf("tick 160 = %+v, want a side-out", scored)
	}
	if scored.Left.Score != 1 || scored.Right.Score != 0 {
		t.Fatalf("score after first side-out = %d-%d, want 1-0", scored.Left.Score, scored.Right.Score)
	}

	reset := frames[160]
	if reset.State != game.InProgress || reset.Ball.Position != (ball.Vec{X: 397.5, Y: 297.5}) {
		t.Fatalf("tick 161 = %+v, want a reset to the spawn point", reset)
	}

	last := frames[399]
	if last.Left.Score != 2 || last.Right.Score != 0 {
		t.Fatalf("final score = %d-%d, want 2-0", last.Left.Score, last.Right.Score)
	}
}

func TestRunAppliesScriptedKeys(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pong.toml")
	if err := os.WriteFile(cfgPath, []byte("[keys]\nleft_up = [\"i\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "trace.bin")

	// w is no longer bound once left_up is overridden
	if err := run(cfgPath, 3, 1, out, "0:i,0:w,1:Down,1:Down"); err != nil {
		t.Fatalf("run: %v", err)
	}

	frames := readTrace(t, out)
	if got := frames[0].Left.Position; got != 265 {
		t.Fatalf("left paddle after tick 1 = %v, want 265", got)
	}
	if got := frames[1].Right.Position; got != 295 {
		t.Fatalf("right paddle after tick 2 = %v, want 295", got)
	}
}

func TestRunRejectsBadArguments(t *testing.T) {
	if err := run("", 10, 0, "", ""); err == nil {
		t.Fatalf("expected an error for zero matches")
	}
	if err := run("", 10, 1, "", "soon:w"); err == nil {
		t.Fatalf("expected an error for a malformed key script")
	}
	if err := run(filepath.Join(t.TempDir(), "missing.toml"), 10, 1, "", ""); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
