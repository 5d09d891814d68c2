// pongsim runs matches headless and optionally writes every frame to a trace
// file of length-delimited snapshots. Key presses for the first match can be
// scripted with -keys; they go through the same bindings a terminal front end
// would use, including the [keys] table of the config file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/mo-shahab/pong-sim/config"
	"github.com/mo-shahab/pong-sim/game"
	"github.com/mo-shahab/pong-sim/input"
	"github.com/mo-shahab/pong-sim/paddle"
	"github.com/mo-shahab/pong-sim/room"
	"github.com/mo-shahab/pong-sim/wire"
)

// roundCounter is only touched from its room's ticking goroutine.
type roundCounter struct {
	scored map[paddle.Side]int
}

func (c *roundCounter) OnScore(winner paddle.Side, left, right uint32) {
	c.scored[winner]++
}

func (c *roundCounter) OnRoundReset() {}

func main() {
	configPath := flag.String("config", "", "TOML file overriding the default court")
	ticks := flag.Int("ticks", 10000, "ticks to simulate per match")
	matches := flag.Int("matches", 1, "number of independent matches")
	out := flag.String("out", "", "write a snapshot trace of the first match to this file")
	keys := flag.String("keys", "", `key presses for the first match as "tick:key,...", e.g. "10:w,12:Down"`)
	flag.Parse()

	if err := run(*configPath, *ticks, *matches, *out, *keys); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string, ticks, matches int, out, keys string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if matches < 1 {
		return fmt.Errorf("matches must be at least 1, got %d", matches)
	}

	bindings, err := input.FromConfig(cfg.Keys)
	if err != nil {
		return err
	}
	script, err := input.ParseScript(keys)
	if err != nil {
		return fmt.Errorf("-keys: %w", err)
	}

	var (
		trace *wire.Writer
		bw    *bufio.Writer
	)
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create trace: %w", err)
		}
		defer f.Close()
		bw = bufio.NewWriter(f)
		trace = wire.NewWriter(bw)
	}

	manager := room.NewManager(log.Default())
	counters := make(map[string]*roundCounter, matches)

	rooms := make([]*room.Room, 0, matches)
	for i := 0; i < matches; i++ {
		c := &roundCounter{scored: make(map[paddle.Side]int)}
		r, err := manager.CreateRoom(cfg, game.WithObserver(c))
		if err != nil {
			return err
		}
		counters[r.ID] = c
		rooms = append(rooms, r)
	}

	errs := make(chan error, len(rooms))
	var wg sync.WaitGroup
	for i, r := range rooms {
		wg.Add(1)
		go func(r *room.Room, first bool) {
			defer wg.Done()
			traced := first && trace != nil
			next := 0
			for t := 0; t < ticks; t++ {
				for first && next < len(script) && script[next].Tick == t {
					if !bindings.Dispatch(script[next].Event, r) {
						log.Printf("room %s: key %q is not bound, ignored", r.ID, script[next].Name)
					}
					next++
				}

				r.Tick()
				if traced {
					if err := trace.Write(r.Snapshot()); err != nil {
						errs <- err
						return
					}
				}
			}
		}(r, i == 0)
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return err
	}
	if bw != nil {
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("flush trace: %w", err)
		}
	}

	for _, id := range manager.List() {
		r, _ := manager.GetRoom(id)
		s := r.Snapshot()
		c := counters[id]
		log.Printf("room %s: %d ticks, %d rounds, score %d-%d", id, s.Tick, c.scored[paddle.Left]+c.scored[paddle.Right], s.Left.Score, s.Right.Score)
		if err := manager.RemoveRoom(id); err != nil {
			return err
		}
	}
	return nil
}
