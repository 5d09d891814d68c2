// Package input turns terminal key events into paddle commands.
package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/mo-shahab/pong-sim/paddle"
)

// Action is a command addressed to one paddle.
type Action struct {
	Side    paddle.Side
	Command paddle.Command
}

// Handler is anything that accepts paddle commands, typically a *game.Engine
// or a *room.Room.
type Handler interface {
	Handle(side paddle.Side, cmd paddle.Command)
}

// Action names used as keys of the [keys] config table.
var actionNames = map[string]Action{
	"left_up":    {paddle.Left, paddle.MoveTowardZero},
	"left_down":  {paddle.Left, paddle.MoveAwayFromZero},
	"right_up":   {paddle.Right, paddle.MoveTowardZero},
	"right_down": {paddle.Right, paddle.MoveAwayFromZero},
}

// tcell key names ("Up", "Down", "PgUp", ...) to keys
var keyByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

type Bindings struct {
	runes map[rune]Action
	keys  map[tcell.Key]Action
}

// Default binds W or Z and S to the left paddle and the arrow keys to the
// right one.
func Default() *Bindings {
	b := &Bindings{
		runes: make(map[rune]Action),
		keys:  make(map[tcell.Key]Action),
	}
	b.runes['w'] = actionNames["left_up"]
	b.runes['z'] = actionNames["left_up"]
	b.runes['s'] = actionNames["left_down"]
	b.keys[tcell.KeyUp] = actionNames["right_up"]
	b.keys[tcell.KeyDown] = actionNames["right_down"]
	return b
}

// FromConfig builds bindings from a [keys] table. An empty table yields the
// defaults; otherwise every listed action replaces the default keys of that
// action and unlisted actions keep theirs.
func FromConfig(keys map[string][]string) (*Bindings, error) {
	b := Default()
	for name, names := range keys {
		action, ok := actionNames[name]
		if !ok {
			return nil, fmt.Errorf("keys: unknown action %q", name)
		}
		b.unbind(action)
		for _, key := range names {
			if err := b.bind(key, action); err != nil {
				return nil, fmt.Errorf("keys.%s: %w", name, err)
			}
		}
	}
	return b, nil
}

func (b *Bindings) unbind(action Action) {
	for r, a := range b.runes {
		if a == action {
			delete(b.runes, r)
		}
	}
	for k, a := range b.keys {
		if a == action {
			delete(b.keys, k)
		}
	}
}

func (b *Bindings) bind(name string, action Action) error {
	ev, err := KeyEvent(name)
	if err != nil {
		return err
	}
	if ev.Key() == tcell.KeyRune {
		b.runes[unicode.ToLower(ev.Rune())] = action
		return nil
	}
	b.keys[ev.Key()] = action
	return nil
}

// Translate maps a key event to an action. Letters match regardless of case.
func (b *Bindings) Translate(ev *tcell.EventKey) (Action, bool) {
	if ev.Key() == tcell.KeyRune {
		a, ok := b.runes[unicode.ToLower(ev.Rune())]
		return a, ok
	}
	a, ok := b.keys[ev.Key()]
	return a, ok
}

// Dispatch translates ev and delivers the command to h. It reports whether the
// key was bound.
func (b *Bindings) Dispatch(ev *tcell.EventKey, h Handler) bool {
	a, ok := b.Translate(ev)
	if !ok {
		return false
	}
	h.Handle(a.Side, a.Command)
	return true
}
