package input

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// ScriptedKey is a key press replayed before the given tick.
type ScriptedKey struct {
	Tick  int
	Name  string
	Event *tcell.EventKey
}

// KeyEvent builds the event a terminal would deliver for a key name: a single
// character is a rune key, anything longer a tcell key name such as "Up".
func KeyEvent(name string) (*tcell.EventKey, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone), nil
	}
	k, ok := keyByName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown key %q", name)
	}
	return tcell.NewEventKey(k, 0, tcell.ModNone), nil
}

// ParseScript reads "tick:key" entries separated by commas, e.g.
// "10:w,10:Down,42:s". The result is ordered by tick; presses on the same
// tick keep their written order.
func ParseScript(s string) ([]ScriptedKey, error) {
	var keys []ScriptedKey
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		tickStr, name, ok := strings.Cut(entry, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("script entry %q: want tick:key", entry)
		}
		tick, err := strconv.Atoi(strings.TrimSpace(tickStr))
		if err != nil || tick < 0 {
			return nil, fmt.Errorf("script entry %q: bad tick", entry)
		}
		ev, err := KeyEvent(name)
		if err != nil {
			return nil, fmt.Errorf("script entry %q: %w", entry, err)
		}
		keys = append(keys, ScriptedKey{Tick: tick, Name: name, Event: ev})
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].Tick < keys[j].Tick })
	return keys, nil
}
