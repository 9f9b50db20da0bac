// Package input maps key names, as reported by a browser KeyboardEvent.key or
// typed on a terminal, to game events.
package input

import "github.com/robalobadob/wordle/apps/go-web/internal/game"

// Named keys.
const (
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
	// KeyReset is not a keyboard key; the game-over dialog sends it.
	KeyReset = "Reset"
)

// Route returns the event for key, or false if the key is ignored.
// Single ASCII letters are accepted in either case and delivered lowercase.
func Route(key string) (game.Event, bool) {
	switch key {
	case KeyEnter:
		return game.Commit{}, true
	case KeyBackspace:
		return game.Backspace{}, true
	case KeyReset:
		return game.Reset{}, true
	}
	if len(key) != 1 {
		return nil, false
	}
	c := key[0]
	switch {
	case c >= 'a' && c <= 'z':
		return game.Character{Letter: c}, true
	case c >= 'A' && c <= 'Z':
		return game.Character{Letter: c + ('a' - 'A')}, true
	}
	return nil, false
}

// Line converts one line of terminal input into key presses. The line
// replaces whatever is in the active guess: it starts with enough Backspaces
// to clear it, routes every rune as a key and ends with Enter. A line of
// just "!" asks for a new round.
func Line(line string) []game.Event {
	if line == "!" {
		return []game.Event{game.Reset{}}
	}
	out := make([]game.Event, 0, game.Cols+len(line)+1)
	for i := 0; i < game.Cols; i++ {
		out = append(out, game.Backspace{})
	}
	for _, r := range line {
		if ev, ok := Route(string(r)); ok {
			out = append(out, ev)
		}
	}
	return append(out, game.Commit{})
}
