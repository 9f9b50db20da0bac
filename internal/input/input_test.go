package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-web/internal/game"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		key      string
		expected game.Event
		ok       bool
	}{
		{"Enter", game.Commit{}, true},
		{"Backspace", game.Backspace{}, true},
		{"Reset", game.Reset{}, true},
		{"a", game.Character{Letter: 'a'}, true},
		{"z", game.Character{Letter: 'z'}, true},
		{"Q", game.Character{Letter: 'q'}, true},
		{"1", nil, false},
		{" ", nil, false},
		{"Shift", nil, false},
		{"ArrowLeft", nil, false},
		{"é", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			ev, ok := Route(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, ev)
		})
	}
}

func TestLine(t *testing.T) {
	t.Run("letters then enter", func(t *testing.T) {
		evs := Line("Cr4ne")
		require.Len(t, evs, game.Cols+5)
		for _, ev := range evs[:game.Cols] {
			assert.Equal(t, game.Backspace{}, ev)
		}
		typed := evs[game.Cols:]
		assert.Equal(t, game.Character{Letter: 'c'}, typed[0])
		assert.Equal(t, game.Character{Letter: 'n'}, typed[2])
		assert.Equal(t, game.Commit{}, typed[4])
	})

	t.Run("reset", func(t *testing.T) {
		assert.Equal(t, []game.Event{game.Reset{}}, Line("!"))
	})

	t.Run("empty line clears and commits", func(t *testing.T) {
		evs := Line("")
		require.Len(t, evs, game.Cols+1)
		assert.Equal(t, game.Commit{}, evs[game.Cols])
	})
}
