// Package view projects a game.State onto what a player sees: a 6×5 grid of
// tiles and, once the round is over, a result dialog.
package view

import (
	"strings"

	"github.com/robalobadob/wordle/apps/go-web/internal/game"
)

// TileState selects how a tile is drawn.
type TileState string

const (
	TileEmpty   TileState = "empty"
	TileFilled  TileState = "filled" // typed, not yet committed
	TileCorrect TileState = "correct"
	TilePresent TileState = "present"
	TileAbsent  TileState = "absent"
)

// Tile is one cell of the grid.
type Tile struct {
	Letter string    `json:"letter"`
	State  TileState `json:"state"`
}

// Modal is shown when the round has ended.
type Modal struct {
	Won      bool   `json:"won"`
	Title    string `json:"title"`
	Solution string `json:"solution,omitempty"` // uppercase, only after a loss
}

// View is the rendered round. It is also the websocket message sent to
// browsers, hence Type.
type View struct {
	Type   string                     `json:"type"`
	Status game.Status                `json:"status"`
	Rows   [game.Rows][game.Cols]Tile `json:"rows"`
	Modal  *Modal                     `json:"modal,omitempty"`
}

// Build renders s. Committed rows carry verdicts, the first empty row shows
// the active guess and the remaining rows are blank.
func Build(s game.State) View {
	v := View{Type: "view", Status: s.Status()}
	active := s.Committed()

	for i := 0; i < game.Rows; i++ {
		switch {
		case i < active:
			verdicts := game.Classify(s.History[i], s.Solution)
			for j := 0; j < game.Cols; j++ {
				v.Rows[i][j] = Tile{Letter: s.History[i][j : j+1], State: tileFor(verdicts[j])}
			}
		case i == active:
			for j := 0; j < game.Cols; j++ {
				if j < len(s.Buffer) {
					v.Rows[i][j] = Tile{Letter: s.Buffer[j : j+1], State: TileFilled}
				} else {
					v.Rows[i][j] = Tile{State: TileEmpty}
				}
			}
		default:
			for j := 0; j < game.Cols; j++ {
				v.Rows[i][j] = Tile{State: TileEmpty}
			}
		}
	}

	switch v.Status {
	case game.StatusWon:
		v.Modal = &Modal{Won: true, Title: "You Win!"}
	case game.StatusLost:
		v.Modal = &Modal{Title: "You Lost!", Solution: strings.ToUpper(s.Solution)}
	}
	return v
}

func tileFor(v game.Verdict) TileState {
	switch v {
	case game.VerdictCorrect:
		return TileCorrect
	case game.VerdictPresent:
		return TilePresent
	default:
		return TileAbsent
	}
}
