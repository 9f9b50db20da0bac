package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/robalobadob/wordle/apps/go-web/internal/game"
)

var (
	correct = color.New(color.BgGreen, color.FgBlack, color.Bold)
	present = color.New(color.BgYellow, color.FgBlack, color.Bold)
	absent  = color.New(color.BgHiBlack, color.FgWhite, color.Bold)
	filled  = color.New(color.FgWhite, color.Bold)
	empty   = color.New(color.FgHiBlack)
	won     = color.New(color.FgGreen, color.Bold)
	lost    = color.New(color.FgRed, color.Bold)
)

// Fprint draws v for a terminal, one grid row per line.
func Fprint(w io.Writer, v View) {
	for _, row := range v.Rows {
		var b strings.Builder
		for j, t := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(paint(t))
		}
		fmt.Fprintln(w, b.String())
	}

	switch {
	case v.Status == game.StatusLoading:
		fmt.Fprintln(w, empty.Sprint("fetching a word..."))
	case v.Modal != nil && v.Modal.Won:
		fmt.Fprintln(w, won.Sprint(v.Modal.Title))
	case v.Modal != nil:
		fmt.Fprintf(w, "%s The correct word was: %s\n", lost.Sprint(v.Modal.Title), v.Modal.Solution)
	}
}

func paint(t Tile) string {
	letter := strings.ToUpper(t.Letter)
	switch t.State {
	case TileCorrect:
		return correct.Sprintf(" %s ", letter)
	case TilePresent:
		return present.Sprintf(" %s ", letter)
	case TileAbsent:
		return absent.Sprintf(" %s ", letter)
	case TileFilled:
		return filled.Sprintf("[%s]", letter)
	default:
		return empty.Sprint("[ ]")
	}
}
