package game

import "strings"

// Classify compares a committed guess against the solution, position by position.
//
// A letter that is not at its position but occurs anywhere in the solution is
// Present, regardless of how many times it occurs. Positions past the end of
// the guess are Absent.
func Classify(guess, solution string) [Cols]Verdict {
	var out [Cols]Verdict
	for i := 0; i < Cols; i++ {
		switch {
		case i >= len(guess):
			out[i] = VerdictAbsent
		case i < len(solution) && guess[i] == solution[i]:
			out[i] = VerdictCorrect
		case strings.IndexByte(solution, guess[i]) >= 0:
			out[i] = VerdictPresent
		default:
			out[i] = VerdictAbsent
		}
	}
	return out
}
