// apps/go-web/internal/game/types.go
//
// Core type definitions for the Wordle game session.
// Defines:
//   - Verdict: per-letter result of a committed guess (correct/present/absent).
//   - Status:  derived round outcome (loading/in_progress/won/lost).
//   - State:   immutable snapshot of a single round.

package game

const (
	// Rows is the number of guesses a round allows.
	Rows = 6
	// Cols is the number of letters in a solution and in a full guess.
	Cols = 5
)

// Verdict represents the evaluation result for a single letter in a guess.
//   - "correct": letter is in the solution at this position.
//   - "present": letter is in the solution, somewhere else.
//   - "absent":  letter is not in the solution at all.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictPresent Verdict = "present"
	VerdictAbsent  Verdict = "absent"
)

// Status is the coarse state of a round.
type Status string

const (
	StatusLoading    Status = "loading"
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// State holds one round. It is a value: transitions return a new State
// and never modify the receiver.
type State struct {
	Solution   string       // Lowercase solution; empty while loading.
	History    [Rows]string // Committed guesses, filled left to right.
	Buffer     string       // The active (uncommitted) guess.
	Generation uint64       // Incremented on every reset; tags word fetches.
}

// Committed returns the number of filled history slots.
func (s State) Committed() int {
	n := 0
	for _, g := range s.History {
		if g == "" {
			break
		}
		n++
	}
	return n
}

// Status derives the round outcome from the solution and history.
func (s State) Status() Status {
	if s.Solution == "" {
		return StatusLoading
	}
	n := s.Committed()
	for _, g := range s.History[:n] {
		if g == s.Solution {
			return StatusWon
		}
	}
	if n == Rows {
		return StatusLost
	}
	return StatusInProgress
}

// Won is shorthand for Status() == StatusWon.
func (s State) Won() bool { return s.Status() == StatusWon }
