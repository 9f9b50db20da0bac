// apps/go-web/internal/game/engine.go
//
// Transition function for a single Wordle round.
// Responsibilities:
//   - Apply keyboard-level events (character, backspace, commit) to a State.
//   - Start a new round on Reset and accept the fetched solution for it.
//   - Drop solutions fetched for a round that has since been reset.
//
// Notes:
//   - Reduce is pure: the caller owns the current State and replaces it.
//   - Invalid input (commit with a short guess, typing after the round ended,
//     anything before a solution exists) leaves the State unchanged.
package game

// Event is an input to Reduce.
type Event interface{ event() }

// Character appends a letter to the active guess.
type Character struct{ Letter byte }

// Backspace removes the last letter of the active guess.
type Backspace struct{}

// Commit locks the active guess into the next history slot.
type Commit struct{}

// Reset discards the round and waits for a new solution.
type Reset struct{}

// SolutionLoaded delivers a fetched solution for the given generation.
type SolutionLoaded struct {
	Generation uint64
	Word       string
}

// SolutionFailed reports a failed fetch for the given generation.
type SolutionFailed struct {
	Generation uint64
	Err        error
}

func (Character) event()      {}
func (Backspace) event()      {}
func (Commit) event()         {}
func (Reset) event()          {}
func (SolutionLoaded) event() {}
func (SolutionFailed) event() {}

// Reduce returns the state that results from applying ev to s.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case Character:
		if s.Status() != StatusInProgress || len(s.Buffer) >= Cols {
			return s
		}
		if e.Letter < 'a' || e.Letter > 'z' {
			return s
		}
		s.Buffer += string(e.Letter)
		return s

	case Backspace:
		if s.Status() != StatusInProgress || s.Buffer == "" {
			return s
		}
		s.Buffer = s.Buffer[:len(s.Buffer)-1]
		return s

	case Commit:
		if s.Status() != StatusInProgress || len(s.Buffer) != Cols {
			return s
		}
		s.History[s.Committed()] = s.Buffer
		s.Buffer = ""
		return s

	case Reset:
		return State{Generation: s.Generation + 1}

	case SolutionLoaded:
		if e.Generation != s.Generation || s.Solution != "" {
			return s
		}
		s.Solution = e.Word
		return s

	default:
		// SolutionFailed and unknown events do not change the round.
		return s
	}
}
