package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		guess    string
		solution string
		expected [Cols]Verdict
	}{
		{
			name:     "one letter off",
			guess:    "crate",
			solution: "crane",
			expected: [Cols]Verdict{VerdictCorrect, VerdictCorrect, VerdictCorrect, VerdictAbsent, VerdictCorrect},
		},
		{
			name:     "exact match",
			guess:    "crane",
			solution: "crane",
			expected: [Cols]Verdict{VerdictCorrect, VerdictCorrect, VerdictCorrect, VerdictCorrect, VerdictCorrect},
		},
		{
			name:     "shared letters in other positions",
			guess:    "adieu",
			solution: "crane",
			expected: [Cols]Verdict{VerdictPresent, VerdictAbsent, VerdictAbsent, VerdictPresent, VerdictAbsent},
		},
		{
			name:     "nothing shared",
			guess:    "stump",
			solution: "crane",
			expected: [Cols]Verdict{VerdictAbsent, VerdictAbsent, VerdictAbsent, VerdictAbsent, VerdictAbsent},
		},
		{
			// Every extra 'e' is Present even though the solution has one.
			name:     "duplicates use containment only",
			guess:    "eerie",
			solution: "crane",
			expected: [Cols]Verdict{VerdictPresent, VerdictPresent, VerdictPresent, VerdictAbsent, VerdictCorrect},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.guess, tt.solution))
		})
	}
}

func TestClassifyCorrectIffSamePosition(t *testing.T) {
	pairs := [][2]string{
		{"crane", "crate"}, {"mango", "among"}, {"llama", "lemma"},
		{"speed", "deeps"}, {"robot", "orbit"}, {"zzzzz", "abcde"},
	}
	for _, p := range pairs {
		g, s := p[0], p[1]
		got := Classify(g, s)
		for i := 0; i < Cols; i++ {
			assert.Equal(t, g[i] == s[i], got[i] == VerdictCorrect, "%s vs %s at %d", g, s, i)
		}
	}
}
