// apps/go-web/internal/words/words.go
//
// Word list management for the word list endpoint and the in-process source.
//
// Initialization behavior (Init):
//   1. If WORDS_ANSWERS_FILE is set, load answers from that file.
//   2. Otherwise fall back to the embedded assets/answers.txt.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z).
//   • Lists are normalized to lowercase.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordle/apps/go-web/assets"
	"github.com/robalobadob/wordle/apps/go-web/internal/game"
)

var (
	initOnce   sync.Once
	answers    []string
	initialErr error
)

// Init loads the answer list exactly once.
// Returns an error if the list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var raw []string
		var err error
		if path := os.Getenv("WORDS_ANSWERS_FILE"); path != "" {
			raw, err = readWordFile(path)
		} else {
			raw, err = assets.AnswersList()
		}
		if err != nil {
			initialErr = err
			return
		}
		answers = Normalize(raw)
		if len(answers) == 0 {
			initialErr = errors.New("words: answers list is empty")
		}
	})
	return initialErr
}

// Answers returns the loaded answer list (all lowercase).
func Answers() []string {
	return answers
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// Normalize lowercases and trims each candidate and keeps only valid
// 5-letter alphabetic words, preserving order.
func Normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.TrimSpace(strings.ToLower(w))
		if Valid(w) {
			out = append(out, w)
		}
	}
	return out
}

// Valid reports whether w is exactly game.Cols lowercase ASCII letters.
func Valid(w string) bool {
	if len(w) != game.Cols {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// Stats returns the number of loaded answers.
func Stats() int {
	return len(answers)
}
