package terminal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-web/internal/words"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func play(t *testing.T, src words.Source, input string) (string, error) {
	t.Helper()
	noColor(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	err := Play(ctx, src, strings.NewReader(input), &out)
	return out.String(), err
}

func TestPlayWin(t *testing.T) {
	out, err := play(t, words.NewListSource([]string{"crane"}), "adieu\ncrane\nn\n")
	require.NoError(t, err)

	assert.Contains(t, out, " A   D   I   E   U ")
	assert.Contains(t, out, "You Win!")
	assert.Contains(t, out, "Play again? [y/N]")
}

func TestPlayLoss(t *testing.T) {
	out, err := play(t, words.NewListSource([]string{"mango"}),
		"crane\nadieu\npilot\nstump\nbrick\nfjord\n")
	require.NoError(t, err)

	assert.Contains(t, out, "You Lost!")
	assert.Contains(t, out, "The correct word was: MANGO")
}

func TestPlayShortGuess(t *testing.T) {
	out, err := play(t, words.NewListSource([]string{"crane"}), "cra\ncrane\n")
	require.NoError(t, err)

	assert.Contains(t, out, "guesses need 5 letters")
	assert.Contains(t, out, "You Win!")
}

func TestPlayAgain(t *testing.T) {
	out, err := play(t, words.NewListSource([]string{"crane"}), "crane\ny\ncrane\nno\n")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "You Win!"))
}

func TestPlayFetchFailure(t *testing.T) {
	_, err := play(t, words.NewListSource(nil), "crane\n")

	var fe *words.FetchError
	require.ErrorAs(t, err, &fe)
}

func TestPlayNoInput(t *testing.T) {
	_, err := play(t, words.NewListSource([]string{"crane"}), "")
	assert.NoError(t, err)
}

// flakySource fails its first fetch and answers "crane" afterwards. Each call
// is announced on started and held until the matching release is closed.
type flakySource struct {
	calls   atomic.Int32
	started chan int
	release [2]chan struct{}
}

func newFlakySource() *flakySource {
	return &flakySource{
		started: make(chan int, 2),
		release: [2]chan struct{}{make(chan struct{}), make(chan struct{})},
	}
}

func (s *flakySource) Fetch(ctx context.Context) (string, error) {
	n := int(s.calls.Add(1)) - 1
	if n >= len(s.release) {
		return "", errors.New("unexpected fetch")
	}
	s.started <- n
	select {
	case <-s.release[n]:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if n == 0 {
		return "", &words.FetchError{Op: "status", Err: errors.New("unexpected status 503")}
	}
	return "crane", nil
}

func (s *flakySource) waitCall(t *testing.T, want int) {
	t.Helper()
	select {
	case n := <-s.started:
		require.Equal(t, want, n)
	case <-time.After(2 * time.Second):
		t.Fatalf("fetch %d never started", want)
	}
}

func TestPlayRetryIgnoresEarlierFailure(t *testing.T) {
	noColor(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src := newFlakySource()
	in, typed := io.Pipe()
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- Play(ctx, src, in, &out) }()

	src.waitCall(t, 0)
	_, err := io.WriteString(typed, "!\n")
	require.NoError(t, err)
	src.waitCall(t, 1)

	// The first round's failure lands after "!" already started the second.
	close(src.release[0])
	_, err = io.WriteString(typed, "crane\n")
	require.NoError(t, err)
	require.NoError(t, typed.Close())
	close(src.release[1])

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("Play did not return")
	}
	assert.Contains(t, out.String(), "You Win!")
}
