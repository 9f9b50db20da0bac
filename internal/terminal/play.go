// Package terminal plays rounds on a line-oriented terminal: each line is a
// guess, the grid is redrawn after every commit.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordle/apps/go-web/internal/game"
	"github.com/robalobadob/wordle/apps/go-web/internal/input"
	"github.com/robalobadob/wordle/apps/go-web/internal/session"
	"github.com/robalobadob/wordle/apps/go-web/internal/view"
	"github.com/robalobadob/wordle/apps/go-web/internal/words"
)

// Play runs a session against src until in is exhausted, the player declines
// another round, or ctx is cancelled.
func Play(ctx context.Context, src words.Source, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Only the newest published state and the newest failure matter here.
	updates := make(chan game.State, 1)
	sess := session.New("terminal", src, func(st game.State) {
		select {
		case updates <- st:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- st
		}
	})
	failures := make(chan fetchFailure, 1)
	sess.OnFetchError(func(gen uint64, err error) {
		f := fetchFailure{gen: gen, err: err}
		select {
		case failures <- f:
		default:
			select {
			case <-failures:
			default:
			}
			failures <- f
		}
	})
	go func() { _ = sess.Run(ctx) }()

	lines := make(chan string)
	go func(lines chan<- string) {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- strings.TrimSpace(sc.Text()):
			case <-ctx.Done():
				return
			}
		}
	}(lines)

	var (
		cur      game.State
		pending  []string
		fetchErr error
	)
	show(out, cur)

	apply := func(line string) (bool, error) {
		next, done, err := handle(ctx, sess, cur, line, out)
		if err != nil || done {
			return true, err
		}
		if next.Generation != cur.Generation {
			fetchErr = nil
		}
		cur = next
		return false, nil
	}

	for {
		loading := cur.Status() == game.StatusLoading
		switch {
		case lines == nil && len(pending) == 0:
			return nil
		case lines == nil && loading && fetchErr != nil:
			// Nobody is left to type "!" for another attempt.
			return fetchErr
		case !loading && len(pending) > 0:
			line := pending[0]
			pending = pending[1:]
			if stop, err := apply(line); stop {
				return err
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-sess.Done():
			return nil

		case st := <-updates:
			if loading && st.Generation == cur.Generation && st.Status() != game.StatusLoading {
				cur = st
				show(out, cur)
			}

		case f := <-failures:
			// A failure for a round the player already replaced with "!" is moot.
			if f.gen == cur.Generation {
				fetchErr = f.err
			}

		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			// Lines typed while a word is being fetched wait for it, except "!".
			if loading && line != "!" {
				pending = append(pending, line)
				continue
			}
			if stop, err := apply(line); stop {
				return err
			}
		}
	}
}

// handle applies one line of input. done reports that the player quit.
func handle(ctx context.Context, sess *session.Session, cur game.State, line string, out io.Writer) (game.State, bool, error) {
	var evs []game.Event
	if cur.Status().Terminal() {
		if !strings.EqualFold(line, "y") && !strings.EqualFold(line, "yes") {
			return cur, true, nil
		}
		evs = []game.Event{game.Reset{}}
	} else {
		evs = input.Line(line)
	}

	next, err := sess.Apply(ctx, evs...)
	if err != nil {
		return cur, false, err
	}
	switch {
	case next.Generation != cur.Generation || next.Committed() != cur.Committed():
		show(out, next)
	case next.Status() == game.StatusInProgress:
		fmt.Fprintf(out, "guesses need %d letters\n", game.Cols)
	}
	return next, false, nil
}

func show(out io.Writer, st game.State) {
	v := view.Build(st)
	fmt.Fprintln(out)
	view.Fprint(out, v)
	switch {
	case v.Status == game.StatusLoading:
		fmt.Fprintln(out, "(type ! to fetch another word)")
	case v.Status.Terminal():
		fmt.Fprint(out, "Play again? [y/N] ")
	}
}

// fetchFailure is a failed fetch and the round it was issued for.
type fetchFailure struct {
	gen uint64
	err error
}
