// apps/go-web/internal/session/session.go
//
// A Session runs one player's rounds.
// Responsibilities:
//   - Own the game.State; only the Run goroutine reads or replaces it.
//   - Feed dispatched events through game.Reduce in arrival order.
//   - Start one solution fetch per round, tagged with the round's generation,
//     and deliver its result back through the same event queue.
//   - Publish every new state to the owner (websocket writer, terminal).
//
// Notes:
//   - A fetch for a round that was reset meanwhile still completes; its
//     result is dropped by the reducer because the generation no longer matches.
//   - A failed fetch is logged and the round stays loading. There is no retry.

package session

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-web/internal/game"
	"github.com/robalobadob/wordle/apps/go-web/internal/words"
)

// ErrClosed is returned by Dispatch once Run has returned.
var ErrClosed = errors.New("session closed")

// queueSize bounds buffered events; keystrokes beyond it wait for the loop.
const queueSize = 32

// request carries events into the loop; reply, when set, receives the state
// after the last event was applied.
type request struct {
	events []game.Event
	reply  chan game.State
}

// Session is a single player's game loop.
type Session struct {
	ID      string
	src     words.Source
	publish func(game.State)
	failed  func(gen uint64, err error)

	requests chan request
	done     chan struct{}
	current  atomic.Pointer[game.State]
}

// New creates a session. publish is called from the Run goroutine with the
// initial state and after every change; it must not block for long.
func New(id string, src words.Source, publish func(game.State)) *Session {
	if publish == nil {
		publish = func(game.State) {}
	}
	s := &Session{
		ID:       id,
		src:      src,
		publish:  publish,
		requests: make(chan request, queueSize),
		done:     make(chan struct{}),
	}
	s.current.Store(&game.State{})
	return s
}

// OnFetchError registers fn to receive every failed fetch together with the
// generation it was issued for. It must be called before Run; fn runs on the
// Run goroutine.
func (s *Session) OnFetchError(fn func(gen uint64, err error)) {
	s.failed = fn
}

// Current returns the most recently published state.
func (s *Session) Current() game.State {
	return *s.current.Load()
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Dispatch queues ev for the loop. It blocks while the queue is full.
func (s *Session) Dispatch(ctx context.Context, ev game.Event) error {
	return s.send(ctx, request{events: []game.Event{ev}})
}

// Apply queues evs as one batch and waits until the loop has applied them,
// returning the resulting state.
func (s *Session) Apply(ctx context.Context, evs ...game.Event) (game.State, error) {
	req := request{events: evs, reply: make(chan game.State, 1)}
	if err := s.send(ctx, req); err != nil {
		return game.State{}, err
	}
	select {
	case st := <-req.reply:
		return st, nil
	case <-s.done:
		return game.State{}, ErrClosed
	case <-ctx.Done():
		return game.State{}, ctx.Err()
	}
}

func (s *Session) send(ctx context.Context, req request) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.requests <- req:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run fetches the first solution and processes events until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	logger := log.With().Str("session", s.ID).Logger()
	state := game.State{}
	s.publish(state)
	s.fetch(ctx, state.Generation)

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("session stopped")
			return ctx.Err()

		case req := <-s.requests:
			for _, ev := range req.events {
				state = s.step(ctx, &logger, state, ev)
			}
			if req.reply != nil {
				req.reply <- state
			}
		}
	}
}

// step applies one event, starts a fetch when a new round begins and
// publishes the result if anything changed.
func (s *Session) step(ctx context.Context, logger *zerolog.Logger, state game.State, ev game.Event) game.State {
	next := game.Reduce(state, ev)

	switch e := ev.(type) {
	case game.SolutionFailed:
		logger.Error().Err(e.Err).Uint64("generation", e.Generation).Msg("failed to fetch word")
		if s.failed != nil {
			s.failed(e.Generation, e.Err)
		}
	case game.SolutionLoaded:
		if next == state {
			logger.Debug().Uint64("generation", e.Generation).Msg("dropped stale word")
		} else {
			logger.Debug().Str("solution", e.Word).Msg("round started")
		}
	case game.Commit:
		if next.Status().Terminal() && !state.Status().Terminal() {
			logger.Info().Str("status", string(next.Status())).Int("guesses", next.Committed()).Msg("round finished")
		}
	}

	if next.Generation != state.Generation {
		s.fetch(ctx, next.Generation)
	}
	if next != state {
		s.current.Store(&next)
		s.publish(next)
	}
	return next
}

// fetch asks the source for a word in the background and reports the
// outcome as an event for generation gen.
func (s *Session) fetch(ctx context.Context, gen uint64) {
	go func() {
		var ev game.Event
		word, err := s.src.Fetch(ctx)
		if err != nil {
			ev = game.SolutionFailed{Generation: gen, Err: err}
		} else {
			ev = game.SolutionLoaded{Generation: gen, Word: word}
		}
		select {
		case s.requests <- request{events: []game.Event{ev}}:
		case <-ctx.Done():
		}
	}()
}
