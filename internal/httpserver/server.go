// apps/go-web/internal/httpserver/server.go
//
// HTTP server wiring for the Wordle web client.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, access log).
//   - Public endpoints: "/", "/assets/*", "/health".
//   - Word list endpoint: GET /api/api/fe/wordle-words (CORS for CLIENT_ORIGIN).
//   - Game endpoint: GET /ws, one game session per websocket connection.
//   - Debug endpoints: "/debug/words", "/debug/sessions", "/debug/sessions/{id}".
//
// Notes:
//   - Sessions live as long as their connection and are registered in the
//     store while attached.
//   - Sessions are children of the context passed to New; cancelling it
//     ends every game and closes its connection.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-web/assets"
	"github.com/robalobadob/wordle/apps/go-web/internal/game"
	"github.com/robalobadob/wordle/apps/go-web/internal/store"
	"github.com/robalobadob/wordle/apps/go-web/internal/view"
	"github.com/robalobadob/wordle/apps/go-web/internal/words"
)

// Options configures a Server.
type Options struct {
	Source       words.Source // where sessions get their solutions
	Words        []string     // list published at words.Path
	ClientOrigin string       // extra origin allowed for CORS and websockets
}

// Server bundles router, session registry and word configuration.
type Server struct {
	r     *chi.Mux
	ctx   context.Context
	store store.Store
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(ctx context.Context, st store.Store, opts Options) *Server {
	s := &Server{r: chi.NewRouter(), ctx: ctx, store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)

	// --- page ---
	s.r.Get("/", s.handleIndex)
	s.r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assets.Web()))))

	// --- game ---
	s.r.Get("/ws", s.handleWS)

	// --- JSON API ---
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		r.With(s.cors).Get(words.Path, s.handleWords)
		r.With(s.cors).Options(words.Path, func(w http.ResponseWriter, r *http.Request) {})

		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]int{"answers": len(s.opts.Words)})
		})
		r.Get("/debug/sessions", s.handleSessions)
		r.Get("/debug/sessions/{id}", s.handleSession)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until the server's context is cancelled, then
// shuts down gracefully.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       10 * time.Minute,
	}

	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()

	select {
	case err := <-errs:
		return err
	case <-s.ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors lets the configured client origin read the word list.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.opts.ClientOrigin; origin != "" {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

// ------------------------------ handlers -----------------------------------

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFileFS(w, r, assets.Web(), "index.html")
}

// handleWords publishes the answer list as a JSON array of strings.
func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	list := s.opts.Words
	if list == nil {
		list = []string{}
	}
	if err := json.NewEncoder(w).Encode(list); err != nil {
		log.Error().Err(err).Msg("encode word list")
	}
}

// sessionRow is one entry of /debug/sessions.
type sessionRow struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Guesses int    `json:"guesses"`
}

// sessionDetail is the body of /debug/sessions/{id}. The board shows letters
// and verdicts only; the solution is never included.
type sessionDetail struct {
	sessionRow
	Generation uint64                          `json:"generation"`
	Board      [game.Rows][game.Cols]view.Tile `json:"board"`
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, `{"error":"store"}`, http.StatusInternalServerError)
		return
	}
	out := make([]sessionRow, 0, len(list))
	for _, sess := range list {
		st := sess.Current()
		out = append(out, sessionRow{ID: sess.ID, Status: string(st.Status()), Guesses: st.Committed()})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleSession reports one attached session, including its current board.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
		return
	}
	if err != nil {
		http.Error(w, `{"error":"store"}`, http.StatusInternalServerError)
		return
	}
	st := sess.Current()
	_ = json.NewEncoder(w).Encode(sessionDetail{
		sessionRow: sessionRow{ID: sess.ID, Status: string(st.Status()), Guesses: st.Committed()},
		Generation: st.Generation,
		Board:      view.Build(st).Rows,
	})
}
