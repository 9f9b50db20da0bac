// apps/go-web/internal/httpserver/ws.go
//
// Websocket endpoint for browser play.
//
// Client → server: {"type":"key","key":"<KeyboardEvent.key>"}
// Server → client: view.View ({"type":"view", ...}) after every state change.
//
// One connection owns one session. The read loop routes keys into the
// session; the write loop sends the latest view. When either side fails the
// session is stopped and removed from the store.

package httpserver

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-web/internal/game"
	"github.com/robalobadob/wordle/apps/go-web/internal/input"
	"github.com/robalobadob/wordle/apps/go-web/internal/session"
	"github.com/robalobadob/wordle/apps/go-web/internal/view"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxMessage = 512
)

// clientMessage is what the browser sends.
type clientMessage struct {
	Type string `json:"type"` // "key"
	Key  string `json:"key"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
}

// checkOrigin accepts same-host pages, the configured client origin, and
// non-browser clients that send no Origin header.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if s.opts.ClientOrigin != "" && origin == s.opts.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	// Holds at most the newest view; publish replaces an unsent one.
	views := make(chan view.View, 1)
	publish := func(st game.State) {
		v := view.Build(st)
		select {
		case views <- v:
		default:
			select {
			case <-views:
			default:
			}
			views <- v
		}
	}

	sess := session.New(uuid.NewString(), s.opts.Source, publish)
	logger := log.With().Str("session", sess.ID).Logger()

	if err := s.store.Save(ctx, sess); err != nil {
		logger.Error().Err(err).Msg("register session")
		_ = conn.Close()
		return
	}
	defer func() {
		if err := s.store.Delete(context.Background(), sess.ID); err != nil {
			logger.Warn().Err(err).Msg("unregister session")
		}
	}()

	logger.Info().Str("remote", r.RemoteAddr).Msg("session attached")
	defer logger.Info().Msg("session detached")

	go func() { _ = sess.Run(ctx) }()
	go writePump(ctx, cancel, conn, views)

	readPump(ctx, conn, sess)
	cancel()
	<-sess.Done()
}

// readPump routes incoming keys until the connection fails or ctx ends.
func readPump(ctx context.Context, conn *websocket.Conn, sess *session.Session) {
	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Unblock ReadJSON when the session is cancelled from elsewhere.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("session", sess.ID).Msg("websocket read")
			}
			return
		}
		if msg.Type != "key" {
			continue
		}
		ev, ok := input.Route(msg.Key)
		if !ok {
			continue
		}
		if err := sess.Dispatch(ctx, ev); err != nil {
			return
		}
	}
}

// writePump sends views and keepalive pings; it closes the connection on exit.
func writePump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, views <-chan view.View) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		_ = conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case v := <-views:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(v); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
