package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-web/internal/game"
	"github.com/robalobadob/wordle/apps/go-web/internal/store"
	"github.com/robalobadob/wordle/apps/go-web/internal/view"
	"github.com/robalobadob/wordle/apps/go-web/internal/words"
)

func newTestServer(t *testing.T, list []string) (*httptest.Server, store.Store) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	st := store.NewMemoryStore()
	srv := New(ctx, st, Options{
		Source:       words.NewListSource(list),
		Words:        list,
		ClientOrigin: "http://localhost:5173",
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		cancel()
		ts.Close()
	})
	return ts, st
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t, []string{"crane"})

	res, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "application/json")
	body, _ := io.ReadAll(res.Body)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestWordListEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, []string{"crane", "mango"})

	res, err := http.Get(ts.URL + words.Path)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "http://localhost:5173", res.Header.Get("Access-Control-Allow-Origin"))

	var list []string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&list))
	assert.Equal(t, []string{"crane", "mango"}, list)
}

func TestWordListFeedsHTTPSource(t *testing.T) {
	ts, _ := newTestServer(t, []string{"crane"})

	w, err := words.NewHTTPSource(ts.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "crane", w)
}

func TestIndexAndAssets(t *testing.T) {
	ts, _ := newTestServer(t, []string{"crane"})

	for _, path := range []string{"/", "/assets/app.js", "/assets/app.css"} {
		t.Run(path, func(t *testing.T) {
			res, err := http.Get(ts.URL + path)
			require.NoError(t, err)
			defer res.Body.Close()
			assert.Equal(t, http.StatusOK, res.StatusCode)
		})
	}
}

func TestNotFound(t *testing.T) {
	ts, _ := newTestServer(t, []string{"crane"})

	res, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

// readUntil reads views until cond holds.
func readUntil(t *testing.T, conn *websocket.Conn, cond func(view.View) bool) view.View {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var v view.View
		require.NoError(t, conn.ReadJSON(&v))
		if cond(v) {
			return v
		}
	}
}

func sendKeys(t *testing.T, conn *websocket.Conn, keys ...string) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, conn.WriteJSON(clientMessage{Type: "key", Key: k}))
	}
}

func TestWebsocketPlaysRound(t *testing.T) {
	ts, st := newTestServer(t, []string{"crane"})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	defer conn.Close()

	readUntil(t, conn, func(v view.View) bool { return v.Status == game.StatusInProgress })

	list, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	sendKeys(t, conn, "A", "d", "i", "e", "u", "Shift", "Enter")
	v := readUntil(t, conn, func(v view.View) bool { return v.Rows[0][4].Letter == "u" && v.Rows[0][4].State != view.TileFilled })
	assert.Equal(t, view.TilePresent, v.Rows[0][0].State)
	assert.Equal(t, view.TileAbsent, v.Rows[0][1].State)
	assert.Nil(t, v.Modal)

	sendKeys(t, conn, "c", "r", "a", "n", "e", "Enter")
	v = readUntil(t, conn, func(v view.View) bool { return v.Status == game.StatusWon })
	require.NotNil(t, v.Modal)
	assert.True(t, v.Modal.Won)

	sendKeys(t, conn, "Reset")
	v = readUntil(t, conn, func(v view.View) bool { return v.Status == game.StatusInProgress })
	assert.Equal(t, view.TileEmpty, v.Rows[0][0].State)
}

func TestWebsocketUnregistersOnClose(t *testing.T) {
	ts, st := newTestServer(t, []string{"crane"})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	readUntil(t, conn, func(v view.View) bool { return v.Status == game.StatusInProgress })
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		list, _ := st.List(context.Background())
		return len(list) == 0
	}, 3*time.Second, 10*time.Millisecond)
}

func TestWebsocketRejectsForeignOrigin(t *testing.T) {
	ts, _ := newTestServer(t, []string{"crane"})

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, res, err := websocket.DefaultDialer.Dial(wsURL(ts), header)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestDebugSession(t *testing.T) {
	ts, st := newTestServer(t, []string{"crane"})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	defer conn.Close()

	readUntil(t, conn, func(v view.View) bool { return v.Status == game.StatusInProgress })
	sendKeys(t, conn, "c", "r", "a", "t", "e", "Enter")
	readUntil(t, conn, func(v view.View) bool { return v.Rows[0][4].State == view.TileCorrect })

	list, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	res, err := http.Get(ts.URL + "/debug/sessions/" + list[0].ID)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "solution")

	var got struct {
		ID      string                          `json:"id"`
		Status  string                          `json:"status"`
		Guesses int                             `json:"guesses"`
		Board   [game.Rows][game.Cols]view.Tile `json:"board"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, list[0].ID, got.ID)
	assert.Equal(t, string(game.StatusInProgress), got.Status)
	assert.Equal(t, 1, got.Guesses)
	assert.Equal(t, "t", got.Board[0][3].Letter)
	assert.Equal(t, view.TileAbsent, got.Board[0][3].State)
}

func TestDebugSessionUnknown(t *testing.T) {
	ts, _ := newTestServer(t, []string{"crane"})

	res, err := http.Get(ts.URL + "/debug/sessions/nope")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	body, _ := io.ReadAll(res.Body)
	assert.JSONEq(t, `{"error":"not_found"}`, string(body))
}
