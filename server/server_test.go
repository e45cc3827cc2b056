package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ghostbfs/gridgraph"
	"github.com/katalvlaran/ghostbfs/server"
	"github.com/katalvlaran/ghostbfs/session"
)

// newServer serves
//
//	. . .
//	. # .
//
// with the agent on 0 and a manual scheduler.
func newServer(t *testing.T, opts ...server.Option) (*httptest.Server, *server.Server, *session.Session) {
	t.Helper()
	g, err := gridgraph.FromMask([][]bool{
		{true, true, true},
		{true, false, true},
	})
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	sess, err := session.New(g, 0,
		session.WithScheduler(session.NewManualScheduler()),
		session.WithLogger(logger),
	)
	require.NoError(t, err)

	srv, err := server.New(sess, append([]server.Option{server.WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return ts, srv, sess
}

func decodeSnapshot(t *testing.T, resp *http.Response) session.Snapshot {
	t.Helper()
	defer resp.Body.Close()
	var snap session.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	return snap
}

func TestNew_Errors(t *testing.T) {
	_, err := server.New(nil)
	assert.ErrorIs(t, err, server.ErrSessionNil)

	g, err := gridgraph.Open(1, 1)
	require.NoError(t, err)
	sess, err := session.New(g, 0, session.WithScheduler(session.NewManualScheduler()))
	require.NoError(t, err)
	_, err = server.New(sess, server.WithSendBuffer(0))
	assert.ErrorIs(t, err, server.ErrOptionViolation)
	assert.Contains(t, err.Error(), "send buffer must be positive")
}

func TestBoard(t *testing.T) {
	ts, _, _ := newServer(t)

	resp, err := http.Get(ts.URL + "/board")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	snap := decodeSnapshot(t, resp)
	assert.Equal(t, 2, snap.Rows)
	assert.Equal(t, 3, snap.Cols)
	assert.Equal(t, []bool{true, true, true, true, false, true}, snap.Enabled)
	assert.Nil(t, snap.Destination)
	assert.False(t, snap.Distances.Get(0).IsSet())
}

func TestSelect(t *testing.T) {
	ts, _, sess := newServer(t)

	resp, err := http.Post(ts.URL+"/select/5", "", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decodeSnapshot(t, resp)
	require.NotNil(t, snap.Destination)
	assert.Equal(t, 5, *snap.Destination)
	assert.True(t, snap.Animating)
	assert.Equal(t, gridgraph.At(3), snap.Distances.Get(0))
	assert.Equal(t, gridgraph.Unset(), snap.Distances.Get(4))

	dest, ok := sess.Destination()
	assert.True(t, ok)
	assert.Equal(t, 5, dest)
}

func TestSelect_Rejects(t *testing.T) {
	ts, _, sess := newServer(t)

	cases := []struct {
		path   string
		status int
	}{
		{"/select/abc", http.StatusBadRequest},
		{"/select/4", http.StatusUnprocessableEntity},
		{"/select/99", http.StatusUnprocessableEntity},
		{"/select/-1", http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Post(ts.URL+tc.path, "", nil)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}

	_, ok := sess.Destination()
	assert.False(t, ok, "rejected selections leave state alone")
}

func TestSelect_WrongMethod(t *testing.T) {
	ts, _, _ := newServer(t)
	resp, err := http.Get(ts.URL + "/select/5")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReset(t *testing.T) {
	ts, _, sess := newServer(t)
	require.NoError(t, sess.Select(5))
	sess.Step()

	resp, err := http.Post(ts.URL+"/reset", "", nil)
	require.NoError(t, err)
	snap := decodeSnapshot(t, resp)
	assert.Nil(t, snap.Destination)
	assert.Equal(t, 0, snap.Agent)
	assert.Equal(t, 0, snap.Steps)
	assert.False(t, snap.Animating)
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) server.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev server.Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestWebsocket_Stream(t *testing.T) {
	ts, srv, sess := newServer(t)
	conn := dial(t, ts)

	ev := readEvent(t, conn)
	require.Equal(t, server.EventSnapshot, ev.Type)
	require.NotNil(t, ev.Snapshot)
	assert.Nil(t, ev.Snapshot.Destination)
	assert.Eventually(t, func() bool { return srv.Clients() == 1 }, time.Second, 10*time.Millisecond)

	five := 5
	require.NoError(t, conn.WriteJSON(server.Command{Select: &five}))
	ev = readEvent(t, conn)
	require.Equal(t, server.EventSnapshot, ev.Type)
	require.NotNil(t, ev.Snapshot.Destination)
	assert.Equal(t, 5, *ev.Snapshot.Destination)

	res := sess.Step()
	ev = readEvent(t, conn)
	assert.Equal(t, res.To, ev.Snapshot.Agent, "ticks are streamed")

	require.NoError(t, conn.WriteJSON(server.Command{Reset: true}))
	ev = readEvent(t, conn)
	assert.Nil(t, ev.Snapshot.Destination)
	assert.Equal(t, 0, ev.Snapshot.Agent)
}

func TestWebsocket_CommandError(t *testing.T) {
	ts, _, _ := newServer(t)
	conn := dial(t, ts)
	readEvent(t, conn)

	wall := 4
	require.NoError(t, conn.WriteJSON(server.Command{Select: &wall}))
	ev := readEvent(t, conn)
	assert.Equal(t, server.EventError, ev.Type)
	assert.Contains(t, ev.Error, "disabled")
	assert.Nil(t, ev.Snapshot)
}

func TestWebsocket_BroadcastFromHTTP(t *testing.T) {
	ts, srv, _ := newServer(t)
	a, b := dial(t, ts), dial(t, ts)
	readEvent(t, a)
	readEvent(t, b)
	require.Eventually(t, func() bool { return srv.Clients() == 2 }, time.Second, 10*time.Millisecond)

	resp, err := http.Post(ts.URL+"/select/2", "", nil)
	require.NoError(t, err)
	resp.Body.Close()

	for _, conn := range []*websocket.Conn{a, b} {
		ev := readEvent(t, conn)
		require.NotNil(t, ev.Snapshot.Destination)
		assert.Equal(t, 2, *ev.Snapshot.Destination)
	}
}

func TestWebsocket_Disconnect(t *testing.T) {
	ts, srv, _ := newServer(t)
	conn := dial(t, ts)
	readEvent(t, conn)
	require.Eventually(t, func() bool { return srv.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()
	assert.Eventually(t, func() bool { return srv.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestBroadcast_DropsWhenFull(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	ts, srv, sess := newServer(t, server.WithLogger(logger), server.WithSendBuffer(1))
	_ = dial(t, ts)
	require.Eventually(t, func() bool { return srv.Clients() == 1 }, time.Second, 10*time.Millisecond)

	// Unread events pile up once the socket buffers fill; the session must
	// not block on the slow client.
	done := make(chan struct{})
	go func() {
		defer close(done)
		snap := sess.Snapshot()
		for i := 0; i < 2000; i++ {
			snap.Seq++
			srv.Broadcast(snap)
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Broadcast blocked on a slow client")
	}

	dropped := false
	for _, e := range hook.AllEntries() {
		if e.Message == "client queue full, event dropped" {
			dropped = true
			break
		}
	}
	assert.True(t, dropped)
}

// TestBroadcast_SkipsOlderSnapshots keeps a client from stepping back to a
// state older than the one it was sent on connect.
func TestBroadcast_SkipsOlderSnapshots(t *testing.T) {
	ts, srv, sess := newServer(t)
	require.NoError(t, sess.Select(5))
	stale := sess.Snapshot()
	require.NoError(t, sess.Select(2))

	conn := dial(t, ts)
	ev := readEvent(t, conn)
	require.NotNil(t, ev.Snapshot.Destination)
	assert.Equal(t, 2, *ev.Snapshot.Destination)
	require.Eventually(t, func() bool { return srv.Clients() == 1 }, time.Second, 10*time.Millisecond)

	srv.Broadcast(stale)
	sess.Reset()

	ev = readEvent(t, conn)
	assert.Nil(t, ev.Snapshot.Destination, "the stale snapshot was dropped")
	assert.Equal(t, sess.Snapshot().Seq, ev.Snapshot.Seq)
}
