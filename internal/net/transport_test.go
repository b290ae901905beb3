package net

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"KolamBoard/internal/state"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func samplePattern(n int) state.Pattern {
	p := make(state.Pattern, n)
	for i := range p {
		p[i] = state.Path{{Row: i, Col: 0, X: 1, Y: 2}, {Row: i, Col: 1, X: 3, Y: 4}}
	}
	return p
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + HubPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubGreetsWithLatestAndBroadcasts(t *testing.T) {
	clock := state.NewClock()
	hub := NewHub(clock, quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	require.NoError(t, hub.Publish(state.DefaultGrid(), samplePattern(1)))
	require.NoError(t, hub.Publish(state.DefaultGrid(), samplePattern(2)))

	conn := dial(t, srv)
	first := readMessage(t, conn)
	assert.Equal(t, "pattern", first.Type)
	assert.Equal(t, clock.Site(), first.Site)
	assert.Equal(t, uint64(2), first.Seq)
	assert.Len(t, first.Pattern, 2)

	require.Eventually(t, func() bool { return hub.Peers() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, hub.Publish(state.DefaultGrid(), samplePattern(3)))
	next := readMessage(t, conn)
	assert.Equal(t, uint64(3), next.Seq)
	assert.Equal(t, samplePattern(3), next.Pattern)
	assert.Equal(t, state.DefaultGrid(), next.Grid)
}

func TestHubForgetsClosedFollowers(t *testing.T) {
	hub := NewHub(state.NewClock(), quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Peers() == 1 }, 2*time.Second, 10*time.Millisecond)
	conn.Close()
	require.Eventually(t, func() bool { return hub.Peers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestFollowerDropsStaleUpdates(t *testing.T) {
	var applied []uint64
	f := NewFollower(func(m Message) { applied = append(applied, m.Seq) }, quietLogger())

	assert.True(t, f.Accept(Message{Type: "pattern", Site: "a", Seq: 2}))
	assert.False(t, f.Accept(Message{Type: "pattern", Site: "a", Seq: 2}))
	assert.False(t, f.Accept(Message{Type: "pattern", Site: "a", Seq: 1}))
	assert.True(t, f.Accept(Message{Type: "pattern", Site: "b", Seq: 1}))
	assert.False(t, f.Accept(Message{Type: "chat", Site: "a", Seq: 9}))
	assert.True(t, f.Accept(Message{Type: "pattern", Site: "a", Seq: 5}))
	assert.Equal(t, []uint64{2, 1, 5}, applied)
}

func TestFollowerAdvancesClock(t *testing.T) {
	f := NewFollower(nil, quietLogger())
	f.Clock = state.NewClock()

	f.Accept(Message{Type: "pattern", Site: "a", Seq: 7})
	assert.Equal(t, uint64(7), f.Clock.Now())
	f.Accept(Message{Type: "pattern", Site: "b", Seq: 3})
	assert.Equal(t, uint64(7), f.Clock.Now())
	assert.Equal(t, uint64(8), f.Clock.Tick())
}

func TestFollowReceivesFromHub(t *testing.T) {
	hub := NewHub(state.NewClock(), quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	require.NoError(t, hub.Publish(state.DefaultGrid(), samplePattern(2)))

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan Message, 1)
	f := NewFollower(func(m Message) {
		got <- m
		cancel()
	}, quietLogger())

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + HubPath
	err := f.Follow(ctx, url)
	assert.ErrorIs(t, err, context.Canceled)

	select {
	case m := <-got:
		assert.Len(t, m.Pattern, 2)
	default:
		t.Fatal("no update applied")
	}
}

func TestShareLinks(t *testing.T) {
	link := ShareLink("192.168.1.20", 8888)
	assert.Equal(t, "kolam://192.168.1.20:8888", link)

	url, err := ParseLink(link + "/")
	require.NoError(t, err)
	assert.Equal(t, "ws://192.168.1.20:8888/ws", url)

	url, err = ParseLink("localhost:9000")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:9000/ws", url)

	for _, bad := range []string{"", "kolam://", "kolam://host", "kolam://host:0", "kolam://:80"} {
		_, err := ParseLink(bad)
		assert.ErrorIs(t, err, ErrBadLink, bad)
	}
}
