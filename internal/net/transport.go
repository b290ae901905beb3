package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"KolamBoard/internal/state"
)

// HubPath is where the hub accepts followers.
const HubPath = "/ws"

const writeWait = 5 * time.Second

// Message is one pattern update sent to followers.
type Message struct {
	Type    string           `json:"type"`
	Site    string           `json:"site"`
	Seq     uint64           `json:"seq"`
	Grid    state.GridConfig `json:"grid"`
	Pattern state.Pattern    `json:"pattern"`
}

// peer is a connected follower. send holds at most the newest update.
type peer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub is run by a sharing host. It pushes every published pattern to all
// followers and greets new followers with the latest one.
type Hub struct {
	clock    *state.Clock
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu    sync.Mutex
	peers map[*peer]struct{}
	last  []byte
}

func NewHub(clock *state.Clock, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clock: clock,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:   logger.With("component", "hub"),
		peers: make(map[*peer]struct{}),
	}
}

func (h *Hub) Peers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

// Publish stamps the pattern with the next clock value and hands it to every
// follower. A follower that has not consumed the previous update only gets
// the new one.
func (h *Hub) Publish(grid state.GridConfig, p state.Pattern) error {
	data, err := json.Marshal(Message{
		Type:    "pattern",
		Site:    h.clock.Site(),
		Seq:     h.clock.Tick(),
		Grid:    grid,
		Pattern: p,
	})
	if err != nil {
		return fmt.Errorf("encode pattern: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = data
	for pr := range h.peers {
		offer(pr.send, data)
	}
	h.log.Debug("pattern published", "paths", len(p), "peers", len(h.peers))
	return nil
}

func offer(ch chan []byte, data []byte) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- data:
	default:
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	p := &peer{conn: conn, send: make(chan []byte, 1)}

	h.mu.Lock()
	h.peers[p] = struct{}{}
	if h.last != nil {
		offer(p.send, h.last)
	}
	h.mu.Unlock()
	h.log.Info("follower connected", "remote", conn.RemoteAddr().String())

	done := make(chan struct{})
	go h.writeLoop(p, done)

	// Followers never send anything; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	close(done)
	h.remove(p)
}

func (h *Hub) writeLoop(p *peer, done <-chan struct{}) {
	for {
		select {
		case data := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.log.Warn("send failed", "remote", p.conn.RemoteAddr().String(), "error", err)
				p.conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	delete(h.peers, p)
	h.mu.Unlock()
	p.conn.Close()
	h.log.Info("follower disconnected", "remote", p.conn.RemoteAddr().String())
}

// Serve listens on port until ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle(HubPath, h)
	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	h.log.Info("share hub listening", "port", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("share hub: %w", err)
	}
	return nil
}

// Follower applies updates from a hub, dropping any that are not newer than
// the last one applied from the same site.
type Follower struct {
	OnMessage func(Message)
	// Clock, when set, is moved forward to every accepted sequence number.
	Clock *state.Clock

	log  *slog.Logger
	seen map[string]uint64
}

func NewFollower(onMessage func(Message), logger *slog.Logger) *Follower {
	if logger == nil {
		logger = slog.Default()
	}
	return &Follower{
		OnMessage: onMessage,
		log:       logger.With("component", "follower"),
		seen:      make(map[string]uint64),
	}
}

// Accept reports whether msg is newer than what was applied and applies it.
func (f *Follower) Accept(msg Message) bool {
	if msg.Type != "pattern" || msg.Seq <= f.seen[msg.Site] {
		return false
	}
	f.seen[msg.Site] = msg.Seq
	if f.Clock != nil {
		f.Clock.Observe(msg.Seq)
	}
	if f.OnMessage != nil {
		f.OnMessage(msg)
	}
	return true
}

// Follow connects to url and applies updates until ctx ends or the hub goes away.
func (f *Follower) Follow(ctx context.Context, url string) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	defer conn.Close()
	f.log.Info("following host", "url", url)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("disconnected from host: %w", err)
		}
		if !f.Accept(msg) {
			f.log.Debug("stale update dropped", "site", msg.Site, "seq", msg.Seq)
		}
	}
}
