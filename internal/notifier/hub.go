package notifier

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/foodbridge/dashboard/internal/models"
)

const writeWait = 10 * time.Second

// Message tells browsers which collections changed since the last push.
type Message struct {
	Type        string              `json:"type"`
	Collections []models.Collection `json:"collections"`
	Timestamp   int64               `json:"timestamp"`
}

// Hub fans change notifications out to connected browsers. Bursts of
// snapshots are coalesced and pushed at most once per rate interval.
type Hub struct {
	mu      sync.Mutex
	conns   map[*websocket.Conn]struct{}
	pending map[models.Collection]struct{}

	wake        chan struct{}
	rateLimiter *rate.Limiter
	upgrader    websocket.Upgrader
}

func New(interval time.Duration) *Hub {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Hub{
		conns:       make(map[*websocket.Conn]struct{}),
		pending:     make(map[models.Collection]struct{}),
		wake:        make(chan struct{}, 1),
		rateLimiter: rate.NewLimiter(limit, 1),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Notify records that c changed. It never blocks.
func (h *Hub) Notify(c models.Collection) {
	h.mu.Lock()
	h.pending[c] = struct{}{}
	h.mu.Unlock()

	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// Run pushes pending notifications until ctx is done, then closes every
// connection.
func (h *Hub) Run(ctx context.Context) error {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.wake:
		}
		if err := h.rateLimiter.Wait(ctx); err != nil {
			return nil
		}
		h.flush()
	}
}

func (h *Hub) flush() {
	h.mu.Lock()
	if len(h.pending) == 0 {
		h.mu.Unlock()
		return
	}
	msg := Message{Type: "snapshot", Timestamp: time.Now().Unix()}
	for c := range h.pending {
		msg.Collections = append(msg.Collections, c)
	}
	clear(h.pending)
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	slices.Sort(msg.Collections)
	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			slog.Warn("Dropping websocket client", "remote", conn.RemoteAddr().String(), "error", err)
			h.unregister(conn)
		}
	}
}

// ServeWS upgrades the request and keeps the connection registered until the
// browser goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	slog.Info("Websocket client connected", "remote", conn.RemoteAddr().String())

	// Reads only detect the close; clients do not send anything.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(conn)
}

// Clients returns the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.conns[conn]
	delete(h.conns, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
		slog.Info("Websocket client disconnected", "remote", conn.RemoteAddr().String())
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()
	for conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
	}
}
