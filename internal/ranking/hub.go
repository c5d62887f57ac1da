package ranking

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	sendBuffer = 8
)

// Update is the message pushed to leaderboard watchers.
type Update struct {
	Type    string   `json:"type"`
	Records []Record `json:"records"`
}

type watcher struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans leaderboard updates out to websocket watchers.
type Hub struct {
	mu       sync.Mutex
	watchers map[*watcher]struct{}
	closed   bool
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		watchers: make(map[*watcher]struct{}),
		upgrader: websocket.Upgrader{
			// Leaderboards are public
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Watchers returns the number of connected watchers.
func (h *Hub) Watchers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers)
}

// Serve upgrades the request and streams updates until the peer goes away.
// The current leaderboard is sent first.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, initial []Record) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	wt := &watcher{conn: conn, send: make(chan []byte, sendBuffer)}
	if msg, err := encodeUpdate(initial); err == nil {
		wt.send <- msg
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}
	h.watchers[wt] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("watcher connected", "remote", r.RemoteAddr)

	go h.writeLoop(wt)
	h.readLoop(wt)
}

// Broadcast pushes a leaderboard to every watcher. Watchers that cannot keep
// up are dropped.
func (h *Hub) Broadcast(records []Record) {
	msg, err := encodeUpdate(records)
	if err != nil {
		h.logger.Error("encode leaderboard update", "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for wt := range h.watchers {
		select {
		case wt.send <- msg:
		default:
			h.dropLocked(wt)
		}
	}
}

// Close disconnects every watcher. Watchers arriving later are turned away.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for wt := range h.watchers {
		h.dropLocked(wt)
	}
}

func (h *Hub) drop(wt *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(wt)
}

func (h *Hub) dropLocked(wt *watcher) {
	if _, ok := h.watchers[wt]; !ok {
		return
	}
	delete(h.watchers, wt)
	close(wt.send)
}

// readLoop discards client messages and keeps the read deadline alive with
// pongs. It returns when the connection fails.
func (h *Hub) readLoop(wt *watcher) {
	defer func() {
		h.drop(wt)
		wt.conn.Close()
	}()

	wt.conn.SetReadLimit(1 << 10)
	_ = wt.conn.SetReadDeadline(time.Now().Add(pongWait))
	wt.conn.SetPongHandler(func(string) error {
		return wt.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := wt.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("watcher read", "err", err)
			}
			return
		}
	}
}

// writeLoop delivers queued updates and pings the peer periodically.
func (h *Hub) writeLoop(wt *watcher) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wt.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-wt.send:
			_ = wt.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = wt.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := wt.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = wt.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wt.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func encodeUpdate(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	return json.Marshal(Update{Type: "leaderboard", Records: records})
}
