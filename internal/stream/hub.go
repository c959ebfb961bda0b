// Package stream broadcasts frame snapshots to websocket spectators.
package stream

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"yaraycaster/internal/frame"
	"yaraycaster/internal/threading/core"
)

const (
	writeWait  = 2 * time.Second
	sendBuffer = 16
)

// Hub tracks spectator connections. Publish never blocks the frame loop: a
// client whose buffer is full is dropped.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}

	ticks *core.SafeCounter
}

type client struct {
	ws   *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
		ticks:   core.NewSafeCounter(),
	}
}

// ServeHTTP upgrades a spectator connection
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("stream: upgrade failed: %v", err)
		return
	}
	c := &client{ws: ws, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

// readPump only watches for the close; spectators send nothing.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("stream: read error: %v", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.ws.Close()
	for message := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
			h.remove(c)
			return
		}
	}
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	c.ws.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Publish sends res, tagged with the session that produced it, to every
// spectator and returns the tick it was sent as. Ticks count across sessions.
func (h *Hub) Publish(session string, res frame.Result) (uint64, error) {
	tick := uint64(h.ticks.Increment())
	data, err := json.Marshal(res.Snapshot(session, tick))
	if err != nil {
		return tick, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
	return tick, nil
}

// Count returns the number of connected spectators
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every spectator
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
