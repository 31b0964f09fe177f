package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
)

const writeWait = 10 * time.Second

// Hub fans game events out to connected spectators. It implements
// game.Observer.
type Hub struct {
	mu sync.RWMutex // protects the maps and latest
	// conn.WriteMessage is not safe for concurrent use, so each socket
	// gets its own write lock.
	writeMu map[*websocket.Conn]*sync.Mutex
	latest  []byte // last event carrying a board, replayed to late joiners
}

func NewHub() *Hub {
	return &Hub{writeMu: make(map[*websocket.Conn]*sync.Mutex)}
}

// Add registers a spectator and sends it the current board, if any.
func (h *Hub) Add(conn *websocket.Conn) {
	mu := &sync.Mutex{}

	h.mu.Lock()
	h.writeMu[conn] = mu
	snapshot := h.latest
	h.mu.Unlock()

	if snapshot != nil {
		if err := h.write(conn, mu, snapshot); err != nil {
			h.Remove(conn)
		}
	}
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.writeMu[conn]; exists {
		conn.Close()
		delete(h.writeMu, conn)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.writeMu)
}

func (h *Hub) write(conn *websocket.Conn, mu *sync.Mutex, data []byte) error {
	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// Notify sends ev to every spectator. Spectators that fail to receive it
// are dropped.
func (h *Hub) Notify(ctx context.Context, ev game.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[WATCH] Failed to encode %s event: %v", ev.Type, err)
		return
	}

	h.mu.Lock()
	if ev.Board != nil {
		h.latest = data
	}
	targets := make(map[*websocket.Conn]*sync.Mutex, len(h.writeMu))
	for conn, mu := range h.writeMu {
		targets[conn] = mu
	}
	h.mu.Unlock()

	for conn, mu := range targets {
		if err := h.write(conn, mu, data); err != nil {
			log.Printf("[WATCH] Dropping spectator %s: %v", conn.RemoteAddr(), err)
			h.Remove(conn)
		}
	}
}

// Ping keeps spectators' connections alive.
func (h *Hub) Ping() {
	h.mu.RLock()
	targets := make(map[*websocket.Conn]*sync.Mutex, len(h.writeMu))
	for conn, mu := range h.writeMu {
		targets[conn] = mu
	}
	h.mu.RUnlock()

	for conn, mu := range targets {
		mu.Lock()
		err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		mu.Unlock()
		if err != nil {
			h.Remove(conn)
		}
	}
}

// CloseAll disconnects every spectator.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, mu := range h.writeMu {
		mu.Lock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		mu.Unlock()
		conn.Close()
		delete(h.writeMu, conn)
	}
}

// KeepAlive pings spectators until stop is closed.
func (h *Hub) KeepAlive(stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			h.Ping()
		case <-stop:
			return
		}
	}
}
