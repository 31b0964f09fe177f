package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/4-in-a-row/engine/pkg/auth"
	"github.com/iamasit07/4-in-a-row/engine/pkg/httputil"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler upgrades spectator connections and hands them to the Hub.
type Handler struct {
	Hub      *Hub
	Secret   string // when set, a valid watch token is required
	Upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, secret string) *Handler {
	return &Handler{
		Hub:    hub,
		Secret: secret,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Secret != "" {
		token, err := httputil.GetTokenFromRequest(r)
		if err == nil {
			_, err = auth.ValidateWatchToken(h.Secret, token)
		}
		if err != nil {
			log.Printf("[WATCH] Rejected spectator %s: %v", r.RemoteAddr, err)
			http.Error(w, "invalid or missing watch token", http.StatusUnauthorized)
			return
		}
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WATCH] Upgrade error: %v", err)
		return
	}
	h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	h.Hub.Add(conn)
	log.Printf("[WATCH] Spectator connected: %s (%d watching)", conn.RemoteAddr(), h.Hub.Count())
	defer func() {
		h.Hub.Remove(conn)
		log.Printf("[WATCH] Spectator left: %s", conn.RemoteAddr())
	}()

	// spectators only listen; reading drives pongs and close frames
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WATCH] Spectator disconnected unexpectedly: %v", err)
			}
			return
		}
	}
}
