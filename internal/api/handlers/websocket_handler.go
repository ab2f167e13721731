package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"five-whys-api-server/internal/socket"
)

const (
	// Maximum silence before a dashboard connection is considered gone.
	defaultPongWait = 30 * time.Second
	// Deadline on outgoing control frames.
	writeWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub *socket.Hub

	// PongWait bounds the silence tolerated before a session is dropped;
	// zero means the default.
	PongWait time.Duration
	// PingInterval is how often the server pings a session; zero derives
	// it from PongWait. Browsers cannot initiate pings themselves, so
	// keepalive has to come from this side.
	PingInterval time.Duration
}

func (h *WebSocketHandler) intervals() (pongWait, pingInterval time.Duration) {
	pongWait = h.PongWait
	if pongWait <= 0 {
		pongWait = defaultPongWait
	}
	pingInterval = h.PingInterval
	if pingInterval <= 0 {
		pingInterval = (pongWait * 9) / 10
	}
	return pongWait, pingInterval
}

// ServeWs upgrades a dashboard connection and keeps it registered in the
// hub until it drops. Sessions are anonymous; each gets a generated ID.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "err", err)
		return
	}

	sessionID := uuid.NewString()
	h.Hub.Register(sessionID, conn)

	defer func() {
		h.Hub.Unregister(sessionID)
		conn.Close()
	}()

	pongWait, pingInterval := h.intervals()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	// Pongs answering our pings extend the deadline; this is the only
	// keepalive a browser client can provide.
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	// Non-browser clients may ping on their own; answer and extend.
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(writeWait))
	})

	// WriteControl is safe alongside the hub's broadcast writes.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-stop:
				return
			}
		}
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("unexpected close error", "session", sessionID, "err", err)
			}
			break
		}
	}
}
