// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans workflow events out to every connected dashboard session, so an
// open review page sees status changes without polling.
type Hub struct {
	// clients maps a session ID to its connection. mu also serializes
	// writes to the connections themselves.
	clients map[string]*websocket.Conn
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a dashboard session to the Hub.
func (h *Hub) Register(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[sessionID] = conn
	slog.Info("dashboard session connected", "session", sessionID)
}

// Unregister removes a session from the Hub.
func (h *Hub) Unregister(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[sessionID]; ok {
		delete(h.clients, sessionID)
		slog.Info("dashboard session disconnected", "session", sessionID)
	}
}

// Event is what a dashboard receives when a record transitions.
type Event struct {
	Action      string `json:"action"`
	DocumentKey string `json:"document"`
	Status      string `json:"status"`
}

// Broadcast sends an event to every connected session. A dead connection
// is not an error for the workflow; it just gets skipped.
//
// Takes the write lock: gorilla allows at most one concurrent writer per
// connection, and two transitions landing at once would otherwise write
// the same conn in parallel.
func (h *Hub) Broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to encode dashboard event", "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sessionID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			slog.Warn("dashboard push failed", "session", sessionID, "err", err)
		}
	}
}
