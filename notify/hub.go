// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/namepair/models"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub pushes events to participants connected over websocket. A
// participant may hold several connections; each gets every event.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan models.Event
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]struct{})}
}

// Notify queues the event for every connection of the participant.
// Clients whose buffer is full are dropped.
func (h *Hub) Notify(ctx context.Context, p models.Participant, ev models.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients[p.ID] {
		select {
		case c.send <- ev:
		default:
			slog.Warn("dropping slow websocket client", "participant_id", p.ID)
			h.removeLocked(p.ID, c)
		}
	}
	return nil
}

// Connected returns how many live connections a participant has
func (h *Hub) Connected(participantID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[participantID])
}

// Serve upgrades the request and streams events until the client goes away
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, participantID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "participant_id", participantID, "error", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan models.Event, sendBuffer),
	}

	h.mu.Lock()
	if h.clients[participantID] == nil {
		h.clients[participantID] = make(map[*client]struct{})
	}
	h.clients[participantID][c] = struct{}{}
	h.mu.Unlock()

	slog.Info("websocket connected", "participant_id", participantID)

	go c.writePump()
	c.readPump()

	h.mu.Lock()
	h.removeLocked(participantID, c)
	h.mu.Unlock()

	slog.Info("websocket disconnected", "participant_id", participantID)
}

func (h *Hub) removeLocked(participantID string, c *client) {
	set, ok := h.clients[participantID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, participantID)
	}
}

// readPump discards inbound frames; it only exists to notice the close
func (c *client) readPump() {
	defer c.conn.Close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for ev := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(ev); err != nil {
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}
