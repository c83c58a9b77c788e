// Package server fans evaluated signals out to WebSocket clients. It is
// the live serving boundary: UI and bot consumers subscribe here, the
// engine itself stays unaware of any client.
package server

import (
	"log"
	"strconv"
	"sync"
	"time"

	"signal-systemv1/internal/model"
)

// Hub manages WebSocket clients and broadcasts signal envelopes to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	latest  map[string][]byte // symbol → last envelope, replayed to joiners
	seq     int64
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		latest:  make(map[string][]byte),
	}
}

// Broadcast sends the signal for a symbol to every connected client.
// The envelope JSON is hand-built once per broadcast:
// {"symbol":...,"signal":...,"ts":...,"seq":N}. Slow clients are skipped
// rather than blocked on.
func (h *Hub) Broadcast(symbol string, sig *model.Signal) {
	data := sig.JSON()
	now := time.Now().UTC()

	h.mu.Lock()
	h.seq++
	seq := h.seq

	buf := make([]byte, 0, len(symbol)+len(data)+96)
	buf = append(buf, `{"symbol":"`...)
	buf = append(buf, symbol...)
	buf = append(buf, `","signal":`...)
	buf = append(buf, data...)
	buf = append(buf, `,"ts":"`...)
	buf = now.AppendFormat(buf, time.RFC3339Nano)
	buf = append(buf, `","seq":`...)
	buf = strconv.AppendInt(buf, seq, 10)
	buf = append(buf, '}')

	h.latest[symbol] = buf
	h.mu.Unlock()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- buf:
		default:
			// client queue full, drop this envelope for it
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)

	// Replay the latest envelope per symbol so a joiner has current state.
	for _, envelope := range h.latest {
		select {
		case c.send <- envelope:
		default:
		}
	}
	h.mu.Unlock()

	log.Printf("[server] ws client connected (%d total)", n)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	log.Printf("[server] ws client disconnected (%d total)", n)
}
