package services

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// ============================================================
// SSE hub for display boards and staff dashboards
// ============================================================

// Event names pushed over the live stream.
const (
	EventTokenCreated = "tokenCreated"
	EventTokenCalled  = "tokenCalled"
	EventTokenUpdated = "tokenUpdated"
	EventTokenDeleted = "tokenDeleted"
)

// LiveEvent represents a server-sent event
type LiveEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// LiveClient represents a connected SSE client
type LiveClient struct {
	ID      string
	Channel chan LiveEvent
}

// LiveHub manages all SSE connections
type LiveHub struct {
	mu      sync.RWMutex
	clients map[string]*LiveClient
}

// NewLiveHub creates a new live hub
func NewLiveHub() *LiveHub {
	return &LiveHub{
		clients: make(map[string]*LiveClient),
	}
}

// Register adds a new SSE client and returns it
func (h *LiveHub) Register() *LiveClient {
	client := &LiveClient{
		ID:      uuid.NewString(),
		Channel: make(chan LiveEvent, 16),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	log.Printf("📡 SSE client registered: %s | total=%d", client.ID, len(h.clients))
	return client
}

// Unregister removes an SSE client and closes its channel
func (h *LiveHub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Channel)
		delete(h.clients, clientID)
		log.Printf("📡 SSE client unregistered: %s | total=%d", clientID, len(h.clients))
	}
}

// Broadcast sends an event to every connected client.
// A client whose buffer is full misses the event rather than blocking the queue.
func (h *LiveHub) Broadcast(event LiveEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, client := range h.clients {
		select {
		case client.Channel <- event:
			sent++
		default:
			log.Printf("⚠️ SSE channel full for client %s, skipping", client.ID)
		}
	}
	if sent > 0 {
		log.Printf("📡 SSE broadcast [%s] → %d clients", event.Event, sent)
	}
}

// ClientCount returns the number of connected clients
func (h *LiveHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
