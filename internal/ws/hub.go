// Package ws pushes slot state changes to connected operator consoles.
package ws

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"parkdesk/internal/models"
)

// SlotEvent is the message broadcast to consoles when a slot changes.
type SlotEvent struct {
	Type string      `json:"type"`
	Slot models.Slot `json:"slot"`
	At   time.Time   `json:"at"`
}

const sendBuffer = 16

// Hub tracks console connections and fans out slot updates. Each console
// gets a buffered event channel drained by a single writer goroutine, so
// the underlying websocket never sees two concurrent writers.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]chan SlotEvent
	nextID  int64
	logger  *zap.Logger
}

// NewHub builds an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[int64]chan SlotEvent),
		logger:  logger,
	}
}

// Add registers a console connection and returns its id together with the
// event channel its writer must drain. Remove closes the channel.
func (h *Hub) Add() (int64, <-chan SlotEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	events := make(chan SlotEvent, sendBuffer)
	h.clients[h.nextID] = events
	return h.nextID, events
}

// Remove drops a console and closes its event channel. Safe to call more
// than once for the same id.
func (h *Hub) Remove(id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if events, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(events)
	}
}

// ClientCount returns the number of connected consoles.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NotifySlotChanged enqueues a slot update for every console. A console
// whose buffer is full misses the event rather than blocking the caller.
func (h *Hub) NotifySlotChanged(slot models.Slot) {
	event := SlotEvent{Type: "slot_update", Slot: slot, At: time.Now().UTC()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, events := range h.clients {
		select {
		case events <- event:
		default:
			h.logger.Warn("dropping slot update, console buffer full", zap.Int64("client_id", id))
		}
	}
}
