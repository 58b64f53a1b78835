package sse

import (
	"sync"
)

// Event is one message on a session's stream.
type Event struct {
	SessionID string
	Event     string
	Data      interface{}
}

const bufferSize = 16

// Hub routes events to the streams subscribed under a session ID.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe opens a stream for sessionID. The returned cancel func is safe to call after Drop.
func (h *Hub) Subscribe(sessionID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if h.topics[sessionID] == nil {
		h.topics[sessionID] = make(map[chan Event]struct{})
	}
	h.topics[sessionID][ch] = struct{}{}

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.remove(sessionID, ch)
	}
	return ch, cancel
}

// remove closes ch if it is still registered. Callers hold mu.
func (h *Hub) remove(sessionID string, ch chan Event) {
	subs, ok := h.topics[sessionID]
	if !ok {
		return
	}
	if _, ok := subs[ch]; !ok {
		return
	}
	delete(subs, ch)
	close(ch)
	if len(subs) == 0 {
		delete(h.topics, sessionID)
	}
}

// Publish delivers event to every stream of sessionID. Full streams miss the event.
func (h *Hub) Publish(sessionID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.SessionID = sessionID
	for ch := range h.topics[sessionID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Drop closes every stream of sessionID.
func (h *Hub) Drop(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.topics[sessionID] {
		h.remove(sessionID, ch)
	}
}

func (h *Hub) SubscriberCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[sessionID])
}

func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.topics {
		total += len(subs)
	}
	return total
}

// Close ends every open stream.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sessionID, subs := range h.topics {
		for ch := range subs {
			h.remove(sessionID, ch)
		}
	}
}
