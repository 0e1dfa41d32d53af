// Package notify implements the in-process mutation broadcast: a multicast
// hub delivering catalog change events to every live subscriber.
package notify

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/madirex/funko-server/internal/core/domain"
	"github.com/madirex/funko-server/internal/metrics"
)

const defaultBuffer = 64

// Hub fans each published notification out to all current subscribers.
// Publish never blocks: each subscriber owns a bounded buffer and loses the
// notification when that buffer is full, so one slow observer cannot stall
// publishers or its peers.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan domain.Notification
	nextID int
	buffer int
	log    zerolog.Logger
}

// NewHub builds a hub whose subscribers buffer up to buffer notifications.
// A non-positive buffer falls back to the default.
func NewHub(buffer int, log zerolog.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[int]chan domain.Notification),
		buffer: buffer,
		log:    log,
	}
}

// Publish delivers n to every subscriber registered at the time of the call.
func (h *Hub) Publish(n domain.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subs {
		select {
		case ch <- n:
		default:
			metrics.NotificationsDroppedTotal.Inc()
			h.log.Warn().
				Int("subscriber", id).
				Str("kind", string(n.Kind)).
				Msg("subscriber buffer full, notification dropped")
		}
	}
}

// Subscribe registers a new observer. The returned channel carries only
// notifications published after this call. The cancel function is idempotent
// and closes the channel.
func (h *Hub) Subscribe() (<-chan domain.Notification, func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan domain.Notification, h.buffer)
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
