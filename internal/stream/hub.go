// Package stream publishes submissions to live subscribers.
//
// Hub is a notify.Sink. Subscribers get buffered channels; publishing never
// blocks, so a slow subscriber misses updates instead of stalling delivery.
// The last few submissions are kept for replay to new subscribers.
package stream

import (
	"context"
	"sync"

	"github.com/robalobadob/wordle/apps/go-play/internal/notify"
)

const (
	subscriberBuffer = 32
	defaultReplay    = 20
)

// Hub fans submissions out to subscribers. One lock guards both the replay
// buffer and the subscriber set, so a subscriber sees each submission either
// in its replay or live, never both.
type Hub struct {
	mu          sync.RWMutex
	recent      []notify.Submission
	limit       int
	subscribers map[chan notify.Submission]struct{}
}

// NewHub keeps up to replay recent submissions; replay <= 0 uses the default.
func NewHub(replay int) *Hub {
	if replay <= 0 {
		replay = defaultReplay
	}
	return &Hub{
		limit:       replay,
		subscribers: make(map[chan notify.Submission]struct{}),
	}
}

// Deliver implements notify.Sink.
func (h *Hub) Deliver(_ context.Context, s notify.Submission) error {
	h.Publish(s)
	return nil
}

// Publish records s and sends it to every subscriber with room for it.
func (h *Hub) Publish(s notify.Submission) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = append(h.recent, s)
	if len(h.recent) > h.limit {
		h.recent = append([]notify.Submission(nil), h.recent[len(h.recent)-h.limit:]...)
	}
	for ch := range h.subscribers {
		select {
		case ch <- s:
		default:
		}
	}
}

// Recent returns the replay buffer, oldest first.
func (h *Hub) Recent() []notify.Submission {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]notify.Submission(nil), h.recent...)
}

// Subscribe registers a new subscriber. Callers must Unsubscribe.
func (h *Hub) Subscribe() <-chan notify.Submission {
	ch, _ := h.SubscribeWithReplay()
	return ch
}

// SubscribeWithReplay registers a subscriber and returns the replay buffer as
// of that moment. Everything published afterwards arrives on the channel.
func (h *Hub) SubscribeWithReplay() (<-chan notify.Submission, []notify.Submission) {
	ch := make(chan notify.Submission, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[ch] = struct{}{}
	return ch, append([]notify.Submission(nil), h.recent...)
}

// Unsubscribe removes and closes ch. Unknown channels are ignored.
func (h *Hub) Unsubscribe(ch <-chan notify.Submission) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		if sub == ch {
			delete(h.subscribers, sub)
			close(sub)
			return
		}
	}
}

// Subscribers reports how many subscribers are attached.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
