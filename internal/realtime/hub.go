// Package realtime implements topic-based fan-out for chat and
// notification events. Delivery is fire-and-forget: publishers never
// block and never learn whether anyone was listening.
package realtime

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Topic names.
func ChatTopic(postID uuid.UUID) string     { return "chat:" + postID.String() }
func UserTopic(userID uuid.UUID) string     { return "user:" + userID.String() + ":notifications" }

// Event is a broadcast payload on a topic.
type Event struct {
	Topic   string      `json:"topic"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Subscription receives events for one or more topics until cancelled.
type Subscription struct {
	topics []string
	ch     chan Event
}

// C returns the event channel. It is closed on Unsubscribe or hub shutdown.
func (s *Subscription) C() <-chan Event { return s.ch }

const subscriberBuffer = 16

type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

func (h *Hub) Subscribe(topics ...string) *Subscription {
	sub := &Subscription{
		topics: topics,
		ch:     make(chan Event, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub
	}
	for _, topic := range topics {
		if h.subs[topic] == nil {
			h.subs[topic] = make(map[*Subscription]struct{})
		}
		h.subs[topic][sub] = struct{}{}
	}
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	removed := false
	for _, topic := range sub.topics {
		if set, ok := h.subs[topic]; ok {
			if _, ok := set[sub]; ok {
				delete(set, sub)
				removed = true
			}
			if len(set) == 0 {
				delete(h.subs, topic)
			}
		}
	}
	if removed {
		close(sub.ch)
	}
}

// Publish delivers the event to every current subscriber of the topic.
// Slow subscribers with a full buffer are skipped; the drop is logged
// and never propagated to the publisher.
func (h *Hub) Publish(topic, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for sub := range h.subs[topic] {
		select {
		case sub.ch <- Event{Topic: topic, Event: event, Payload: payload}:
		default:
			slog.Warn("realtime event dropped", "topic", topic, "event", event)
		}
	}
}

// Close shuts down the hub and all subscriber channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	seen := make(map[*Subscription]struct{})
	for _, set := range h.subs {
		for sub := range set {
			if _, ok := seen[sub]; !ok {
				seen[sub] = struct{}{}
				close(sub.ch)
			}
		}
	}
	h.subs = nil
}
