package world

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lmehner/blockworld/internal/model"
)

// Subscription is an opaque handle identifying one subscriber of one
// event kind. The hub needs nothing else about the subscriber.
type Subscription struct {
	kind model.EventType
	id   uuid.UUID
}

// topic is the subscriber list for one event kind
type topic[T any] struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]func(T)
}

func newTopic[T any]() *topic[T] {
	return &topic[T]{subs: make(map[uuid.UUID]func(T))}
}

func (t *topic[T]) subscribe(fn func(T)) uuid.UUID {
	id := uuid.New()
	t.mu.Lock()
	t.subs[id] = fn
	t.mu.Unlock()
	return id
}

// unsubscribe is idempotent
func (t *topic[T]) unsubscribe(id uuid.UUID) {
	t.mu.Lock()
	delete(t.subs, id)
	t.mu.Unlock()
}

func (t *topic[T]) publish(event T) {
	t.mu.RLock()
	fns := make([]func(T), 0, len(t.subs))
	for _, fn := range t.subs {
		fns = append(fns, fn)
	}
	t.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}

// Hub fans enriched events out to external subscribers, one typed
// channel per event kind.
type Hub struct {
	joins    *topic[model.JoinEvent]
	leaves   *topic[model.LeaveEvent]
	messages *topic[model.MessageEvent]
	others   *topic[model.OtherEvent]
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		joins:    newTopic[model.JoinEvent](),
		leaves:   newTopic[model.LeaveEvent](),
		messages: newTopic[model.MessageEvent](),
		others:   newTopic[model.OtherEvent](),
	}
}

// OnJoin subscribes to enriched join events
func (h *Hub) OnJoin(fn func(model.JoinEvent)) Subscription {
	return Subscription{kind: model.EventJoin, id: h.joins.subscribe(fn)}
}

// OnLeave subscribes to enriched leave events
func (h *Hub) OnLeave(fn func(model.LeaveEvent)) Subscription {
	return Subscription{kind: model.EventLeave, id: h.leaves.subscribe(fn)}
}

// OnMessage subscribes to enriched message events
func (h *Hub) OnMessage(fn func(model.MessageEvent)) Subscription {
	return Subscription{kind: model.EventMessage, id: h.messages.subscribe(fn)}
}

// OnOther subscribes to unparsable-input events
func (h *Hub) OnOther(fn func(model.OtherEvent)) Subscription {
	return Subscription{kind: model.EventOther, id: h.others.subscribe(fn)}
}

// Unsubscribe cancels a subscription; cancelling twice is a no-op
func (h *Hub) Unsubscribe(sub Subscription) {
	switch sub.kind {
	case model.EventJoin:
		h.joins.unsubscribe(sub.id)
	case model.EventLeave:
		h.leaves.unsubscribe(sub.id)
	case model.EventMessage:
		h.messages.unsubscribe(sub.id)
	case model.EventOther:
		h.others.unsubscribe(sub.id)
	}
}
