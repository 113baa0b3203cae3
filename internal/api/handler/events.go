package handler

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lmehner/blockworld/internal/model"
	"github.com/lmehner/blockworld/internal/world"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsHandler streams the world's enriched events over a websocket
type EventsHandler struct {
	world  *world.World
	logger *slog.Logger
}

// NewEventsHandler creates an EventsHandler
func NewEventsHandler(w *world.World, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		world:  w,
		logger: logger.With(slog.String("component", "events")),
	}
}

// eventFrame is one websocket message
type eventFrame struct {
	Type    model.EventType `json:"type"`
	Payload any             `json:"payload"`
}

// Handle upgrades the connection and forwards events until the client
// disconnects
func (h *EventsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	// Buffered so a slow client stalls delivery to itself, not the
	// world's event path
	frames := make(chan eventFrame, 64)
	drop := func(frame eventFrame) {
		select {
		case frames <- frame:
		default:
			h.logger.Warn("event dropped - client buffer full")
		}
	}

	subs := []world.Subscription{
		h.world.OnJoinEvent(func(e model.JoinEvent) { drop(eventFrame{model.EventJoin, e}) }),
		h.world.OnLeaveEvent(func(e model.LeaveEvent) { drop(eventFrame{model.EventLeave, e}) }),
		h.world.OnMessageEvent(func(e model.MessageEvent) { drop(eventFrame{model.EventMessage, e}) }),
		h.world.OnOtherEvent(func(e model.OtherEvent) { drop(eventFrame{model.EventOther, e}) }),
	}
	defer func() {
		for _, sub := range subs {
			h.world.Unsubscribe(sub)
		}
	}()

	// Read pump: we never expect client messages, but reading is how
	// we learn the peer went away
	done := make(chan struct{})
	var once sync.Once
	go func() {
		defer once.Do(func() { close(done) })
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case frame := <-frames:
			if err := conn.WriteJSON(frame); err != nil {
				h.logger.Debug("websocket write failed", slog.String("error", err.Error()))
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
