// Package watcher is the seam between the raw log tailer and the rest
// of the system. The tailer (which owns the log grammar and is not part
// of this repository) feeds parsed events into a Broker; the Broker
// serializes delivery and maintains the set of online players.
package watcher

import (
	"log/slog"
	"sync"

	"github.com/lmehner/blockworld/internal/model"
)

// Events receives the raw event kinds the log tailer produces.
// Callbacks are invoked strictly in arrival order, one at a time.
type Events interface {
	OnJoin(name, address string)
	OnLeave(name string)
	OnMessage(name, text string)
	OnOther(raw string)
}

// Source is what event consumers see of the broker
type Source interface {
	Subscribe(Events)
	Online() *OnlineSet
}

// Broker fans parsed log events out to subscribers through a single
// delivery goroutine. A join followed by a message for the same player
// is always delivered in that order, with no overlapping callbacks.
type Broker struct {
	mu     sync.RWMutex
	subs   []Events
	online *OnlineSet
	logger *slog.Logger

	queue     chan func()
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

var _ Source = (*Broker)(nil)

// NewBroker creates a broker and starts its delivery loop
func NewBroker(logger *slog.Logger) *Broker {
	b := &Broker{
		online: NewOnlineSet(),
		logger: logger.With(slog.String("component", "watcher")),
		queue:  make(chan func(), 256),
		done:   make(chan struct{}),
	}
	b.wg.Add(1)
	go b.run()
	return b
}

func (b *Broker) run() {
	defer b.wg.Done()
	for {
		select {
		case fn := <-b.queue:
			fn()
		case <-b.done:
			// Drain anything enqueued before Close
			for {
				select {
				case fn := <-b.queue:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Subscribe registers an event consumer. Subscribers registered after
// events were enqueued only see events delivered from then on.
func (b *Broker) Subscribe(events Events) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, events)
}

// Online returns the live set of online players
func (b *Broker) Online() *OnlineSet {
	return b.online
}

// Close stops the delivery loop after draining queued events.
// Safe to call more than once.
func (b *Broker) Close() {
	b.closeOnce.Do(func() { close(b.done) })
	b.wg.Wait()
}

// Join records a player connecting. Called by the log tailer.
func (b *Broker) Join(name, address string) {
	b.enqueue(func() {
		b.online.Add(model.Canonical(name))
		for _, sub := range b.subscribers() {
			sub.OnJoin(name, address)
		}
	})
}

// Leave records a player disconnecting. Called by the log tailer.
func (b *Broker) Leave(name string) {
	b.enqueue(func() {
		b.online.Remove(model.Canonical(name))
		for _, sub := range b.subscribers() {
			sub.OnLeave(name)
		}
	})
}

// Message records a chat message. Called by the log tailer.
func (b *Broker) Message(name, text string) {
	b.enqueue(func() {
		for _, sub := range b.subscribers() {
			sub.OnMessage(name, text)
		}
	})
}

// Other records a log line the tailer could not parse
func (b *Broker) Other(raw string) {
	b.enqueue(func() {
		for _, sub := range b.subscribers() {
			sub.OnOther(raw)
		}
	})
}

func (b *Broker) enqueue(fn func()) {
	select {
	case b.queue <- fn:
	case <-b.done:
		b.logger.Warn("event dropped after broker close")
	}
}

func (b *Broker) subscribers() []Events {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Events(nil), b.subs...)
}
