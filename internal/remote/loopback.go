package remote

import (
	"context"
	"sync"

	"github.com/lmehner/blockworld/internal/dependencies/clock"
	"github.com/lmehner/blockworld/internal/model"
	"github.com/lmehner/blockworld/internal/watcher"
)

// Loopback is an in-process Console backed by the broker it is given.
// It stands in for the real control API in development and in tests:
// lists live in memory, the overview reflects the broker's online set,
// and sent messages loop straight back through the broker as server
// chat.
type Loopback struct {
	serverName string
	owner      string
	broker     *watcher.Broker
	clock      clock.Clock

	mu    sync.Mutex
	lists *model.ListSet
	logs  []model.LogEntry
}

var _ Console = (*Loopback)(nil)

// NewLoopback creates a loopback console for the given broker
func NewLoopback(serverName, owner string, broker *watcher.Broker, clk clock.Clock) *Loopback {
	return &Loopback{
		serverName: serverName,
		owner:      owner,
		broker:     broker,
		clock:      clk,
		lists:      &model.ListSet{},
	}
}

func (l *Loopback) FetchOverview(ctx context.Context) (*model.Overview, error) {
	online := l.broker.Online().Names()
	names := make([]string, len(online))
	for i, n := range online {
		names[i] = string(n)
	}
	return &model.Overview{
		Name:       l.serverName,
		Owner:      l.owner,
		Online:     names,
		MaxPlayers: 16,
	}, nil
}

func (l *Loopback) FetchLists(ctx context.Context) (*model.ListSet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lists.Clone(), nil
}

func (l *Loopback) FetchLogs(ctx context.Context) ([]model.LogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return model.CloneLog(l.logs), nil
}

func (l *Loopback) SubmitLists(ctx context.Context, lists *model.ListSet) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lists = lists.Clone()
	return nil
}

func (l *Loopback) SendMessage(ctx context.Context, message string) error {
	l.mu.Lock()
	l.logs = append(l.logs, model.LogEntry{Timestamp: l.clock.Now(), Text: "SERVER: " + message})
	l.mu.Unlock()

	l.broker.Message("SERVER", message)
	return nil
}

func (l *Loopback) Start(ctx context.Context) error   { return nil }
func (l *Loopback) Stop(ctx context.Context) error    { return nil }
func (l *Loopback) Restart(ctx context.Context) error { return nil }
