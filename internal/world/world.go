// Package world is the integration point: it consumes raw events from
// the log watcher, keeps the player registry and cached server views
// consistent, republishes enriched events to subscribers, and runs
// chat-triggered commands.
package world

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lmehner/blockworld/internal/cache"
	"github.com/lmehner/blockworld/internal/command"
	"github.com/lmehner/blockworld/internal/model"
	"github.com/lmehner/blockworld/internal/registry"
	"github.com/lmehner/blockworld/internal/remote"
	"github.com/lmehner/blockworld/internal/storage"
	"github.com/lmehner/blockworld/internal/watcher"
)

// Config holds the collaborators a World is built from
type Config struct {
	Console       remote.Console
	Source        watcher.Source
	Storage       storage.Storage
	Logger        *slog.Logger
	CommandPrefix string
}

// World coordinates the live server state. Raw events arrive on the
// watcher's serialized path; reads may run concurrently against the
// per-resource cache slots.
type World struct {
	logger     *slog.Logger
	console    remote.Console
	source     watcher.Source
	registry   *registry.Registry
	dispatcher *command.Dispatcher
	hub        *Hub

	overview *cache.Resource[*model.Overview]
	lists    *cache.Resource[*model.ListSet]
	logs     *cache.Resource[[]model.LogEntry]

	// Snapshot of the most recently fetched lists, used for list
	// membership projection without touching the cache
	listsMu      sync.RWMutex
	currentLists *model.ListSet
}

var _ watcher.Events = (*World)(nil)

// New creates a World, hydrates the registry from storage, subscribes
// to the event source, and kicks off a background load of overview and
// lists so the owner identity and online set are seeded without
// blocking construction on network I/O.
func New(ctx context.Context, cfg Config) (*World, error) {
	logger := cfg.Logger.With(slog.String("component", "world"))

	reg, err := registry.New(ctx, cfg.Storage, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("hydrating player registry: %w", err)
	}

	w := &World{
		logger:     logger,
		console:    cfg.Console,
		source:     cfg.Source,
		registry:   reg,
		dispatcher: command.New(cfg.CommandPrefix, cfg.Logger),
		hub:        NewHub(),
	}

	w.overview = cache.NewResource(
		cfg.Console.FetchOverview,
		func(o *model.Overview) *model.Overview { return o.Clone() },
		cache.WithOnSuccess[*model.Overview](w.absorbOverview),
	)
	w.lists = cache.NewResource(
		cfg.Console.FetchLists,
		func(l *model.ListSet) *model.ListSet { return l.Clone() },
		cache.WithOnSuccess[*model.ListSet](w.absorbLists),
	)
	w.logs = cache.NewResource(
		cfg.Console.FetchLogs,
		model.CloneLog,
	)

	cfg.Source.Subscribe(w)

	go w.seed()

	return w, nil
}

// seed warms the overview and lists slots so owner and online state
// are known early. Failures are logged; the next read retries nothing
// by itself, but callers can refresh.
func (w *World) seed() {
	ctx := context.Background()
	if _, err := w.overview.Get(ctx, false); err != nil {
		w.logger.Warn("initial overview load failed", slog.String("error", err.Error()))
	}
	if _, err := w.lists.Get(ctx, false); err != nil {
		w.logger.Warn("initial lists load failed", slog.String("error", err.Error()))
	}
}

// absorbOverview runs once per successful overview fetch, before the
// result reaches any caller: online names are merged into the shared
// online set and the reported owner is durably marked.
func (w *World) absorbOverview(o *model.Overview) {
	online := w.source.Online()
	for _, name := range o.Online {
		online.Add(model.Canonical(name))
	}
	if o.Owner != "" {
		w.registry.MarkOwner(o.Owner)
	}
}

// absorbLists replaces the projection snapshot after a successful
// lists fetch
func (w *World) absorbLists(l *model.ListSet) {
	w.listsMu.Lock()
	w.currentLists = l
	w.listsMu.Unlock()
}

func (w *World) listsSnapshot() *model.ListSet {
	w.listsMu.RLock()
	defer w.listsMu.RUnlock()
	return w.currentLists
}

// Event handling, invoked on the watcher's serialized delivery path

// OnJoin records the join and publishes an enriched join event
func (w *World) OnJoin(name, address string) {
	record := w.registry.RecordJoin(name, address)
	view := model.NewPlayerView(record, w.listsSnapshot())
	w.hub.joins.publish(model.JoinEvent{Player: view, Address: address})
}

// OnLeave publishes an enriched leave event. Leaving does not change
// historical stats, so the registry is untouched.
func (w *World) OnLeave(name string) {
	w.hub.leaves.publish(model.LeaveEvent{Player: w.Player(name)})
}

// OnMessage publishes an enriched message event unconditionally, then
// runs command dispatch if the text has command shape
func (w *World) OnMessage(name, text string) {
	view := w.Player(name)
	w.hub.messages.publish(model.MessageEvent{Player: view, Text: text})
	w.dispatcher.Dispatch(context.Background(), view, text)
}

// OnOther republishes input the watcher could not parse
func (w *World) OnOther(raw string) {
	w.hub.others.publish(model.OtherEvent{Raw: raw})
}

// Read operations

// Overview returns the cached server overview, fetching on first use
// or when refresh is set
func (w *World) Overview(ctx context.Context, refresh bool) (*model.Overview, error) {
	return w.overview.Get(ctx, refresh)
}

// Lists returns the cached access lists
func (w *World) Lists(ctx context.Context, refresh bool) (*model.ListSet, error) {
	return w.lists.Get(ctx, refresh)
}

// Logs returns the cached log tail
func (w *World) Logs(ctx context.Context, refresh bool) ([]model.LogEntry, error) {
	return w.logs.Get(ctx, refresh)
}

// Player builds a view of any name, whether or not it has ever joined.
// It is never an error to ask about an unknown player.
func (w *World) Player(name string) model.PlayerView {
	return model.NewPlayerView(w.registry.Get(name), w.listsSnapshot())
}

// Online returns the names currently online, in join order
func (w *World) Online() []model.PlayerName {
	return w.source.Online().Names()
}

// KnownPlayers returns a view of every player the registry has seen
func (w *World) KnownPlayers() []model.PlayerView {
	lists := w.listsSnapshot()
	records := w.registry.All()
	views := make([]model.PlayerView, len(records))
	for i, record := range records {
		views[i] = model.NewPlayerView(record, lists)
	}
	return views
}

// Write operations

// SetLists merges a partial update over the current lists, submits the
// merged set to the server, then reloads the lists cache. On submit
// failure the cache is left untouched and the failure propagates.
func (w *World) SetLists(ctx context.Context, update model.ListUpdate) error {
	current, err := w.lists.Get(ctx, false)
	if err != nil {
		return fmt.Errorf("loading current lists: %w", err)
	}

	merged := current.Merge(update)
	if err := w.console.SubmitLists(ctx, merged); err != nil {
		return fmt.Errorf("submitting lists: %w", err)
	}

	if _, err := w.lists.Get(ctx, true); err != nil {
		return fmt.Errorf("reloading lists: %w", err)
	}
	return nil
}

// Send sends a chat message to the server; failures propagate to the
// caller and are not retried here
func (w *World) Send(ctx context.Context, message string) error {
	if err := w.console.SendMessage(ctx, message); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

// Lifecycle signals are best-effort and never surface failures:
// operator-triggered start/stop/restart must not crash the coordinator
// over a flaky control API.

// Start asks the remote server to start
func (w *World) Start(ctx context.Context) {
	if err := w.console.Start(ctx); err != nil {
		w.logger.Warn("start signal failed", slog.String("error", err.Error()))
	}
}

// Stop asks the remote server to stop
func (w *World) Stop(ctx context.Context) {
	if err := w.console.Stop(ctx); err != nil {
		w.logger.Warn("stop signal failed", slog.String("error", err.Error()))
	}
}

// Restart asks the remote server to restart
func (w *World) Restart(ctx context.Context) {
	if err := w.console.Restart(ctx); err != nil {
		w.logger.Warn("restart signal failed", slog.String("error", err.Error()))
	}
}

// Subscriptions and commands

// OnJoinEvent subscribes to enriched join events
func (w *World) OnJoinEvent(fn func(model.JoinEvent)) Subscription { return w.hub.OnJoin(fn) }

// OnLeaveEvent subscribes to enriched leave events
func (w *World) OnLeaveEvent(fn func(model.LeaveEvent)) Subscription { return w.hub.OnLeave(fn) }

// OnMessageEvent subscribes to enriched message events
func (w *World) OnMessageEvent(fn func(model.MessageEvent)) Subscription { return w.hub.OnMessage(fn) }

// OnOtherEvent subscribes to unparsable-input events
func (w *World) OnOtherEvent(fn func(model.OtherEvent)) Subscription { return w.hub.OnOther(fn) }

// Unsubscribe cancels any subscription
func (w *World) Unsubscribe(sub Subscription) { w.hub.Unsubscribe(sub) }

// RegisterCommand binds a chat command handler; a duplicate token
// fails with model.ErrDuplicateCommand
func (w *World) RegisterCommand(token string, handler command.Handler) error {
	return w.dispatcher.Register(token, handler)
}

// UnregisterCommand removes a chat command handler
func (w *World) UnregisterCommand(token string) {
	w.dispatcher.Unregister(token)
}
