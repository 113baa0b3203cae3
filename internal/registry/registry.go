// Package registry holds the durable per-player history: addresses
// seen, join counts, and the owner flag.
package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lmehner/blockworld/internal/model"
	"github.com/lmehner/blockworld/internal/storage"
)

// Registry maps canonical player names to their accumulated records.
// The world's event path is the only writer; readers may project
// records concurrently. Mutation replaces records whole, so a snapshot
// handed to a reader is never torn.
//
// Records are never evicted. Server populations are small enough that
// unbounded growth over a process lifetime is acceptable.
type Registry struct {
	mu      sync.RWMutex
	players map[model.PlayerName]*model.PlayerRecord
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a registry hydrated from storage
func New(ctx context.Context, store storage.Storage, logger *slog.Logger) (*Registry, error) {
	players, err := store.LoadPlayers(ctx)
	if err != nil {
		return nil, err
	}
	if players == nil {
		players = make(map[model.PlayerName]*model.PlayerRecord)
	}

	return &Registry{
		players: players,
		storage: store,
		logger:  logger.With(slog.String("component", "registry")),
	}, nil
}

// Get returns a snapshot of the record for a name, or a zero-valued
// record if the name has never been seen. It never inserts.
func (r *Registry) Get(name string) *model.PlayerRecord {
	canonical := model.Canonical(name)

	r.mu.RLock()
	record, ok := r.players[canonical]
	r.mu.RUnlock()

	if !ok {
		return model.NewPlayerRecord(canonical)
	}
	return record.Clone()
}

// RecordJoin updates a player's record for a join event: the join count
// is incremented, the last address replaced, and the address added to
// the history if new. Called only from the serialized event path.
func (r *Registry) RecordJoin(name, address string) *model.PlayerRecord {
	canonical := model.Canonical(name)

	r.mu.Lock()
	record, ok := r.players[canonical]
	if !ok {
		record = model.NewPlayerRecord(canonical)
	}

	updated := record.Clone()
	updated.JoinCount++
	updated.LastAddress = address
	if address != "" && !updated.HasAddress(address) {
		updated.AddressHistory = append(updated.AddressHistory, address)
	}
	r.players[canonical] = updated
	r.mu.Unlock()

	r.persist(updated)
	return updated.Clone()
}

// MarkOwner sets the owner flag for a name, creating the record if it
// has never joined. The flag is sticky; marking twice is a no-op.
func (r *Registry) MarkOwner(name string) {
	canonical := model.Canonical(name)
	if canonical == "" {
		return
	}

	r.mu.Lock()
	record, ok := r.players[canonical]
	if ok && record.IsOwner {
		r.mu.Unlock()
		return
	}
	if !ok {
		record = model.NewPlayerRecord(canonical)
	}

	updated := record.Clone()
	updated.IsOwner = true
	r.players[canonical] = updated
	r.mu.Unlock()

	r.persist(updated)
}

// Names returns the canonical names of every known player
func (r *Registry) Names() []model.PlayerName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]model.PlayerName, 0, len(r.players))
	for name := range r.players {
		names = append(names, name)
	}
	return names
}

// All returns snapshots of every known player record
func (r *Registry) All() []*model.PlayerRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]*model.PlayerRecord, 0, len(r.players))
	for _, record := range r.players {
		records = append(records, record.Clone())
	}
	return records
}

// persist writes a record through to storage. Durability is the storage
// collaborator's concern; a failed save is logged, never surfaced.
func (r *Registry) persist(record *model.PlayerRecord) {
	if err := r.storage.SavePlayer(context.Background(), record.Clone()); err != nil {
		r.logger.Warn("failed to persist player record",
			slog.String("player", string(record.Name)),
			slog.String("error", err.Error()))
	}
}
