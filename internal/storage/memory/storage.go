package memory

import (
	"context"
	"sync"

	"github.com/lmehner/blockworld/internal/model"
	"github.com/lmehner/blockworld/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu      sync.RWMutex
	players map[model.PlayerName]*model.PlayerRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerName]*model.PlayerRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SavePlayer(ctx context.Context, record *model.PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[record.Name] = record.Clone()
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, name model.PlayerName) (*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.players[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return record.Clone(), nil
}

func (s *Storage) LoadPlayers(ctx context.Context) (map[model.PlayerName]*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make(map[model.PlayerName]*model.PlayerRecord, len(s.players))
	for name, record := range s.players {
		players[name] = record.Clone()
	}
	return players, nil
}

func (s *Storage) Close() error {
	return nil
}
