package storage

import (
	"context"

	"github.com/lmehner/blockworld/internal/model"
)

// Storage defines the interface for player record persistence.
// The world hydrates the registry from it once at startup; subsequent
// saves are write-through and best-effort.
type Storage interface {
	// SavePlayer persists a single player record
	SavePlayer(ctx context.Context, record *model.PlayerRecord) error

	// GetPlayer retrieves a single player record by canonical name.
	// Returns model.ErrPlayerNotFound if absent.
	GetPlayer(ctx context.Context, name model.PlayerName) (*model.PlayerRecord, error)

	// LoadPlayers retrieves every stored player record keyed by canonical name
	LoadPlayers(ctx context.Context) (map[model.PlayerName]*model.PlayerRecord, error)

	// Close releases any underlying resources
	Close() error
}
