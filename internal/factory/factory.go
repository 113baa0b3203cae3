// Package factory wires the application components together.
package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/lmehner/blockworld/internal/config"
	"github.com/lmehner/blockworld/internal/dependencies/clock"
	"github.com/lmehner/blockworld/internal/remote"
	"github.com/lmehner/blockworld/internal/storage"
	"github.com/lmehner/blockworld/internal/storage/memory"
	redisstorage "github.com/lmehner/blockworld/internal/storage/redis"
	"github.com/lmehner/blockworld/internal/watcher"
	"github.com/lmehner/blockworld/internal/world"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage
	Clock   clock.Clock
	Broker  *watcher.Broker
	Console remote.Console
	World   *world.World
}

// Options configures the factory beyond the environment config
type Options struct {
	// Console overrides the remote control API implementation. When
	// nil, an in-process loopback console is wired, which is what
	// development and tests want; production callers inject the real
	// transport here.
	Console remote.Console

	// Logger is the application logger; nil means discard
	Logger *slog.Logger
}

// New creates an application with all dependencies wired
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	switch cfg.StorageType {
	case StorageTypeMemory, "":
		store = memory.New()
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisStore, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	broker := watcher.NewBroker(logger)

	console := opts.Console
	if console == nil {
		console = remote.NewLoopback(cfg.ServerName, cfg.OwnerName, broker, clk)
	}

	w, err := world.New(ctx, world.Config{
		Console:       console,
		Source:        broker,
		Storage:       store,
		Logger:        logger,
		CommandPrefix: cfg.CommandPrefix,
	})
	if err != nil {
		broker.Close()
		_ = store.Close()
		return nil, err
	}

	return &App{
		Storage: store,
		Clock:   clk,
		Broker:  broker,
		Console: console,
		World:   w,
	}, nil
}

// Close releases the application's resources
func (a *App) Close() error {
	a.Broker.Close()
	return a.Storage.Close()
}
