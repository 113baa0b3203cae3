// Package command maps chat-triggered command tokens to handlers.
package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/lmehner/blockworld/internal/model"
)

// DefaultPrefix is the character that marks a chat message as a command
const DefaultPrefix = "/"

// Handler is invoked when a registered command is dispatched. args is
// the remainder of the message after the token, without leading space.
type Handler func(ctx context.Context, player model.PlayerView, args string)

// Dispatcher routes chat messages of command shape to handlers by
// case-insensitive token.
type Dispatcher struct {
	prefix string
	logger *slog.Logger

	mu       sync.RWMutex
	handlers map[string]Handler
}

// New creates a dispatcher with the given prefix. An empty prefix
// falls back to DefaultPrefix.
func New(prefix string, logger *slog.Logger) *Dispatcher {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Dispatcher{
		prefix:   prefix,
		logger:   logger.With(slog.String("component", "command")),
		handlers: make(map[string]Handler),
	}
}

// Register binds a handler to a token. Registering a token that is
// already bound fails with model.ErrDuplicateCommand and leaves the
// existing handler in place.
func (d *Dispatcher) Register(token string, handler Handler) error {
	canonical := canonicalToken(token)
	if canonical == "" {
		return fmt.Errorf("empty command token")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.handlers[canonical]; exists {
		return fmt.Errorf("%q: %w", canonical, model.ErrDuplicateCommand)
	}
	d.handlers[canonical] = handler
	return nil
}

// Unregister removes a token's handler; removing an absent token is a
// no-op.
func (d *Dispatcher) Unregister(token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.handlers, canonicalToken(token))
}

// Dispatch runs the handler for a message of command shape. It reports
// whether a handler was invoked. Messages that don't look like a
// command, and command tokens nobody registered, are silently ignored;
// a chat line may legitimately start with the prefix character.
func (d *Dispatcher) Dispatch(ctx context.Context, player model.PlayerView, message string) bool {
	token, args, ok := d.parse(message)
	if !ok {
		return false
	}

	d.mu.RLock()
	handler, exists := d.handlers[token]
	d.mu.RUnlock()
	if !exists {
		return false
	}

	d.logger.Debug("dispatching command",
		slog.String("command", token),
		slog.String("player", string(player.Name)))
	handler(ctx, player, args)
	return true
}

// parse extracts the canonical token and argument remainder from a
// message of the shape "<prefix><token>[ <args>]"
func (d *Dispatcher) parse(message string) (token, args string, ok bool) {
	rest, found := strings.CutPrefix(message, d.prefix)
	if !found || rest == "" {
		return "", "", false
	}

	token, args, _ = strings.Cut(rest, " ")
	if token == "" {
		// Prefix followed directly by a space is plain chat
		return "", "", false
	}
	return canonicalToken(token), args, true
}

func canonicalToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}
