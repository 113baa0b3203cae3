// Package remote defines the contract with the server control API.
// The actual network transport lives outside this repository; callers
// inject an implementation of Console at construction.
package remote

import (
	"context"

	"github.com/lmehner/blockworld/internal/model"
)

// Console is the remote control API for the managed game server.
// All operations may block on network I/O and may fail.
type Console interface {
	// FetchOverview retrieves the server's status, including the owner
	// name and the names currently online
	FetchOverview(ctx context.Context) (*model.Overview, error)

	// FetchLists retrieves the current access lists
	FetchLists(ctx context.Context) (*model.ListSet, error)

	// FetchLogs retrieves the ordered tail of the server log
	FetchLogs(ctx context.Context) ([]model.LogEntry, error)

	// SubmitLists replaces the server's access lists wholesale
	SubmitLists(ctx context.Context, lists *model.ListSet) error

	// SendMessage sends a chat message to the server
	SendMessage(ctx context.Context, message string) error

	// Lifecycle signals
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
}
