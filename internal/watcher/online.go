package watcher

import (
	"sync"

	"github.com/lmehner/blockworld/internal/model"
)

// OnlineSet is an insertion-ordered set of the names currently online.
// The broker's event path adds and removes entries as players come and
// go; the world additionally merges names in when an overview fetch
// reports players the log never showed joining.
type OnlineSet struct {
	mu    sync.RWMutex
	order []model.PlayerName
	index map[model.PlayerName]struct{}
}

// NewOnlineSet creates an empty OnlineSet
func NewOnlineSet() *OnlineSet {
	return &OnlineSet{
		index: make(map[model.PlayerName]struct{}),
	}
}

// Add inserts a name, reporting whether it was newly added
func (o *OnlineSet) Add(name model.PlayerName) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.index[name]; ok {
		return false
	}
	o.index[name] = struct{}{}
	o.order = append(o.order, name)
	return true
}

// Remove deletes a name; removing an absent name is a no-op
func (o *OnlineSet) Remove(name model.PlayerName) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.index[name]; !ok {
		return
	}
	delete(o.index, name)
	for i, n := range o.order {
		if n == name {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// Contains reports whether a name is currently online
func (o *OnlineSet) Contains(name model.PlayerName) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.index[name]
	return ok
}

// Names returns a copy of the online names in insertion order
func (o *OnlineSet) Names() []model.PlayerName {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]model.PlayerName(nil), o.order...)
}

// Len returns the number of names online
func (o *OnlineSet) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.order)
}
