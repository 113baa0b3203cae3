package model

import "strings"

// PlayerName is a player's canonicalized name, the primary key for all
// player state
type PlayerName string

// Canonical case-folds a raw name into the form used as a map key.
// It is idempotent: Canonical(string(Canonical(x))) == Canonical(x).
func Canonical(name string) PlayerName {
	return PlayerName(strings.ToLower(strings.TrimSpace(name)))
}

// PlayerRecord is the accumulated history for one player identity.
// Records are replaced whole on mutation; readers always work on clones.
type PlayerRecord struct {
	Name           PlayerName `json:"name"`
	LastAddress    string     `json:"last_address"`
	AddressHistory []string   `json:"address_history"`
	JoinCount      int        `json:"join_count"`
	IsOwner        bool       `json:"is_owner"`
}

// NewPlayerRecord creates a zero-valued record for a name
func NewPlayerRecord(name PlayerName) *PlayerRecord {
	return &PlayerRecord{Name: name}
}

// Clone returns a deep copy of the record
func (r *PlayerRecord) Clone() *PlayerRecord {
	c := *r
	c.AddressHistory = append([]string(nil), r.AddressHistory...)
	return &c
}

// HasAddress reports whether the record has already seen the given address
func (r *PlayerRecord) HasAddress(address string) bool {
	for _, a := range r.AddressHistory {
		if a == address {
			return true
		}
	}
	return false
}

// PlayerView is a read-only projection of a PlayerRecord combined with
// current list membership. It is built per read and never cached, so it
// always reflects the most recently loaded lists.
type PlayerView struct {
	Name           PlayerName `json:"name"`
	LastAddress    string     `json:"last_address"`
	AddressHistory []string   `json:"address_history"`
	JoinCount      int        `json:"join_count"`
	IsOwner        bool       `json:"is_owner"`
	IsAdmin        bool       `json:"is_admin"`
	IsMod          bool       `json:"is_mod"`
	IsWhitelisted  bool       `json:"is_whitelisted"`
	IsBlacklisted  bool       `json:"is_blacklisted"`
}

// NewPlayerView projects a record against a list snapshot. The owner is
// always an admin regardless of list contents.
func NewPlayerView(record *PlayerRecord, lists *ListSet) PlayerView {
	v := PlayerView{
		Name:           record.Name,
		LastAddress:    record.LastAddress,
		AddressHistory: append([]string(nil), record.AddressHistory...),
		JoinCount:      record.JoinCount,
		IsOwner:        record.IsOwner,
		IsAdmin:        record.IsOwner,
	}
	if lists != nil {
		v.IsAdmin = v.IsAdmin || lists.IsAdmin(record.Name)
		v.IsMod = lists.IsMod(record.Name)
		v.IsWhitelisted = lists.IsWhitelisted(record.Name)
		v.IsBlacklisted = lists.IsBlacklisted(record.Name)
	}
	return v
}
