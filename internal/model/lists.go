package model

// ListSet holds the server's four access lists. Disjointness between the
// lists is a server-side convention, not enforced here.
type ListSet struct {
	Adminlist []string `json:"adminlist"`
	Modlist   []string `json:"modlist"`
	Whitelist []string `json:"whitelist"`
	Blacklist []string `json:"blacklist"`
}

// ListUpdate is a partial update to a ListSet. A nil slice leaves the
// corresponding list unchanged; an empty non-nil slice clears it. Nil
// slices marshal as JSON null, so absence round-trips over the wire.
type ListUpdate struct {
	Adminlist []string `json:"adminlist"`
	Modlist   []string `json:"modlist"`
	Whitelist []string `json:"whitelist"`
	Blacklist []string `json:"blacklist"`
}

// Clone returns a deep copy of the list set
func (l *ListSet) Clone() *ListSet {
	return &ListSet{
		Adminlist: append([]string(nil), l.Adminlist...),
		Modlist:   append([]string(nil), l.Modlist...),
		Whitelist: append([]string(nil), l.Whitelist...),
		Blacklist: append([]string(nil), l.Blacklist...),
	}
}

// Merge returns a new ListSet with the update's non-nil lists laid over
// the receiver's lists. The receiver is not modified.
func (l *ListSet) Merge(update ListUpdate) *ListSet {
	merged := l.Clone()
	if update.Adminlist != nil {
		merged.Adminlist = append([]string(nil), update.Adminlist...)
	}
	if update.Modlist != nil {
		merged.Modlist = append([]string(nil), update.Modlist...)
	}
	if update.Whitelist != nil {
		merged.Whitelist = append([]string(nil), update.Whitelist...)
	}
	if update.Blacklist != nil {
		merged.Blacklist = append([]string(nil), update.Blacklist...)
	}
	return merged
}

// IsAdmin reports whether the name appears on the adminlist
func (l *ListSet) IsAdmin(name PlayerName) bool { return contains(l.Adminlist, name) }

// IsMod reports whether the name appears on the modlist
func (l *ListSet) IsMod(name PlayerName) bool { return contains(l.Modlist, name) }

// IsWhitelisted reports whether the name appears on the whitelist
func (l *ListSet) IsWhitelisted(name PlayerName) bool { return contains(l.Whitelist, name) }

// IsBlacklisted reports whether the name appears on the blacklist
func (l *ListSet) IsBlacklisted(name PlayerName) bool { return contains(l.Blacklist, name) }

// contains matches case-insensitively; list entries come from the remote
// server and are not guaranteed to be canonical.
func contains(list []string, name PlayerName) bool {
	for _, entry := range list {
		if Canonical(entry) == name {
			return true
		}
	}
	return false
}
