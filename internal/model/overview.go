package model

import "time"

// Overview is the remote server's self-reported status
type Overview struct {
	Name       string   `json:"name"`
	Owner      string   `json:"owner"`
	Online     []string `json:"online"`
	MaxPlayers int      `json:"max_players"`
}

// Clone returns a deep copy of the overview
func (o *Overview) Clone() *Overview {
	c := *o
	c.Online = append([]string(nil), o.Online...)
	return &c
}

// LogEntry is one line of the remote server's chat/join/leave log
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// CloneLog returns a copy of an ordered log-entry sequence
func CloneLog(entries []LogEntry) []LogEntry {
	return append([]LogEntry(nil), entries...)
}
