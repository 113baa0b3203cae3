package model

// EventType identifies the type of event
type EventType string

const (
	EventJoin    EventType = "join"
	EventLeave   EventType = "leave"
	EventMessage EventType = "message"
	EventOther   EventType = "other"
)

// JoinEvent is published when a player connects. The view reflects the
// registry state after the join was recorded.
type JoinEvent struct {
	Player  PlayerView `json:"player"`
	Address string     `json:"address"`
}

// LeaveEvent is published when a player disconnects
type LeaveEvent struct {
	Player PlayerView `json:"player"`
}

// MessageEvent is published for every chat message, including messages
// that also triggered a command.
type MessageEvent struct {
	Player PlayerView `json:"player"`
	Text   string     `json:"text"`
}

// OtherEvent is published for log input the event source could not parse
type OtherEvent struct {
	Raw string `json:"raw"`
}
