package chat

import "time"

// Session captures a transient anonymous conversation together with the
// patient profile supplied so far. Lives only in process memory.
type Session struct {
	ID        string    `json:"id"`
	History   []Turn    `json:"history"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"createdAt"`
	LastSeen  time.Time `json:"lastSeen"`
}
