// Package history records where visitors go in the sketchbook.
package history

import "time"

// Kind says how the visitor reached a page.
type Kind string

const (
	KindCommitted Kind = "committed"
	KindJumped    Kind = "jumped"
)

// Event is one recorded index change.
type Event struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Kind      Kind      `json:"kind"`
	Direction string    `json:"direction,omitempty"`
	From      int       `json:"from"`
	To        int       `json:"to"`
	CreatedAt time.Time `json:"created_at"`
}

// PageCount is the number of arrivals on a page.
type PageCount struct {
	Index int `json:"index"`
	Count int `json:"count"`
}
