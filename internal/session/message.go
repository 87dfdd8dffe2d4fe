package session

import (
	"github.com/ziadkadry99/sketchbook/internal/book"
	"github.com/ziadkadry99/sketchbook/internal/content"
)

// Client message types.
const (
	MsgWheel      = "wheel"
	MsgKey        = "key"
	MsgTouchStart = "touch_start"
	MsgTouchEnd   = "touch_end"
	MsgJump       = "jump"
	MsgNext       = "next"
	MsgPrev       = "prev"
)

// Server message types.
const (
	MsgState = "state"
	MsgFrame = "frame"
	MsgError = "error"
)

// ClientMessage is the incoming WebSocket message format.
type ClientMessage struct {
	Type   string  `json:"type"`
	DeltaY float64 `json:"delta_y,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Index  int     `json:"index,omitempty"`
}

// Message is the outgoing WebSocket message format.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	State     *book.State     `json:"state,omitempty"`
	Nav       *content.NavBar `json:"nav,omitempty"`
	Frame     *book.Frame     `json:"frame,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Sink delivers outgoing messages to one client.
type Sink func(Message) error
