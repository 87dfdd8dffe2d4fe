package book

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Direction is the way a page turn travels through the stack.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionNext
	DirectionPrev
)

func (d Direction) String() string {
	switch d {
	case DirectionNext:
		return "next"
	case DirectionPrev:
		return "prev"
	default:
		return "none"
	}
}

// Step returns the index delta committed when a turn in this direction completes.
func (d Direction) Step() int {
	switch d {
	case DirectionNext:
		return 1
	case DirectionPrev:
		return -1
	default:
		return 0
	}
}

// MarshalJSON encodes the direction as its name.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "next", "prev" or "none".
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "next":
		*d = DirectionNext
	case "prev":
		*d = DirectionPrev
	case "none", "":
		*d = DirectionNone
	default:
		return fmt.Errorf("unknown direction %q", s)
	}
	return nil
}

// Rejection reasons returned by the Navigator. The Request* helpers fold
// these into a boolean, since a rejected request is simply ignored input.
var (
	ErrAtBoundary    = errors.New("already at the edge of the stack")
	ErrTransitioning = errors.New("a page turn is already in flight")
	ErrOutOfRange    = errors.New("page index out of range")
	ErrSamePage      = errors.New("already on that page")
	ErrNoTransition  = errors.New("no matching page turn in flight")
)

// State is an immutable snapshot of the navigator.
type State struct {
	Index         int       `json:"index"`
	Total         int       `json:"total"`
	Transitioning bool      `json:"transitioning"`
	Direction     Direction `json:"direction"`
}

// Target returns the index the stack will land on once the in-flight turn
// completes, or the current index when idle.
func (s State) Target() int {
	return s.Index + s.Direction.Step()
}

// Transition identifies one page turn from start to completion.
type Transition struct {
	ID        uint64    `json:"id"`
	Direction Direction `json:"direction"`
	From      int       `json:"from"`
	To        int       `json:"to"`
}

// ChangeKind classifies a navigator notification.
type ChangeKind string

const (
	ChangeStarted   ChangeKind = "started"
	ChangeCommitted ChangeKind = "committed"
	ChangeJumped    ChangeKind = "jumped"
)

// Change is delivered to subscribers after every accepted state mutation.
type Change struct {
	Kind       ChangeKind  `json:"kind"`
	From       int         `json:"from"`
	To         int         `json:"to"`
	Transition *Transition `json:"transition,omitempty"`
	State      State       `json:"state"`
}
