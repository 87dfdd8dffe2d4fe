package book

import (
	"fmt"
	"sort"
	"sync"
)

// Navigator owns the page-stack position and the transition lock. It is
// safe for concurrent use; subscribers are notified synchronously, outside
// the lock, in subscription order.
type Navigator struct {
	mu      sync.Mutex
	state   State
	active  *Transition
	lastID  uint64
	subs    map[int]func(Change)
	nextSub int
}

// NewNavigator creates a navigator over a stack of total pages, positioned
// on the first page.
func NewNavigator(total int) (*Navigator, error) {
	if total < 1 {
		return nil, fmt.Errorf("page stack needs at least one page, got %d", total)
	}
	return &Navigator{
		state: State{Total: total},
		subs:  make(map[int]func(Change)),
	}, nil
}

// State returns a snapshot of the current state.
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Active returns the in-flight transition, if any.
func (n *Navigator) Active() (Transition, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.active == nil {
		return Transition{}, false
	}
	return *n.active, true
}

// Subscribe registers fn for every accepted change and returns a function
// that removes it.
func (n *Navigator) Subscribe(fn func(Change)) (cancel func()) {
	n.mu.Lock()
	id := n.nextSub
	n.nextSub++
	n.subs[id] = fn
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

// Next starts a turn toward the following page.
func (n *Navigator) Next() error { return n.begin(DirectionNext) }

// Prev starts a turn toward the preceding page.
func (n *Navigator) Prev() error { return n.begin(DirectionPrev) }

// RequestNext is Next with rejections treated as ignored input.
func (n *Navigator) RequestNext() bool { return n.Next() == nil }

// RequestPrev is Prev with rejections treated as ignored input.
func (n *Navigator) RequestPrev() bool { return n.Prev() == nil }

func (n *Navigator) begin(dir Direction) error {
	n.mu.Lock()
	if n.state.Transitioning {
		n.mu.Unlock()
		return ErrTransitioning
	}
	to := n.state.Index + dir.Step()
	if to < 0 || to >= n.state.Total {
		n.mu.Unlock()
		return ErrAtBoundary
	}

	n.lastID++
	t := Transition{ID: n.lastID, Direction: dir, From: n.state.Index, To: to}
	n.active = &t
	n.state.Transitioning = true
	n.state.Direction = dir
	change := Change{Kind: ChangeStarted, From: t.From, To: t.To, Transition: &t, State: n.state}
	subs := n.subscribersLocked()
	n.mu.Unlock()

	notify(subs, change)
	return nil
}

// JumpTo moves straight to index i without animating.
func (n *Navigator) JumpTo(i int) error {
	n.mu.Lock()
	if i < 0 || i >= n.state.Total {
		n.mu.Unlock()
		return ErrOutOfRange
	}
	if i == n.state.Index {
		n.mu.Unlock()
		return ErrSamePage
	}
	if n.state.Transitioning {
		n.mu.Unlock()
		return ErrTransitioning
	}

	from := n.state.Index
	n.state.Index = i
	change := Change{Kind: ChangeJumped, From: from, To: i, State: n.state}
	subs := n.subscribersLocked()
	n.mu.Unlock()

	notify(subs, change)
	return nil
}

// RequestJump is JumpTo with rejections treated as ignored input.
func (n *Navigator) RequestJump(i int) bool { return n.JumpTo(i) == nil }

// Complete commits the turn with the given id. Only the first call for an
// in-flight turn succeeds; later or stale calls return ErrNoTransition.
func (n *Navigator) Complete(id uint64) error {
	n.mu.Lock()
	if n.active == nil || n.active.ID != id {
		n.mu.Unlock()
		return ErrNoTransition
	}

	t := *n.active
	n.active = nil
	n.state.Index = t.To
	n.state.Transitioning = false
	n.state.Direction = DirectionNone
	change := Change{Kind: ChangeCommitted, From: t.From, To: t.To, Transition: &t, State: n.state}
	subs := n.subscribersLocked()
	n.mu.Unlock()

	notify(subs, change)
	return nil
}

func (n *Navigator) subscribersLocked() []func(Change) {
	ids := make([]int, 0, len(n.subs))
	for id := range n.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(Change), len(ids))
	for i, id := range ids {
		out[i] = n.subs[id]
	}
	return out
}

func notify(subs []func(Change), c Change) {
	for _, fn := range subs {
		fn(c)
	}
}
