package session

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/ziadkadry99/sketchbook/internal/book"
	"github.com/ziadkadry99/sketchbook/internal/content"
)

// Hub owns every live session.
type Hub struct {
	stack    *content.Stack
	opts     Options
	recorder Recorder

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// NewHub creates a hub serving the given page stack. rec may be nil.
func NewHub(stack *content.Stack, opts Options, rec Recorder) *Hub {
	return &Hub{
		stack:    stack,
		opts:     opts,
		recorder: rec,
		sessions: make(map[string]*Session),
	}
}

// Open starts a new session delivering its messages to sink.
func (h *Hub) Open(sink Sink) (*Session, error) {
	s, err := newSession(h.stack, h.opts, h.recorder, sink)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		s.Close()
		return nil, fmt.Errorf("hub is shut down")
	}
	h.sessions[s.ID] = s
	h.mu.Unlock()

	s.start()
	log.Printf("session: opened %s", s.ID)
	return s, nil
}

// Release closes and forgets a session.
func (h *Hub) Release(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if ok {
		s.Close()
		log.Printf("session: closed %s", id)
	}
}

// Get returns a live session.
func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Snapshot is the externally visible state of one session.
type Snapshot struct {
	ID    string     `json:"id"`
	State book.State `json:"state"`
}

// Snapshots lists live sessions ordered by id.
func (h *Hub) Snapshots() []Snapshot {
	h.mu.Lock()
	out := make([]Snapshot, 0, len(h.sessions))
	for id, s := range h.sessions {
		out = append(out, Snapshot{ID: id, State: s.nav.State()})
	}
	h.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Close shuts every session down and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	sessions := h.sessions
	h.sessions = make(map[string]*Session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
