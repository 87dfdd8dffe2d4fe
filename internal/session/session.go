// Package session runs one live page stack per connected visitor.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/sketchbook/internal/book"
	"github.com/ziadkadry99/sketchbook/internal/content"
	"github.com/ziadkadry99/sketchbook/internal/history"
	"github.com/ziadkadry99/sketchbook/internal/input"
)

// Recorder persists navigation events. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, ev history.Event) error
}

// recordTimeout bounds a single history write.
const recordTimeout = 5 * time.Second

// Options tune every session a Hub opens.
type Options struct {
	Duration   time.Duration
	FrameRate  int
	Thresholds input.Thresholds
	Brand      string
}

// Session is one visitor's page stack: a navigator, the engine animating it
// and the gesture state of the visitor's input.
type Session struct {
	ID string

	stack    *content.Stack
	brand    string
	nav      *book.Navigator
	engine   *book.Engine
	adapter  *input.Adapter
	recorder Recorder
	sink     Sink

	unsubs []func()
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func newSession(stack *content.Stack, opts Options, rec Recorder, sink Sink) (*Session, error) {
	nav, err := book.NewNavigator(stack.Len())
	if err != nil {
		return nil, fmt.Errorf("creating navigator: %w", err)
	}
	s := &Session{
		ID:       uuid.New().String(),
		stack:    stack,
		brand:    opts.Brand,
		nav:      nav,
		engine:   book.NewEngine(nav, book.WithDuration(opts.Duration), book.WithFrameRate(opts.FrameRate)),
		adapter:  input.NewAdapter(opts.Thresholds),
		recorder: rec,
		sink:     sink,
		done:     make(chan struct{}),
	}
	s.unsubs = append(s.unsubs,
		s.engine.Subscribe(s.onFrame),
		nav.Subscribe(s.onChange),
	)
	return s, nil
}

// start runs the engine until Close.
func (s *Session) start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() {
		defer close(s.done)
		if err := s.engine.Run(ctx); err != nil {
			log.Printf("session: %s: engine: %v", s.ID, err)
		}
	}()
}

// Navigator returns the session's navigator.
func (s *Session) Navigator() *book.Navigator { return s.nav }

// Hello sends the current state and resting frame, as a newly connected
// client needs them before any input.
func (s *Session) Hello() {
	s.sendState(s.nav.State())
	f := s.engine.Frame()
	s.send(Message{Type: MsgFrame, Frame: &f})
}

// Handle applies one client message. Rejected navigation requests are
// silently ignored; only malformed messages return an error.
func (s *Session) Handle(msg ClientMessage) error {
	switch msg.Type {
	case MsgWheel, MsgKey, MsgTouchStart, MsgTouchEnd:
		ev := input.Event{Type: msg.Type, DeltaY: msg.DeltaY, Key: msg.Key, X: msg.X, Y: msg.Y}
		_, _, err := s.adapter.Handle(s.nav, ev)
		return err
	case MsgJump:
		if msg.Index < 0 || msg.Index >= s.stack.Len() {
			return fmt.Errorf("page %d is outside the stack", msg.Index)
		}
		s.nav.RequestJump(msg.Index)
		return nil
	case MsgNext:
		s.nav.RequestNext()
		return nil
	case MsgPrev:
		s.nav.RequestPrev()
		return nil
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// SendError reports a problem to the client.
func (s *Session) SendError(text string) {
	s.send(Message{Type: MsgError, Error: text})
}

// Close stops the engine, completing any turn in flight, and detaches the
// session from its sink. It is safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
			<-s.done
		}
		for _, unsub := range s.unsubs {
			unsub()
		}
		s.engine.Close()
	})
}

func (s *Session) onFrame(f book.Frame) {
	s.send(Message{Type: MsgFrame, Frame: &f})
}

func (s *Session) onChange(c book.Change) {
	s.sendState(c.State)

	var kind history.Kind
	switch c.Kind {
	case book.ChangeCommitted:
		kind = history.KindCommitted
	case book.ChangeJumped:
		kind = history.KindJumped
	default:
		return
	}
	if s.recorder == nil {
		return
	}
	ev := history.Event{SessionID: s.ID, Kind: kind, From: c.From, To: c.To}
	if c.Transition != nil {
		ev.Direction = c.Transition.Direction.String()
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := s.recorder.Record(ctx, ev); err != nil {
		log.Printf("session: %s: recording %s %d->%d: %v", s.ID, kind, c.From, c.To, err)
	}
}

func (s *Session) sendState(st book.State) {
	bar := s.stack.NavBar(s.brand, st.Index)
	s.send(Message{Type: MsgState, State: &st, Nav: &bar})
}

func (s *Session) send(m Message) {
	m.SessionID = s.ID
	if s.sink == nil {
		return
	}
	if err := s.sink(m); err != nil {
		log.Printf("session: %s: send %s: %v", s.ID, m.Type, err)
	}
}
