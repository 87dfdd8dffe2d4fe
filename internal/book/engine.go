package book

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Z order of the two slots; the outgoing page always draws above.
const (
	CurrentZ  = 10
	IncomingZ = 5
)

// DefaultFrameRate is the sampling rate used by Run.
const DefaultFrameRate = 60

// SlotTransform positions one page slot.
type SlotTransform struct {
	Page      int     `json:"page"`
	RotationY float64 `json:"rotation_y"`
	Origin    Origin  `json:"origin"`
	ZIndex    int     `json:"z_index"`
}

// Frame is one sampled pose of the page stack. Incoming is nil whenever no
// turn is in flight.
type Frame struct {
	TransitionID uint64         `json:"transition_id,omitempty"`
	Direction    Direction      `json:"direction"`
	Progress     float64        `json:"progress"`
	Current      SlotTransform  `json:"current"`
	Incoming     *SlotTransform `json:"incoming,omitempty"`
	Done         bool           `json:"done,omitempty"`
}

// RestFrame is the pose of an idle stack showing page index.
func RestFrame(index int) Frame {
	return Frame{
		Current: SlotTransform{Page: index, Origin: OriginCenter, ZIndex: CurrentZ},
	}
}

type turn struct {
	t       Transition
	plan    Plan
	started time.Time
}

func (tr *turn) frame(progress float64) Frame {
	out, in := tr.plan.Angles(progress)
	return Frame{
		TransitionID: tr.t.ID,
		Direction:    tr.t.Direction,
		Progress:     progress,
		Current:      SlotTransform{Page: tr.t.From, RotationY: out, Origin: tr.plan.Hinge, ZIndex: CurrentZ},
		Incoming:     &SlotTransform{Page: tr.t.To, RotationY: in, Origin: tr.plan.Hinge, ZIndex: IncomingZ},
	}
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDuration sets the length of one page turn.
func WithDuration(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.duration = d
		}
	}
}

// WithFrameRate sets how often Run samples the animation.
func WithFrameRate(fps int) EngineOption {
	return func(e *Engine) {
		if fps > 0 {
			e.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithClock replaces time.Now, mainly for tests and offline rendering.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine animates the turns a Navigator starts and commits them when the
// animation ends. Frames are pushed to subscribers; Advance may be driven
// by Run or by any external clock.
type Engine struct {
	nav      *Navigator
	duration time.Duration
	interval time.Duration
	now      func() time.Time
	unsub    func()

	mu      sync.Mutex
	turn    *turn
	subs    map[int]func(Frame)
	nextSub int
}

// NewEngine attaches an engine to nav.
func NewEngine(nav *Navigator, opts ...EngineOption) *Engine {
	e := &Engine{
		nav:      nav,
		duration: DefaultTurnDuration,
		interval: time.Second / DefaultFrameRate,
		now:      time.Now,
		subs:     make(map[int]func(Frame)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if t, ok := nav.Active(); ok {
		e.turn = &turn{t: t, plan: PlanFor(t.Direction, e.duration), started: e.now()}
	}
	e.unsub = nav.Subscribe(e.onChange)
	return e
}

// Navigator returns the navigator the engine drives.
func (e *Engine) Navigator() *Navigator { return e.nav }

// Duration returns the configured turn length.
func (e *Engine) Duration() time.Duration { return e.duration }

// Interval returns the sampling period used by Run.
func (e *Engine) Interval() time.Duration { return e.interval }

// Subscribe registers fn for every published frame.
func (e *Engine) Subscribe(fn func(Frame)) (cancel func()) {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
		})
	}
}

// Frame returns the pose at the engine's current time without advancing.
func (e *Engine) Frame() Frame {
	e.mu.Lock()
	tr := e.turn
	e.mu.Unlock()
	if tr == nil {
		return RestFrame(e.nav.State().Index)
	}
	return tr.frame(tr.plan.Progress(e.now().Sub(tr.started)))
}

// Advance samples the animation at now. Once the turn has run its full
// duration it is committed on the navigator. The boolean reports whether a
// turn was in flight.
func (e *Engine) Advance(now time.Time) (Frame, bool) {
	e.mu.Lock()
	tr := e.turn
	if tr == nil {
		e.mu.Unlock()
		return Frame{}, false
	}

	progress := tr.plan.Progress(now.Sub(tr.started))
	if progress < 1 {
		f := tr.frame(progress)
		subs := e.subscribersLocked()
		e.mu.Unlock()
		publish(subs, f)
		return f, true
	}

	e.turn = nil
	e.mu.Unlock()

	// The committed notification publishes the resting frame.
	_ = e.nav.Complete(tr.t.ID)
	return doneFrame(tr.t), true
}

// Flush completes any in-flight turn immediately.
func (e *Engine) Flush() {
	e.mu.Lock()
	tr := e.turn
	e.turn = nil
	e.mu.Unlock()
	if tr != nil {
		_ = e.nav.Complete(tr.t.ID)
	}
}

// Run samples the animation until ctx is cancelled. A turn still in flight
// at that point is flushed so the transition lock is never left held.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.Flush()
			return nil
		case <-ticker.C:
			e.Advance(e.now())
		}
	}
}

// Close detaches the engine from its navigator, flushing any in-flight turn.
func (e *Engine) Close() {
	e.Flush()
	e.unsub()
}

func (e *Engine) onChange(c Change) {
	switch c.Kind {
	case ChangeStarted:
		e.mu.Lock()
		tr := &turn{t: *c.Transition, plan: PlanFor(c.Transition.Direction, e.duration), started: e.now()}
		e.turn = tr
		subs := e.subscribersLocked()
		e.mu.Unlock()
		publish(subs, tr.frame(0))

	case ChangeCommitted:
		e.mu.Lock()
		if e.turn != nil && e.turn.t.ID == c.Transition.ID {
			e.turn = nil
		}
		subs := e.subscribersLocked()
		e.mu.Unlock()
		publish(subs, doneFrame(*c.Transition))

	case ChangeJumped:
		e.mu.Lock()
		subs := e.subscribersLocked()
		e.mu.Unlock()
		publish(subs, RestFrame(c.To))
	}
}

func doneFrame(t Transition) Frame {
	f := RestFrame(t.To)
	f.TransitionID = t.ID
	f.Direction = t.Direction
	f.Progress = 1
	f.Done = true
	return f
}

func (e *Engine) subscribersLocked() []func(Frame) {
	ids := make([]int, 0, len(e.subs))
	for id := range e.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(Frame), len(ids))
	for i, id := range ids {
		out[i] = e.subs[id]
	}
	return out
}

func publish(subs []func(Frame), f Frame) {
	for _, fn := range subs {
		fn(f)
	}
}
