package book

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

func setupEngine(t *testing.T, total int) (*Navigator, *Engine, *fakeClock) {
	t.Helper()
	n := newNav(t, total)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	e := NewEngine(n, WithClock(clock.Now))
	t.Cleanup(e.Close)
	return n, e, clock
}

func TestPlanForHingeAndAngles(t *testing.T) {
	next := PlanFor(DirectionNext, 0)
	if next.Hinge != OriginLeading || next.Hinge.CSS() != "0% center" {
		t.Errorf("next hinge = %v", next.Hinge.CSS())
	}
	if next.ExitAngle != -178 || next.EnterAngle != 178 {
		t.Errorf("next angles = %v/%v", next.ExitAngle, next.EnterAngle)
	}
	if next.Duration != DefaultTurnDuration {
		t.Errorf("duration = %v, want default", next.Duration)
	}

	prev := PlanFor(DirectionPrev, time.Second)
	if prev.Hinge != OriginTrailing || prev.Hinge.CSS() != "100% center" {
		t.Errorf("prev hinge = %v", prev.Hinge.CSS())
	}
	if prev.ExitAngle != 178 || prev.EnterAngle != -178 {
		t.Errorf("prev angles = %v/%v", prev.ExitAngle, prev.EnterAngle)
	}
}

func TestPlanAnglesEndpoints(t *testing.T) {
	p := PlanFor(DirectionNext, 0)

	out, in := p.Angles(0)
	if out != 0 || in != EnterAngleNext {
		t.Errorf("Angles(0) = %v, %v", out, in)
	}
	out, in = p.Angles(1)
	if out != ExitAngleNext || in != 0 {
		t.Errorf("Angles(1) = %v, %v", out, in)
	}

	// Outgoing eases in, so it lags linear; incoming eases out, so it leads.
	out, in = p.Angles(0.5)
	if math.Abs(out) >= 89 {
		t.Errorf("outgoing at half = %v, want less than half of the sweep", out)
	}
	if math.Abs(in) >= 89 {
		t.Errorf("incoming at half = %v, want more than half settled", in)
	}
	if math.Abs(out-(-22.25)) > 1e-9 {
		t.Errorf("outgoing at half = %v, want -22.25", out)
	}
	if math.Abs(in-22.25) > 1e-9 {
		t.Errorf("incoming at half = %v, want 22.25", in)
	}
}

func TestEngineCommitsAfterDuration(t *testing.T) {
	n, e, clock := setupEngine(t, 3)
	n.RequestNext()

	f, ok := e.Advance(clock.Add(300 * time.Millisecond))
	if !ok || f.Done {
		t.Fatalf("mid-turn frame = %+v, ok=%v", f, ok)
	}
	if f.Incoming == nil || f.Incoming.Page != 1 || f.Current.Page != 0 {
		t.Errorf("slots = %+v / %+v", f.Current, f.Incoming)
	}
	if f.Current.ZIndex <= f.Incoming.ZIndex {
		t.Error("outgoing slot must draw above incoming")
	}
	if n.State().Index != 0 {
		t.Error("index must not change before completion")
	}

	f, ok = e.Advance(clock.Add(400 * time.Millisecond))
	if !ok || !f.Done {
		t.Fatalf("final frame = %+v, ok=%v", f, ok)
	}
	if f.Current.Page != 1 || f.Current.RotationY != 0 || f.Current.Origin != OriginCenter {
		t.Errorf("rest slot = %+v", f.Current)
	}
	if s := n.State(); s.Index != 1 || s.Transitioning {
		t.Errorf("state = %+v", s)
	}

	if _, ok := e.Advance(clock.Add(time.Second)); ok {
		t.Error("Advance after completion should report idle")
	}
}

func TestEnginePublishesFrames(t *testing.T) {
	n, e, clock := setupEngine(t, 3)
	var frames []Frame
	e.Subscribe(func(f Frame) { frames = append(frames, f) })

	n.RequestNext()
	e.Advance(clock.Add(100 * time.Millisecond))
	e.Advance(clock.Add(time.Second))
	n.RequestJump(0)

	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4 (start, mid, done, jump)", len(frames))
	}
	if frames[0].Progress != 0 || frames[0].Incoming == nil {
		t.Errorf("start frame = %+v", frames[0])
	}
	if !frames[2].Done || frames[2].Current.Page != 1 {
		t.Errorf("done frame = %+v", frames[2])
	}
	if frames[3].Incoming != nil || frames[3].Current.Page != 0 {
		t.Errorf("jump frame = %+v", frames[3])
	}
}

func TestEngineFlushReleasesLock(t *testing.T) {
	n, e, _ := setupEngine(t, 3)
	n.RequestNext()
	e.Flush()
	if s := n.State(); s.Transitioning || s.Index != 1 {
		t.Errorf("state after flush = %+v", s)
	}
	if !n.RequestNext() {
		t.Error("navigator should accept a new turn after flush")
	}
}

func TestEngineRunFlushesOnCancel(t *testing.T) {
	n := newNav(t, 3)
	e := NewEngine(n, WithDuration(time.Hour), WithFrameRate(200))
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = e.Run(ctx)
		close(done)
	}()

	n.RequestNext()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if s := n.State(); s.Transitioning || s.Index != 1 {
		t.Errorf("state = %+v, want committed turn", s)
	}
}

func TestEngineRunCompletesTurn(t *testing.T) {
	n := newNav(t, 2)
	e := NewEngine(n, WithDuration(20*time.Millisecond), WithFrameRate(200))
	defer e.Close()

	committed := make(chan struct{}, 1)
	n.Subscribe(func(c Change) {
		if c.Kind == ChangeCommitted {
			committed <- struct{}{}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx)

	n.RequestNext()
	select {
	case <-committed:
	case <-time.After(2 * time.Second):
		t.Fatal("turn was never committed")
	}
}

func TestFrameJSON(t *testing.T) {
	f := RestFrame(2)
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	current := decoded["current"].(map[string]any)
	if current["origin"] != "center center" {
		t.Errorf("origin = %v", current["origin"])
	}
	if decoded["direction"] != "none" {
		t.Errorf("direction = %v", decoded["direction"])
	}
	if _, ok := decoded["incoming"]; ok {
		t.Error("rest frame should omit incoming slot")
	}

	var back Frame
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal into Frame: %v", err)
	}
	if back.Current.Origin != OriginCenter || back.Direction != DirectionNone {
		t.Errorf("round trip = %+v", back)
	}

	for _, o := range []Origin{OriginCenter, OriginLeading, OriginTrailing} {
		b, err := json.Marshal(o)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", o, err)
		}
		var got Origin
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", b, err)
		}
		if got != o {
			t.Errorf("origin round trip %s = %v, want %v", b, got, o)
		}
	}
	var bad Origin
	if err := json.Unmarshal([]byte(`"left top"`), &bad); err == nil {
		t.Error("expected error for unknown origin")
	}
}
