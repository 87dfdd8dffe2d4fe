// Package input turns raw wheel, keyboard and touch events into page-turn
// intents, applying direction-based dead zones.
package input

import (
	"fmt"
	"math"
	"sync"
)

// Intent is what an input event asks the page stack to do.
type Intent int

const (
	IntentNone Intent = iota
	IntentNext
	IntentPrev
)

func (i Intent) String() string {
	switch i {
	case IntentNext:
		return "next"
	case IntentPrev:
		return "prev"
	default:
		return "none"
	}
}

// Default dead zones, in pixels.
const (
	DefaultWheelThreshold = 20.0
	DefaultSwipeThreshold = 50.0
)

// Key names understood by Key, matching the DOM KeyboardEvent.key values.
const (
	KeyArrowDown = "ArrowDown"
	KeyArrowUp   = "ArrowUp"
)

// Thresholds holds the dead zones. A delta must strictly exceed its
// threshold to count.
type Thresholds struct {
	Wheel float64 `json:"wheel"`
	Swipe float64 `json:"swipe"`
}

// DefaultThresholds returns the stock dead zones.
func DefaultThresholds() Thresholds {
	return Thresholds{Wheel: DefaultWheelThreshold, Swipe: DefaultSwipeThreshold}
}

// WheelIntent maps a vertical wheel delta to an intent.
func (t Thresholds) WheelIntent(deltaY float64) Intent {
	switch {
	case deltaY > t.Wheel:
		return IntentNext
	case deltaY < -t.Wheel:
		return IntentPrev
	default:
		return IntentNone
	}
}

// Key maps a key name to an intent.
func Key(key string) Intent {
	switch key {
	case KeyArrowDown:
		return IntentNext
	case KeyArrowUp:
		return IntentPrev
	default:
		return IntentNone
	}
}

// Point is a touch position in client pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SwipeIntent classifies a completed touch gesture. The dominant axis decides:
// a left swipe or a downward swipe turns forward, a right or upward swipe
// turns back. Equal axes and short gestures are ignored.
func (t Thresholds) SwipeIntent(start, end Point) Intent {
	dx := end.X - start.X
	dy := end.Y - start.Y
	ax, ay := math.Abs(dx), math.Abs(dy)

	switch {
	case ax > ay && ax > t.Swipe:
		if dx < 0 {
			return IntentNext
		}
		return IntentPrev
	case ay > ax && ay > t.Swipe:
		if dy > 0 {
			return IntentNext
		}
		return IntentPrev
	default:
		return IntentNone
	}
}

// Target receives intents. *book.Navigator satisfies it.
type Target interface {
	RequestNext() bool
	RequestPrev() bool
}

// Dispatch forwards an intent to target and reports whether it was accepted.
func Dispatch(target Target, in Intent) bool {
	switch in {
	case IntentNext:
		return target.RequestNext()
	case IntentPrev:
		return target.RequestPrev()
	default:
		return false
	}
}

// Event types carried by Event.
const (
	EventWheel      = "wheel"
	EventKey        = "key"
	EventTouchStart = "touch_start"
	EventTouchEnd   = "touch_end"
)

// Event is a raw input event as sent by a browser or terminal front end.
type Event struct {
	Type   string  `json:"type"`
	DeltaY float64 `json:"delta_y,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
}

// Adapter holds the per-client gesture state needed to classify a stream
// of events. It is safe for concurrent use.
type Adapter struct {
	thresholds Thresholds

	mu         sync.Mutex
	touchStart Point
	touching   bool
}

// NewAdapter returns an adapter with the given dead zones. Zero thresholds
// fall back to the defaults.
func NewAdapter(t Thresholds) *Adapter {
	def := DefaultThresholds()
	if t.Wheel <= 0 {
		t.Wheel = def.Wheel
	}
	if t.Swipe <= 0 {
		t.Swipe = def.Swipe
	}
	return &Adapter{thresholds: t}
}

// Thresholds returns the adapter's dead zones.
func (a *Adapter) Thresholds() Thresholds { return a.thresholds }

// Translate classifies ev. Touch starts only record state; a touch end
// without a start is ignored.
func (a *Adapter) Translate(ev Event) (Intent, error) {
	switch ev.Type {
	case EventWheel:
		return a.thresholds.WheelIntent(ev.DeltaY), nil
	case EventKey:
		return Key(ev.Key), nil
	case EventTouchStart:
		a.mu.Lock()
		a.touchStart = Point{X: ev.X, Y: ev.Y}
		a.touching = true
		a.mu.Unlock()
		return IntentNone, nil
	case EventTouchEnd:
		a.mu.Lock()
		start, ok := a.touchStart, a.touching
		a.touching = false
		a.mu.Unlock()
		if !ok {
			return IntentNone, nil
		}
		return a.thresholds.SwipeIntent(start, Point{X: ev.X, Y: ev.Y}), nil
	default:
		return IntentNone, fmt.Errorf("unknown input event %q", ev.Type)
	}
}

// Handle translates ev and dispatches the result to target.
func (a *Adapter) Handle(target Target, ev Event) (Intent, bool, error) {
	in, err := a.Translate(ev)
	if err != nil {
		return IntentNone, false, err
	}
	return in, Dispatch(target, in), nil
}
