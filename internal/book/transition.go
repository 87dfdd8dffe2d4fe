package book

import (
	"encoding/json"
	"fmt"
	"time"
)

// Turn timing and angles, in degrees around the vertical axis. Both pages
// travel past 90° so the outgoing page is fully turned away.
const (
	DefaultTurnDuration = 650 * time.Millisecond

	ExitAngleNext  = -178.0
	EnterAngleNext = 178.0
	ExitAnglePrev  = 178.0
	EnterAnglePrev = -178.0
)

// Origin is the vertical axis a slot rotates around.
type Origin int

const (
	OriginCenter Origin = iota
	OriginLeading
	OriginTrailing
)

// CSS returns the origin as a transform-origin value.
func (o Origin) CSS() string {
	switch o {
	case OriginLeading:
		return "0% center"
	case OriginTrailing:
		return "100% center"
	default:
		return "center center"
	}
}

// Fraction returns the hinge position across the page width, 0 to 1.
func (o Origin) Fraction() float64 {
	switch o {
	case OriginLeading:
		return 0
	case OriginTrailing:
		return 1
	default:
		return 0.5
	}
}

func (o Origin) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.CSS())
}

// UnmarshalJSON accepts the values CSS produces.
func (o *Origin) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "0% center":
		*o = OriginLeading
	case "100% center":
		*o = OriginTrailing
	case "center center", "":
		*o = OriginCenter
	default:
		return fmt.Errorf("unknown origin %q", s)
	}
	return nil
}

// Plan describes how one page turn animates.
type Plan struct {
	Direction  Direction
	Hinge      Origin
	ExitAngle  float64
	EnterAngle float64
	Duration   time.Duration
}

// PlanFor returns the turn plan for a direction. Going forward hinges on
// the leading edge; going back hinges on the trailing edge.
func PlanFor(dir Direction, duration time.Duration) Plan {
	if duration <= 0 {
		duration = DefaultTurnDuration
	}
	p := Plan{Direction: dir, Duration: duration}
	switch dir {
	case DirectionNext:
		p.Hinge = OriginLeading
		p.ExitAngle = ExitAngleNext
		p.EnterAngle = EnterAngleNext
	case DirectionPrev:
		p.Hinge = OriginTrailing
		p.ExitAngle = ExitAnglePrev
		p.EnterAngle = EnterAnglePrev
	default:
		p.Hinge = OriginCenter
	}
	return p
}

// Progress maps elapsed time to [0,1].
func (p Plan) Progress(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= p.Duration {
		return 1
	}
	return float64(elapsed) / float64(p.Duration)
}

// Angles returns the outgoing and incoming rotations at progress t.
func (p Plan) Angles(t float64) (outgoing, incoming float64) {
	t = clamp01(t)
	outgoing = p.ExitAngle * Power2In(t)
	incoming = p.EnterAngle * (1 - Power2Out(t))
	return outgoing, incoming
}

// Power2In accelerates from rest. The power2 family is cubic.
func Power2In(t float64) float64 {
	t = clamp01(t)
	return t * t * t
}

// Power2Out decelerates to rest.
func Power2Out(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
