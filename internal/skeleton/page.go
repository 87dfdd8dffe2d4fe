package skeleton

import (
	"math"
	"time"
)

// Bend tuning.
const (
	EasingFactor         = 0.5
	EasingFactorFold     = 0.3
	InsideCurveStrength  = 0.18
	OutsideCurveStrength = 0.05
	TurningCurveStrength = 0.09

	// TurnPulse is how long the turning bulge lasts after a page flips.
	TurnPulse = 400 * time.Millisecond

	insideJoints = 8
)

// Page is one sheet of the book and its joint chain.
type Page struct {
	Number int
	Joints []Joint
	Z      float64

	opened   bool
	turnedAt time.Time
}

// NewPage creates page number n lying closed.
func NewPage(n int) *Page {
	return &Page{Number: n, Joints: NewChain(PageSegments + 1)}
}

// Opened reports whether the page has been turned over.
func (p *Page) Opened() bool { return p.opened }

// TurningTime is a 0..1..0 pulse over TurnPulse after the page last flipped.
func (p *Page) TurningTime(now time.Time) float64 {
	if p.turnedAt.IsZero() {
		return 0
	}
	elapsed := now.Sub(p.turnedAt)
	if elapsed > TurnPulse {
		elapsed = TurnPulse
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return math.Sin(float64(elapsed) / float64(TurnPulse) * math.Pi)
}

// TargetRotation is the angle the whole sheet swings toward around the spine.
// Open pages fan out slightly by page number so they don't z-fight.
func TargetRotation(number int, opened, bookClosed bool) float64 {
	target := math.Pi / 2
	if opened {
		target = -math.Pi / 2
	}
	if !bookClosed {
		target += degToRad(float64(number) * 0.8)
	}
	return target
}

// BendAngles computes the target Y rotation and X fold for joint i of n.
func BendAngles(i, n int, target, turningTime float64, bookClosed bool) (rotation, fold float64) {
	if bookClosed {
		if i == 0 {
			return target, 0
		}
		return 0, 0
	}

	fi := float64(i)
	var inside, outside float64
	if i < insideJoints {
		inside = math.Sin(fi*0.2 + 0.25)
	} else {
		outside = math.Cos(fi*0.3 + 0.09)
	}
	turning := math.Sin(fi*math.Pi/float64(n)) * turningTime

	rotation = InsideCurveStrength*inside*target -
		OutsideCurveStrength*outside*target +
		TurningCurveStrength*turning*target

	var foldIntensity float64
	if i > insideJoints {
		foldIntensity = math.Sin(fi*math.Pi/float64(n)-0.5) * turningTime
	}
	fold = degToRad(sign(target)*2) * foldIntensity
	return rotation, fold
}

// Update advances the page's joints by delta toward the pose for the given
// book state.
func (p *Page) Update(now time.Time, delta time.Duration, opened, bookClosed bool) {
	if p.opened != opened {
		p.opened = opened
		p.turnedAt = now
	}
	tt := p.TurningTime(now)
	target := TargetRotation(p.Number, opened, bookClosed)
	dt := delta.Seconds()

	n := len(p.Joints)
	for i := range p.Joints {
		j := &p.Joints[i]
		rot, fold := BendAngles(i, n, target, tt, bookClosed)
		dampAngle(&j.RotY, &j.velY, rot, EasingFactor, dt)
		dampAngle(&j.RotX, &j.velX, fold, EasingFactorFold, dt)
	}
}

// Poses solves the chain with the page offset by its stack depth.
func (p *Page) Poses() []Pose {
	return Solve(p.Joints, Vec3{Z: p.Z})
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
