package skeleton

import (
	"math"
	"testing"
	"time"

	"github.com/ziadkadry99/sketchbook/internal/book"
)

const eps = 1e-9

func TestPageGeometry(t *testing.T) {
	g := NewPageGeometry()

	// Six grids: two 2x3, two 31x2, two 31x3.
	if want := 2*(2*3) + 2*(31*2) + 2*(31*3); len(g.Positions) != want {
		t.Errorf("vertex count = %d, want %d", len(g.Positions), want)
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, p := range g.Positions {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	if math.Abs(minX) > eps || math.Abs(maxX-PageWidth) > eps {
		t.Errorf("x range = [%v, %v], want [0, %v]", minX, maxX, PageWidth)
	}

	for i := range g.Positions {
		w := g.SkinWeight[i]
		if math.Abs(w[0]+w[1]-1) > eps {
			t.Fatalf("vertex %d weights %v do not sum to 1", i, w)
		}
		if g.SkinIndex[i][1] > PageSegments {
			t.Fatalf("vertex %d bound past the last joint: %v", i, g.SkinIndex[i])
		}
	}
}

func TestSkinBinding(t *testing.T) {
	tests := []struct {
		x       float64
		wantIdx int
		wantW   float64
	}{
		{0, 0, 0},
		{SegmentWidth * 0.25, 0, 0.25},
		{SegmentWidth * 10.5, 10, 0.5},
		{PageWidth, PageSegments - 1, 1},
	}
	for _, tt := range tests {
		idx, w := SkinBinding(tt.x)
		if idx != tt.wantIdx || math.Abs(w-tt.wantW) > 1e-6 {
			t.Errorf("SkinBinding(%v) = %d, %v; want %d, %v", tt.x, idx, w, tt.wantIdx, tt.wantW)
		}
	}
}

func TestRestPoseSkinsToBindPose(t *testing.T) {
	g := NewPageGeometry()
	poses := Solve(NewChain(PageSegments+1), Vec3{})

	last := poses[len(poses)-1].Origin
	if math.Abs(last.X-PageWidth) > 1e-9 {
		t.Errorf("last joint at x=%v, want %v", last.X, PageWidth)
	}

	skinned := Skin(g, poses)
	for i := range skinned {
		d := skinned[i].Sub(g.Positions[i])
		if math.Abs(d.X)+math.Abs(d.Y)+math.Abs(d.Z) > 1e-9 {
			t.Fatalf("vertex %d moved in rest pose: %+v -> %+v", i, g.Positions[i], skinned[i])
		}
	}
}

func TestRootRotationSwingsWholeChain(t *testing.T) {
	joints := NewChain(PageSegments + 1)
	joints[0].RotY = math.Pi / 2
	poses := Solve(joints, Vec3{})

	tip := poses[len(poses)-1].Origin
	// Rotating +90° about Y carries +x onto -z.
	if math.Abs(tip.X) > 1e-9 || math.Abs(tip.Z+PageWidth) > 1e-9 {
		t.Errorf("tip = %+v, want (0, 0, -%v)", tip, PageWidth)
	}
}

func TestTargetRotation(t *testing.T) {
	if got := TargetRotation(3, false, true); math.Abs(got-math.Pi/2) > eps {
		t.Errorf("closed book, unopened = %v", got)
	}
	if got := TargetRotation(3, true, true); math.Abs(got+math.Pi/2) > eps {
		t.Errorf("closed book, opened = %v", got)
	}
	want := -math.Pi/2 + 5*0.8*math.Pi/180
	if got := TargetRotation(5, true, false); math.Abs(got-want) > eps {
		t.Errorf("open book fan = %v, want %v", got, want)
	}
}

func TestBendAnglesClosedBook(t *testing.T) {
	rot, fold := BendAngles(0, 31, 1.2, 0.7, true)
	if rot != 1.2 || fold != 0 {
		t.Errorf("root joint = %v, %v; want whole rotation, no fold", rot, fold)
	}
	rot, fold = BendAngles(5, 31, 1.2, 0.7, true)
	if rot != 0 || fold != 0 {
		t.Errorf("inner joint = %v, %v; want rest", rot, fold)
	}
}

func TestBendAnglesCurve(t *testing.T) {
	target := -math.Pi / 2
	n := 31

	rot, fold := BendAngles(2, n, target, 0, false)
	want := InsideCurveStrength * math.Sin(2*0.2+0.25) * target
	if math.Abs(rot-want) > eps {
		t.Errorf("inside joint rotation = %v, want %v", rot, want)
	}
	if fold != 0 {
		t.Errorf("inside joint fold = %v, want 0", fold)
	}

	rot, _ = BendAngles(12, n, target, 0, false)
	want = -OutsideCurveStrength * math.Cos(12*0.3+0.09) * target
	if math.Abs(rot-want) > eps {
		t.Errorf("outside joint rotation = %v, want %v", rot, want)
	}

	// Folding only happens mid-turn and only past the inside joints.
	_, fold = BendAngles(20, n, target, 1, false)
	wantFold := degToRad(-2) * math.Sin(20*math.Pi/31-0.5)
	if math.Abs(fold-wantFold) > eps {
		t.Errorf("fold = %v, want %v", fold, wantFold)
	}
	_, fold = BendAngles(8, n, target, 1, false)
	if fold != 0 {
		t.Errorf("joint 8 fold = %v, want 0", fold)
	}
}

func TestTurningTimePulse(t *testing.T) {
	p := NewPage(0)
	start := time.Unix(100, 0)
	if p.TurningTime(start) != 0 {
		t.Error("unturned page should have no pulse")
	}
	p.Update(start, 0, true, false)
	if got := p.TurningTime(start.Add(TurnPulse / 2)); math.Abs(got-1) > 1e-9 {
		t.Errorf("pulse at half = %v, want 1", got)
	}
	if got := p.TurningTime(start.Add(time.Hour)); math.Abs(got) > 1e-9 {
		t.Errorf("pulse after end = %v, want 0", got)
	}
}

func TestDampAngleConverges(t *testing.T) {
	var cur, vel float64
	for i := 0; i < 600; i++ {
		dampAngle(&cur, &vel, 1.0, 0.5, 1.0/60)
		if cur > 1.0+1e-9 {
			t.Fatalf("overshoot at step %d: %v", i, cur)
		}
	}
	if math.Abs(cur-1) > 0.01 {
		t.Errorf("after 10s cur = %v, want ~1", cur)
	}
}

func TestDeltaAngleShortestArc(t *testing.T) {
	got := deltaAngle(0.1, 2*math.Pi-0.1)
	if math.Abs(got+0.2) > 1e-9 {
		t.Errorf("deltaAngle wraps = %v, want -0.2", got)
	}
}

func TestBookStepping(t *testing.T) {
	b := NewBook(8)
	now := time.Unix(0, 0)
	b.SetTarget(5, now)

	if !b.Step(now) || b.Displayed() != 1 {
		t.Fatalf("first step should be immediate, displayed=%d", b.Displayed())
	}
	// Four pages behind: fast cadence.
	if b.Step(now.Add(FastStep - time.Millisecond)) {
		t.Error("stepped before fast delay")
	}
	now = now.Add(FastStep)
	if !b.Step(now) || b.Displayed() != 2 {
		t.Fatalf("second step, displayed=%d", b.Displayed())
	}
	// Three pages behind still fast; then two behind switches to slow.
	now = now.Add(FastStep)
	b.Step(now)
	now = now.Add(FastStep)
	if b.Step(now.Add(-time.Millisecond)) {
		t.Error("stepped early")
	}
	b.Step(now)
	if b.Displayed() != 4 {
		t.Fatalf("displayed = %d, want 4", b.Displayed())
	}
	if b.Step(now.Add(FastStep)) {
		t.Error("one page behind should use the slow cadence")
	}
	if !b.Step(now.Add(SlowStep)) || b.Displayed() != 5 {
		t.Errorf("displayed = %d, want 5", b.Displayed())
	}
	if b.Step(now.Add(time.Hour)) {
		t.Error("no step once target reached")
	}
}

func TestBookClosedAndClicks(t *testing.T) {
	b := NewBook(3)
	if !b.Closed() {
		t.Error("new book should be closed")
	}
	if got := b.PageClicked(0); got != 1 {
		t.Errorf("click unopened page 0 = %d, want 1", got)
	}

	now := time.Unix(0, 0)
	b.SetTarget(2, now)
	b.Step(now)
	b.Step(now.Add(SlowStep))
	if b.Closed() {
		t.Error("book at page 2 of 3 should be open")
	}
	if got := b.PageClicked(1); got != 1 {
		t.Errorf("click opened page 1 = %d, want 1", got)
	}
	if got := b.PageClicked(2); got != 3 {
		t.Errorf("click unopened page 2 = %d, want 3", got)
	}
}

func TestBookUpdateBendsOpenedPages(t *testing.T) {
	b := NewBook(3)
	start := time.Unix(0, 0)
	b.SetTarget(1, start)
	for i := 0; i <= 120; i++ {
		b.Update(start.Add(time.Duration(i) * time.Second / 60))
	}
	pages := b.Pages()
	if !pages[0].Opened() || pages[1].Opened() {
		t.Fatalf("opened flags = %v, %v", pages[0].Opened(), pages[1].Opened())
	}
	// An opened page swings to the other side of the spine.
	tip0 := pages[0].Poses()[PageSegments].Origin
	tip1 := pages[1].Poses()[PageSegments].Origin
	if tip0.Z <= 0 || tip1.Z >= 0 {
		t.Errorf("tips z = %v (opened), %v (closed); want opposite sides", tip0.Z, tip1.Z)
	}
	if math.Abs(pages[0].Z-PageDepth) > eps {
		t.Errorf("page 0 z = %v, want %v", pages[0].Z, PageDepth)
	}
}

func TestBookFollowsNavigator(t *testing.T) {
	nav, err := book.NewNavigator(4)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBook(4)
	now := time.Unix(0, 0)
	cancel := b.Follow(nav, func() time.Time { return now })
	defer cancel()

	nav.RequestJump(3)
	if b.Target() != 3 {
		t.Errorf("target = %d, want 3", b.Target())
	}

	nav.RequestJump(0)
	if !b.Click(nav, 0) {
		t.Fatal("click should jump")
	}
	if nav.State().Index != 1 {
		t.Errorf("index = %d, want 1", nav.State().Index)
	}
}
