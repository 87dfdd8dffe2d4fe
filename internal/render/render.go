// Package render draws page-stack frames to PNG with a software rasterizer.
package render

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/ziadkadry99/sketchbook/internal/book"
	"github.com/ziadkadry99/sketchbook/internal/skeleton"
)

// Kind selects which renderer draws the frames.
type Kind string

const (
	KindStack    Kind = "stack"
	KindSkeleton Kind = "skeleton"
)

// Palette colors, as hex strings understood by gg.
type Palette struct {
	Background string
	Paper      string
	Dark       string
	Ink        string
	Accent     string
}

// DefaultPalette matches the page's stylesheet.
func DefaultPalette() Palette {
	return Palette{
		Background: "#d9cfbf",
		Paper:      "#f7f1e6",
		Dark:       "#1d1a17",
		Ink:        "#2b2621",
		Accent:     "#b4532a",
	}
}

// Perspective is the CSS perspective distance, in pixels of a 1280 px wide
// viewport.
const Perspective = 1800.0

// Canvas draws frames of a fixed size.
type Canvas struct {
	Width   int
	Height  int
	Palette Palette
	// Dark marks pages drawn on the dark paper.
	Dark map[int]bool
	// Total is the page count, for the position dots.
	Total int
}

// quad is a page outline in screen space.
type quad [4][2]float64

// pageRect returns the resting page rectangle.
func (c *Canvas) pageRect() (x, y, w, h float64) {
	w = float64(c.Width) * 0.62
	h = float64(c.Height) * 0.78
	x = (float64(c.Width) - w) / 2
	y = (float64(c.Height) - h) / 2
	return x, y, w, h
}

// project places a slot rotated about its hinge. It reports false when the
// page shows its back, which the page stylesheet hides.
func (c *Canvas) project(s book.SlotTransform) (quad, bool) {
	theta := s.RotationY * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	// Edge-on counts as hidden.
	if cos < 1e-9 {
		return quad{}, false
	}

	x0, y0, w, h := c.pageRect()
	hinge := x0 + s.Origin.Fraction()*w
	ox, oy := float64(c.Width)/2, float64(c.Height)/2
	d := Perspective * float64(c.Width) / 1280

	var q quad
	corners := [4][2]float64{{x0, y0}, {x0 + w, y0}, {x0 + w, y0 + h}, {x0, y0 + h}}
	for i, p := range corners {
		dx := p[0] - hinge
		// CSS rotateY: x' = x cos + z sin, z' = -x sin + z cos, with z = 0.
		xr := dx * cos
		zr := -dx * sin
		scale := d / (d - zr)
		q[i] = [2]float64{
			ox + (hinge+xr-ox)*scale,
			oy + (p[1]-oy)*scale,
		}
	}
	return q, true
}

// DrawFrame paints one page-stack frame: the incoming slot first, then the
// current slot above it.
func (c *Canvas) DrawFrame(dc *gg.Context, f book.Frame) error {
	dc.ClearWithColor(gg.Hex(c.Palette.Background))

	slots := []book.SlotTransform{f.Current}
	if f.Incoming != nil {
		slots = append(slots, *f.Incoming)
	}
	// Lower z first.
	if len(slots) == 2 && slots[1].ZIndex < slots[0].ZIndex {
		slots[0], slots[1] = slots[1], slots[0]
	}
	for _, s := range slots {
		if err := c.drawSlot(dc, s); err != nil {
			return err
		}
	}
	return c.drawDots(dc, f.Current.Page)
}

func (c *Canvas) drawSlot(dc *gg.Context, s book.SlotTransform) error {
	q, visible := c.project(s)
	if !visible {
		return nil
	}
	paper := c.Palette.Paper
	if c.Dark[s.Page] {
		paper = c.Palette.Dark
	}

	tracePath(dc, q)
	dc.SetHexColor(paper)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("filling page %d: %w", s.Page, err)
	}
	tracePath(dc, q)
	dc.SetHexColor(c.Palette.Ink)
	dc.SetLineWidth(2)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("outlining page %d: %w", s.Page, err)
	}
	return nil
}

func tracePath(dc *gg.Context, q quad) {
	dc.MoveTo(q[0][0], q[0][1])
	for _, p := range q[1:] {
		dc.LineTo(p[0], p[1])
	}
	dc.ClosePath()
}

// drawDots marks the current page along the bottom edge.
func (c *Canvas) drawDots(dc *gg.Context, current int) error {
	if c.Total < 2 {
		return nil
	}
	const gap, r = 16.0, 4.0
	y := float64(c.Height) - 20
	x := float64(c.Width)/2 - gap*float64(c.Total-1)/2
	for i := 0; i < c.Total; i++ {
		dc.DrawCircle(x+gap*float64(i), y, r)
		if i == current {
			dc.SetHexColor(c.Palette.Accent)
		} else {
			dc.SetHexColor(c.Palette.Ink)
		}
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

// DrawBook paints the skeletal book from above: each sheet is the polyline
// through its posed joints, spine at the centre.
func (c *Canvas) DrawBook(dc *gg.Context, b *skeleton.Book) error {
	dc.ClearWithColor(gg.Hex(c.Palette.Background))

	scale := float64(c.Width) * 0.36 / skeleton.PageWidth
	cx, cy := float64(c.Width)/2, float64(c.Height)/2
	// Stack depth is a few thousandths of a unit; spread it out so sheets
	// stay distinguishable.
	const depthSpread = 40.0

	displayed := b.Displayed()
	for k, p := range b.Pages() {
		poses := p.Poses()
		if len(poses) == 0 {
			continue
		}
		pt := func(v skeleton.Vec3) (float64, float64) {
			return cx + v.X*scale, cy + v.Z*scale*depthSpread
		}
		x, y := pt(poses[0].Origin)
		dc.MoveTo(x, y)
		for _, pose := range poses[1:] {
			x, y = pt(pose.Origin)
			dc.LineTo(x, y)
		}
		x, y = pt(poses[len(poses)-1].Apply(skeleton.Vec3{X: skeleton.SegmentWidth}))
		dc.LineTo(x, y)

		if k < displayed {
			dc.SetHexColor(c.Palette.Accent)
		} else {
			dc.SetHexColor(c.Palette.Ink)
		}
		dc.SetLineWidth(2)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("drawing sheet %d: %w", k, err)
		}
	}

	dc.DrawCircle(cx, cy, 5)
	dc.SetHexColor(c.Palette.Ink)
	return dc.Fill()
}
