// Package skeleton models a book whose pages are bent by a chain of hinge
// joints, approximating paper curvature while a page turns.
package skeleton

import "math"

// Page dimensions in scene units. The page is subdivided along its width
// so every segment boundary can carry a joint.
const (
	PageWidth      = 1.28
	PageHeight     = 1.71
	PageDepth      = 0.003
	PageSegments   = 30
	HeightSegments = 2
	SegmentWidth   = PageWidth / PageSegments
)

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Geometry is a subdivided box with per-vertex skin bindings. Each vertex is
// bound to at most two neighbouring joints.
type Geometry struct {
	Positions   []Vec3
	SkinIndex   [][2]int
	SkinWeight  [][2]float64
	JointCount  int
	SegmentSize float64
}

// NewPageGeometry builds the page box with the spine at x=0 and the free
// edge at x=PageWidth.
func NewPageGeometry() *Geometry {
	g := &Geometry{JointCount: PageSegments + 1, SegmentSize: SegmentWidth}

	w, h, d := PageWidth, PageHeight, PageDepth
	g.plane(2, 1, d, h, w/2, 1, HeightSegments)
	g.plane(2, 1, d, h, -w/2, 1, HeightSegments)
	g.plane(0, 2, w, d, h/2, PageSegments, 1)
	g.plane(0, 2, w, d, -h/2, PageSegments, 1)
	g.plane(0, 1, w, h, d/2, PageSegments, HeightSegments)
	g.plane(0, 1, w, h, -d/2, PageSegments, HeightSegments)

	// Move the spine to the origin.
	for i := range g.Positions {
		g.Positions[i].X += w / 2
	}
	g.bind()
	return g
}

// plane appends a (gx+1)x(gy+1) grid of vertices centred on the origin. u
// and v select the axes the grid spans; the remaining axis is fixed at depth.
func (g *Geometry) plane(u, v int, width, height, depth float64, gx, gy int) {
	w := 3 - u - v
	for iy := 0; iy <= gy; iy++ {
		y := float64(iy)*height/float64(gy) - height/2
		for ix := 0; ix <= gx; ix++ {
			x := float64(ix)*width/float64(gx) - width/2
			var p [3]float64
			p[u] = x
			p[v] = y
			p[w] = depth
			g.Positions = append(g.Positions, Vec3{p[0], p[1], p[2]})
		}
	}
}

func (g *Geometry) bind() {
	g.SkinIndex = make([][2]int, len(g.Positions))
	g.SkinWeight = make([][2]float64, len(g.Positions))
	for i, p := range g.Positions {
		idx, wt := SkinBinding(p.X)
		g.SkinIndex[i] = [2]int{idx, idx + 1}
		g.SkinWeight[i] = [2]float64{1 - wt, wt}
	}
}

// SkinBinding returns the lower joint index for a vertex at x and the weight
// given to the joint after it. Vertices on the free edge bind fully to the
// last joint.
func SkinBinding(x float64) (int, float64) {
	f := x / SegmentWidth
	idx := int(math.Floor(f))
	if idx < 0 {
		return 0, 0
	}
	if idx >= PageSegments {
		return PageSegments - 1, 1
	}
	return idx, f - float64(idx)
}
