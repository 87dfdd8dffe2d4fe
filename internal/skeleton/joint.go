package skeleton

import "math"

// Joint is one hinge in a page's chain. Offset is relative to the parent
// joint; RotX and RotY are local Euler angles in radians, applied X then Y.
type Joint struct {
	Offset Vec3
	RotX   float64
	RotY   float64

	velX float64
	velY float64
}

// NewChain builds count joints spaced one segment apart along x, the first
// sitting on the spine.
func NewChain(count int) []Joint {
	joints := make([]Joint, count)
	for i := 1; i < count; i++ {
		joints[i].Offset = Vec3{X: SegmentWidth}
	}
	return joints
}

// mat3 is a row-major rotation matrix.
type mat3 [3][3]float64

func identity() mat3 {
	return mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func (a mat3) mul(b mat3) mat3 {
	var out mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = a[r][0]*b[0][c] + a[r][1]*b[1][c] + a[r][2]*b[2][c]
		}
	}
	return out
}

func (a mat3) apply(v Vec3) Vec3 {
	return Vec3{
		X: a[0][0]*v.X + a[0][1]*v.Y + a[0][2]*v.Z,
		Y: a[1][0]*v.X + a[1][1]*v.Y + a[1][2]*v.Z,
		Z: a[2][0]*v.X + a[2][1]*v.Y + a[2][2]*v.Z,
	}
}

func rotX(a float64) mat3 {
	s, c := math.Sincos(a)
	return mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

func rotY(a float64) mat3 {
	s, c := math.Sincos(a)
	return mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

// Pose is a joint's world transform.
type Pose struct {
	rot    mat3
	Origin Vec3
}

// Apply maps a point from the joint's local frame into world space.
func (p Pose) Apply(v Vec3) Vec3 {
	return p.rot.apply(v).Add(p.Origin)
}

// Solve runs forward kinematics over a chain rooted at root.
func Solve(joints []Joint, root Vec3) []Pose {
	poses := make([]Pose, len(joints))
	parent := Pose{rot: identity(), Origin: root}
	for i, j := range joints {
		local := rotX(j.RotX).mul(rotY(j.RotY))
		p := Pose{
			rot:    parent.rot.mul(local),
			Origin: parent.Apply(j.Offset),
		}
		poses[i] = p
		parent = p
	}
	return poses
}

// Skin deforms bind-pose vertices by the posed chain. In the bind pose
// joint k sits at x = k*SegmentWidth with no rotation.
func Skin(g *Geometry, poses []Pose) []Vec3 {
	out := make([]Vec3, len(g.Positions))
	for i, v := range g.Positions {
		var acc Vec3
		for k := 0; k < 2; k++ {
			idx, w := g.SkinIndex[i][k], g.SkinWeight[i][k]
			if w == 0 || idx >= len(poses) {
				continue
			}
			local := v.Sub(Vec3{X: float64(idx) * SegmentWidth})
			acc = acc.Add(poses[idx].Apply(local).Scale(w))
		}
		out[i] = acc
	}
	return out
}
