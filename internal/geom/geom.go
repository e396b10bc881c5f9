// Package geom holds the 3D math used by the gap analysis: view-angle
// conversion, angular offsets between aim and target, field-of-view
// checks and smoke-blocked line-of-sight checks. Coordinates are
// Source-engine world units; angles are degrees.
package geom

import "math"

// Vec3 is a 3D world-space position in Hammer units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector, or the zero vector for zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Distance is the 3D euclidean distance between two positions.
func Distance(a, b Vec3) float64 { return b.Sub(a).Length() }

// Distance2D ignores the Z axis; zone rectangles are 2D.
func Distance2D(a, b Vec3) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Direction converts view angles to a unit forward vector. Yaw rotates
// about the vertical axis from 0°; positive pitch looks down, hence the
// negated Z component.
func Direction(pitchDeg, yawDeg float64) Vec3 {
	p := pitchDeg * math.Pi / 180
	y := yawDeg * math.Pi / 180
	return Vec3{
		X: math.Cos(p) * math.Cos(y),
		Y: math.Cos(p) * math.Sin(y),
		Z: -math.Sin(p),
	}
}

// AngularOffset is the angle in degrees between the view direction at
// (pitch, yaw) and the vector from origin to target: 0° for perfect
// alignment, 180° for directly-opposite aim. The dot product is clamped
// to [-1, 1] before acos to absorb floating error.
func AngularOffset(origin Vec3, pitchDeg, yawDeg float64, target Vec3) float64 {
	view := Direction(pitchDeg, yawDeg)
	toTarget := target.Sub(origin).Normalize()
	dot := view.Dot(toTarget)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}
	return math.Acos(dot) * 180 / math.Pi
}

// InFOV reports whether the target lies within the cone of fovDeg
// centered on the view direction (half angle each side).
func InFOV(origin Vec3, pitchDeg, yawDeg float64, target Vec3, fovDeg float64) bool {
	return AngularOffset(origin, pitchDeg, yawDeg, target) <= fovDeg/2
}

// DefaultSmokeRadius approximates the CS2 smoke volume in units.
const DefaultSmokeRadius = 250.0

// Smoke is an active smoke volume modeled as a sphere.
type Smoke struct {
	Center Vec3    `json:"center"`
	Radius float64 `json:"radius"`
}

// LineOfSightClear reports whether the segment a–b avoids every smoke
// sphere. For each smoke the closest point on the segment to the smoke
// center is found by scalar projection clamped to the segment bounds;
// sight is blocked when that point lies inside the radius. A zero-length
// segment is treated as clear.
func LineOfSightClear(a, b Vec3, smokes []Smoke) bool {
	if len(smokes) == 0 {
		return true
	}
	seg := b.Sub(a)
	length := seg.Length()
	if length == 0 {
		return true
	}
	dir := seg.Scale(1 / length)

	for _, s := range smokes {
		r := s.Radius
		if r <= 0 {
			r = DefaultSmokeRadius
		}
		proj := s.Center.Sub(a).Dot(dir)
		if proj < 0 || proj > length {
			continue
		}
		closest := a.Add(dir.Scale(proj))
		if Distance(closest, s.Center) <= r {
			return false
		}
	}
	return true
}
