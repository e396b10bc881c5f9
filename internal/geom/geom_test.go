package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestDirection_Cardinal(t *testing.T) {
	cases := []struct {
		pitch, yaw float64
		want       Vec3
	}{
		{0, 0, Vec3{1, 0, 0}},
		{0, 90, Vec3{0, 1, 0}},
		{0, 180, Vec3{-1, 0, 0}},
		{90, 0, Vec3{0, 0, -1}}, // looking straight down
		{-90, 0, Vec3{0, 0, 1}}, // straight up
	}
	for _, c := range cases {
		got := Direction(c.pitch, c.yaw)
		if !almostEqual(got.X, c.want.X, 1e-9) ||
			!almostEqual(got.Y, c.want.Y, 1e-9) ||
			!almostEqual(got.Z, c.want.Z, 1e-9) {
			t.Errorf("Direction(%.0f, %.0f): want %+v, got %+v", c.pitch, c.yaw, c.want, got)
		}
	}
}

func TestAngularOffset_PerfectAlignment(t *testing.T) {
	origin := Vec3{0, 0, 0}
	target := Vec3{500, 0, 0} // straight ahead at yaw 0
	off := AngularOffset(origin, 0, 0, target)
	if !almostEqual(off, 0, 1e-9) {
		t.Errorf("aligned target: want offset 0, got %f", off)
	}
	if !InFOV(origin, 0, 0, target, 90) {
		t.Error("aligned target must be in FOV")
	}
}

func TestAngularOffset_Opposite(t *testing.T) {
	off := AngularOffset(Vec3{0, 0, 0}, 0, 0, Vec3{-500, 0, 0})
	if !almostEqual(off, 180, 1e-9) {
		t.Errorf("opposite target: want 180, got %f", off)
	}
}

func TestAngularOffset_Range(t *testing.T) {
	// Sweep a grid of angles and targets; offsets must stay in [0, 180].
	targets := []Vec3{
		{100, 0, 0}, {0, 100, 0}, {0, 0, 100},
		{-100, -100, 0}, {50, 50, 50}, {-1, 2, -3},
	}
	for pitch := -90.0; pitch <= 90; pitch += 30 {
		for yaw := 0.0; yaw < 360; yaw += 45 {
			for _, tgt := range targets {
				off := AngularOffset(Vec3{}, pitch, yaw, tgt)
				if off < 0 || off > 180 {
					t.Fatalf("offset out of range: pitch=%.0f yaw=%.0f target=%+v → %f",
						pitch, yaw, tgt, off)
				}
			}
		}
	}
}

func TestInFOV_EdgeOfCone(t *testing.T) {
	origin := Vec3{0, 0, 0}
	// Target at exactly 45° from yaw 0 with a 90° FOV: on the boundary, inside.
	target := Vec3{100, 100, 0}
	if !InFOV(origin, 0, 0, target, 90) {
		t.Error("target at 45° should be inside a 90° FOV")
	}
	if InFOV(origin, 0, 0, target, 80) {
		t.Error("target at 45° should be outside an 80° FOV")
	}
}

func TestLineOfSightClear_NoSmokes(t *testing.T) {
	if !LineOfSightClear(Vec3{0, 0, 0}, Vec3{1000, 0, 0}, nil) {
		t.Error("no smokes: sight must be clear")
	}
}

func TestLineOfSightClear_Blocked(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{1000, 0, 0}
	smokes := []Smoke{{Center: Vec3{500, 100, 0}, Radius: 250}}
	if LineOfSightClear(a, b, smokes) {
		t.Error("smoke 100 units off a crossing segment must block sight")
	}
}

func TestLineOfSightClear_SmokeOffSegment(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{1000, 0, 0}
	// Smoke behind the start point: projection clamps out of the segment.
	smokes := []Smoke{{Center: Vec3{-400, 0, 0}, Radius: 250}}
	if !LineOfSightClear(a, b, smokes) {
		t.Error("smoke behind the segment must not block sight")
	}
	// Smoke too far to the side.
	smokes = []Smoke{{Center: Vec3{500, 300, 0}, Radius: 250}}
	if !LineOfSightClear(a, b, smokes) {
		t.Error("smoke 300 units off a 250-radius must not block")
	}
}

func TestLineOfSightClear_DefaultRadius(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{1000, 0, 0}
	smokes := []Smoke{{Center: Vec3{500, 200, 0}}} // radius 0 → default 250
	if LineOfSightClear(a, b, smokes) {
		t.Error("zero radius must fall back to the default smoke radius")
	}
}

func TestLineOfSightClear_ZeroLengthSegment(t *testing.T) {
	p := Vec3{10, 10, 10}
	smokes := []Smoke{{Center: p, Radius: 250}}
	if !LineOfSightClear(p, p, smokes) {
		t.Error("zero-length segment is treated as clear")
	}
}

func TestDistance(t *testing.T) {
	d := Distance(Vec3{0, 0, 0}, Vec3{3, 4, 0})
	if !almostEqual(d, 5, 1e-9) {
		t.Errorf("want 5, got %f", d)
	}
	d2 := Distance2D(Vec3{0, 0, 100}, Vec3{3, 4, -700})
	if !almostEqual(d2, 5, 1e-9) {
		t.Errorf("2D distance must ignore Z: want 5, got %f", d2)
	}
}

func TestNormalize_Zero(t *testing.T) {
	if v := (Vec3{}).Normalize(); v != (Vec3{}) {
		t.Errorf("normalizing zero vector: want zero, got %+v", v)
	}
}
