package transform

import (
	"math"
	"testing"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

func TestAnimatedTransform_EndpointsExact(t *testing.T) {
	start := Translate(core.NewVec3(0.1, 0.2, 0.3)).Mul(RotateY(10)).Mul(Scale(1.1, 1, 1))
	end := Translate(core.NewVec3(-3, 1, 2)).Mul(Rotate(120, core.NewVec3(1, 1, 0))).Mul(Scale(2, 2, 0.5))
	at := NewAnimatedTransform(start, 0.25, end, 0.75)

	tests := []struct {
		name     string
		time     float64
		expected Transform
	}{
		{"Start time", 0.25, start},
		{"End time", 0.75, end},
		{"Before start", -1, start},
		{"After end", 5, end},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := at.Interpolate(tt.time)
			if got.M != tt.expected.M {
				t.Errorf("Interpolate(%f) = %v, expected bitwise %v", tt.time, got.M, tt.expected.M)
			}
		})
	}
}

func TestAnimatedTransform_Translation(t *testing.T) {
	at := NewAnimatedTransform(Identity(), 0, Translate(core.NewVec3(2, 0, 0)), 1)
	if at.HasRotation() {
		t.Error("Pure translation should have no rotation")
	}

	p := at.Point(0.5, core.NewVec3(0, 0, 0))
	if !vecClose(p, core.NewVec3(1, 0, 0), 1e-12) {
		t.Errorf("Expected (1,0,0) at midpoint, got %v", p)
	}

	b := at.MotionBounds(core.NewBounds3(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1)))
	if !vecClose(b.Min, core.NewVec3(-1, -1, -1), 1e-12) || !vecClose(b.Max, core.NewVec3(3, 1, 1), 1e-12) {
		t.Errorf("Unexpected motion bounds %v", b)
	}
}

func TestAnimatedTransform_Slerp(t *testing.T) {
	at := NewAnimatedTransform(Identity(), 0, RotateZ(90), 1)
	if !at.HasRotation() {
		t.Fatal("Expected rotation")
	}

	p := at.Point(0.5, core.NewVec3(1, 0, 0))
	expected := core.NewVec3(math.Cos(math.Pi/4), math.Sin(math.Pi/4), 0)
	if !vecClose(p, expected, 1e-9) {
		t.Errorf("Expected %v at half rotation, got %v", expected, p)
	}
}

func TestAnimatedTransform_MotionBoundsContainTrajectory(t *testing.T) {
	start := Translate(core.NewVec3(1, 0, 0))
	end := Translate(core.NewVec3(0, 2, 1)).Mul(RotateZ(170)).Mul(Scale(1.5, 1.5, 1.5))
	at := NewAnimatedTransform(start, 0, end, 1)
	box := core.NewBounds3(core.NewVec3(-0.5, -0.25, -1), core.NewVec3(0.5, 0.25, 1))

	bounds := at.MotionBounds(box)
	const eps = 1e-6
	for i := 0; i <= 200; i++ {
		time := float64(i) / 200
		tr := at.Interpolate(time)
		for corner := 0; corner < 8; corner++ {
			p := tr.Point(box.Corner(corner))
			if p.X < bounds.Min.X-eps || p.Y < bounds.Min.Y-eps || p.Z < bounds.Min.Z-eps ||
				p.X > bounds.Max.X+eps || p.Y > bounds.Max.Y+eps || p.Z > bounds.Max.Z+eps {
				t.Fatalf("Corner %d at time %f = %v escapes motion bounds %v", corner, time, p, bounds)
			}
		}
	}

	loose := at.startTransform.Bounds(box).Union(at.endTransform.Bounds(box))
	if bounds.SurfaceArea() < loose.SurfaceArea() {
		t.Errorf("Motion bounds %v smaller than keyframe bounds %v", bounds, loose)
	}
}

func TestIntervalFindZeros(t *testing.T) {
	// cos(πt) has a single zero at t = 0.5
	zeros := intervalFindZeros(0, 1, 0, 0, 0, math.Pi/2, core.Interval{Low: 0, High: 1}, 8, nil)
	if len(zeros) == 0 {
		t.Fatal("Expected a zero")
	}
	for _, z := range zeros {
		if math.Abs(z-0.5) > 1e-6 {
			t.Errorf("Expected zero at 0.5, got %f", z)
		}
	}

	// A strictly positive function has no zeros
	if zeros := intervalFindZeros(5, 1, 0, 1, 0, 1, core.Interval{Low: 0, High: 1}, 8, nil); len(zeros) != 0 {
		t.Errorf("Expected no zeros, got %v", zeros)
	}
}
