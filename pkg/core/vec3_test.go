package core

import (
	"math"
	"testing"
)

func TestVec3_CoordinateSystem(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"X axis", NewVec3(1, 0, 0)},
		{"Y axis", NewVec3(0, 1, 0)},
		{"Z axis", NewVec3(0, 0, 1)},
		{"Diagonal", NewVec3(1, 1, 1).Normalize()},
		{"Negative", NewVec3(-0.3, 0.2, -0.9).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v2, v3 := CoordinateSystem(tt.v)

			const tolerance = 1e-9
			if math.Abs(tt.v.Dot(v2)) > tolerance || math.Abs(tt.v.Dot(v3)) > tolerance || math.Abs(v2.Dot(v3)) > tolerance {
				t.Errorf("Basis not orthogonal: %v %v %v", tt.v, v2, v3)
			}
			if math.Abs(v2.Length()-1) > tolerance || math.Abs(v3.Length()-1) > tolerance {
				t.Errorf("Basis not normalized: %v %v", v2, v3)
			}
		})
	}
}

func TestVec3_MaxDimension(t *testing.T) {
	tests := []struct {
		v        Vec3
		expected int
	}{
		{NewVec3(3, 1, 2), 0},
		{NewVec3(1, 3, 2), 1},
		{NewVec3(1, 2, 3), 2},
	}

	for _, tt := range tests {
		if got := tt.v.MaxDimension(); got != tt.expected {
			t.Errorf("MaxDimension(%v) = %d, expected %d", tt.v, got, tt.expected)
		}
	}
}

func TestVec3_FaceForward(t *testing.T) {
	n := NewVec3(0, 0, 1)
	if got := n.FaceForward(NewVec3(0, 0, -1)); got != NewVec3(0, 0, -1) {
		t.Errorf("Expected flipped normal, got %v", got)
	}
	if got := n.FaceForward(NewVec3(1, 0, 0.1)); got != n {
		t.Errorf("Expected unchanged normal, got %v", got)
	}
}

func TestBounds3_UnionWithEmpty(t *testing.T) {
	b := EmptyBounds3().Union(NewBounds3(NewVec3(1, 2, 3), NewVec3(-1, -2, -3)))

	if b.Min != NewVec3(-1, -2, -3) || b.Max != NewVec3(1, 2, 3) {
		t.Errorf("Expected [-1,-2,-3]..[1,2,3], got %v", b)
	}
	if !EmptyBounds3().IsEmpty() {
		t.Error("Expected empty bounds to report empty")
	}
}

func TestBounds3_Measures(t *testing.T) {
	b := NewBounds3(NewVec3(0, 0, 0), NewVec3(2, 1, 4))

	if got := b.SurfaceArea(); got != 2*(2+4+8) {
		t.Errorf("SurfaceArea = %f, expected 28", got)
	}
	if got := b.MaximumExtent(); got != 2 {
		t.Errorf("MaximumExtent = %d, expected 2", got)
	}
	if got := b.Offset(NewVec3(1, 0.5, 1)); got != NewVec3(0.5, 0.5, 0.25) {
		t.Errorf("Offset = %v, expected (0.5,0.5,0.25)", got)
	}
	if got := b.Corner(7); got != b.Max {
		t.Errorf("Corner(7) = %v, expected %v", got, b.Max)
	}
}

func TestBounds3_IntersectPInv(t *testing.T) {
	b := NewBounds3(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"Through center", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), true},
		{"Miss to the side", NewRay(NewVec3(3, 0, 5), NewVec3(0, 0, -1)), false},
		{"Pointing away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), false},
		{"Diagonal", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), true},
		{"Too short", Ray{Origin: NewVec3(0, 0, 5), Direction: NewVec3(0, 0, -1), TMax: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.ray.Direction
			invDir := NewVec3(1/d.X, 1/d.Y, 1/d.Z)
			dirIsNeg := [3]int{}
			for axis := 0; axis < 3; axis++ {
				if invDir.Get(axis) < 0 {
					dirIsNeg[axis] = 1
				}
			}
			if got := b.IntersectPInv(&tt.ray, invDir, dirIsNeg); got != tt.expected {
				t.Errorf("IntersectPInv = %v, expected %v", got, tt.expected)
			}
			_, _, hit := b.IntersectP(tt.ray)
			if hit != tt.expected {
				t.Errorf("IntersectP = %v, expected %v", hit, tt.expected)
			}
		})
	}
}

func TestBounds2i_Area(t *testing.T) {
	b := NewBounds2i(NewPoint2i(4, 2), NewPoint2i(0, 0))
	if b.Area() != 8 {
		t.Errorf("Area = %d, expected 8", b.Area())
	}

	count := 0
	b.Pixels(func(p Point2i) {
		if !b.InsideExclusive(p) {
			t.Errorf("Pixel %v outside bounds", p)
		}
		count++
	})
	if count != 8 {
		t.Errorf("Visited %d pixels, expected 8", count)
	}
}

func TestOffsetRayOrigin(t *testing.T) {
	p := NewVec3(0, 0, 1)
	pErr := NewVec3(1e-6, 1e-6, 1e-6)
	n := NewVec3(0, 0, 1)

	out := OffsetRayOrigin(p, pErr, n, NewVec3(0, 0, 1))
	if out.Z <= p.Z+1e-6 {
		t.Errorf("Expected origin pushed above error box, got %v", out)
	}

	in := OffsetRayOrigin(p, pErr, n, NewVec3(0, 0, -1))
	if in.Z >= p.Z-1e-6 {
		t.Errorf("Expected origin pushed below error box, got %v", in)
	}
}
