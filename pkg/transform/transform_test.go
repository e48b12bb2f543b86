package transform

import (
	"math"
	"testing"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

// matClose compares entries absolutely; round-off next to an exact zero
// defeats mgl64's relative ApproxEqualThreshold
func matClose(a, b mgl64.Mat4, tolerance float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

func TestTransform_InverseIsCached(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
	}{
		{"Translate", Translate(core.NewVec3(1, -2, 3))},
		{"Scale", Scale(2, 0.5, 4)},
		{"Rotate", Rotate(37, core.NewVec3(1, 1, 0))},
		{"Composite", Translate(core.NewVec3(1, 2, 3)).Mul(RotateY(30)).Mul(Scale(1, 2, 3))},
		{"FromRows", FromRows([4][4]float64{{1, 2, 0, 1}, {0, 1, 0, 2}, {0, 0, 3, 1}, {0, 0, 0, 1}})},
		{"Perspective", Perspective(60, 0.01, 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := tt.tr.M.Mul4(tt.tr.MInv)
			if !matClose(product, mgl64.Ident4(), 1e-9) {
				t.Errorf("M * MInv is not identity: %v", product)
			}
		})
	}
}

func TestTransform_Predicates(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Expected identity to report IsIdentity")
	}
	if Translate(core.NewVec3(1, 0, 0)).IsIdentity() {
		t.Error("Translation should not be identity")
	}
	if !Scale(-1, 1, 1).SwapsHandedness() {
		t.Error("Mirror scale should swap handedness")
	}
	if RotateZ(90).SwapsHandedness() {
		t.Error("Rotation should not swap handedness")
	}
	if !Scale(2, 1, 1).HasScale() || RotateX(45).HasScale() {
		t.Error("HasScale misreported")
	}
}

func TestTransform_Normal(t *testing.T) {
	tr := Scale(1, 4, 1)
	n := core.NewVec3(0, 1, 1).Normalize()
	v := core.NewVec3(0, 1, -1)

	tn := tr.Normal(n)
	tv := tr.Vector(v)
	if math.Abs(tn.Dot(tv)) > 1e-12 {
		t.Errorf("Transformed normal %v no longer perpendicular to %v", tn, tv)
	}
}

func TestTransform_RotateZ(t *testing.T) {
	p := RotateZ(90).Point(core.NewVec3(1, 0, 0))
	if !vecClose(p, core.NewVec3(0, 1, 0), 1e-12) {
		t.Errorf("Expected (0,1,0), got %v", p)
	}
}

func TestLookAt(t *testing.T) {
	worldToCamera, err := LookAt(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	p := worldToCamera.Point(core.NewVec3(0, 0, 0))
	if !vecClose(p, core.NewVec3(0, 0, 5), 1e-12) {
		t.Errorf("Expected look target at +z distance 5, got %v", p)
	}

	if _, err := LookAt(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)); err == nil {
		t.Error("Expected error for up parallel to view direction")
	}
}

func TestTransform_PointWithError(t *testing.T) {
	tr := Translate(core.NewVec3(0.1, 0.2, 0.3)).Mul(RotateX(33))
	p := core.NewVec3(1.5, -2.25, 3.125)

	pt, pErr := tr.PointWithError(p)
	if pt != tr.Point(p) {
		t.Error("PointWithError changed the transformed point")
	}
	if pErr.X <= 0 || pErr.Y <= 0 || pErr.Z <= 0 {
		t.Errorf("Expected positive error bound, got %v", pErr)
	}

	_, carried := tr.PointWithAbsError(p, core.NewVec3(1e-3, 1e-3, 1e-3))
	if carried.X < 1e-3*0.99 {
		t.Errorf("Carried error should dominate, got %v", carried)
	}
}

func TestTransform_RayWithError(t *testing.T) {
	tr := Translate(core.NewVec3(1000, 0, 0))
	ray := core.Ray{Origin: core.NewVec3(0.5, 0, 0), Direction: core.NewVec3(1, 0, 0), TMax: 10}

	out, oErr, _ := tr.RayWithError(ray)
	if oErr.X <= 0 {
		t.Fatalf("Expected origin error, got %v", oErr)
	}
	if out.Origin.X <= 1000.5 {
		t.Errorf("Expected origin advanced along direction, got %v", out.Origin)
	}
	if out.TMax >= 10 {
		t.Errorf("Expected TMax reduced, got %f", out.TMax)
	}
}

func TestDecompose_Recompose(t *testing.T) {
	m := Translate(core.NewVec3(1, 2, 3)).Mul(Rotate(40, core.NewVec3(1, 2, 3))).Mul(Scale(2, 3, 4)).M
	d := decompose(m)

	if !vecClose(d.T, core.NewVec3(1, 2, 3), 1e-12) {
		t.Errorf("Translation = %v", d.T)
	}
	r := d.R.Mat4()
	recomposed := mgl64.Translate3D(d.T.X, d.T.Y, d.T.Z).Mul4(r).Mul4(d.S)
	if !matClose(recomposed, m, 1e-6) {
		t.Errorf("T*R*S does not recompose M:\n%v\n%v", recomposed, m)
	}
	if math.Abs(d.S.At(0, 0)-2) > 1e-6 || math.Abs(d.S.At(1, 1)-3) > 1e-6 || math.Abs(d.S.At(2, 2)-4) > 1e-6 {
		t.Errorf("Unexpected scale %v", d.S)
	}
}
