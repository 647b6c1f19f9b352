package mathutil

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nearVec(a, b Vec3) bool {
	return near(a[0], b[0]) && near(a[1], b[1]) && near(a[2], b[2])
}

func TestVec3Dot(t *testing.T) {
	got := Vec3{1, 2, 3}.Dot(Vec3{4, -5, 6})
	if got != 12 {
		t.Errorf("Vec3.Dot() = %v, want 12", got)
	}
}

func TestVec3MulAcross(t *testing.T) {
	got := Vec3{252, 219, 3}.MulAcross(Vec3{0.5, 0.5, 0.5})
	want := Vec3{126, 109.5, 1.5}
	if got != want {
		t.Errorf("Vec3.MulAcross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"axis", Vec3{0, 0, 5}, Vec3{0, 0, 1}},
		{"3-4-5", Vec3{3, 4, 0}, Vec3{0.6, 0.8, 0}},
		{"zero", Vec3{}, Vec3{}},
		{"tiny", Vec3{1e-14, 0, 0}, Vec3{}},
		{"nan", Vec3{math.NaN(), 1, 0}, Vec3{}},
		{"inf", Vec3{math.Inf(1), 1, 0}, Vec3{}},
		{"huge", Vec3{0, 0, 1e160}, Vec3{0, 0, 1}},
		{"near max", Vec3{3e300, 4e300, 0}, Vec3{0.6, 0.8, 0}},
		{"max float", Vec3{math.MaxFloat64, math.MaxFloat64, 0}, Vec3{math.Sqrt2 / 2, math.Sqrt2 / 2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !nearVec(got, tt.want) {
				t.Errorf("Vec3.Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3NormalizeUnitLength(t *testing.T) {
	for _, v := range []Vec3{{0.5, 0.75, 1}, {-3, 2, 7}, {1e-6, 1e-6, 0}} {
		l := v.Normalize().Len()
		if l < 0.999999 || l > 1.000001 {
			t.Errorf("Vec3%v.Normalize().Len() = %v, want ~1", v, l)
		}
	}
}

func TestVec3Limit(t *testing.T) {
	got := Vec3{-10, 128, 300}.Limit(0, 255)
	want := Vec3{0, 128, 255}
	if got != want {
		t.Errorf("Vec3.Limit() = %v, want %v", got, want)
	}

	got = Vec3{math.NaN(), math.Inf(1), math.Inf(-1)}.Limit(0, 255)
	want = Vec3{0, 255, 0}
	if got != want {
		t.Errorf("Vec3.Limit() with non-finite = %v, want %v", got, want)
	}
}

func TestVec3IsZeroIsFinite(t *testing.T) {
	if !(Vec3{}).IsZero() {
		t.Error("zero vector: IsZero() = false")
	}
	if (Vec3{0, 0, 1}).IsZero() {
		t.Error("unit vector: IsZero() = true")
	}
	if (Vec3{math.NaN(), 0, 0}).IsFinite() {
		t.Error("NaN vector: IsFinite() = true")
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestRotationsAreOrthonormal(t *testing.T) {
	for _, m := range []Mat3{RotX(0.3), RotY(-1.2), RotZ(2.5), Mat3Mul(RotX(0.7), RotZ(0.1))} {
		p := Mat3Mul(m, m.Transpose())
		id := Mat3Identity()
		for i := range p {
			if !near(p[i], id[i]) {
				t.Fatalf("M·Mᵀ = %v, want identity", p)
			}
		}
	}
}

func TestRotYQuarterTurn(t *testing.T) {
	got := RotY(Deg2Rad(90)).MulVec3(Vec3{1, 0, 0})
	want := Vec3{0, 0, -1}
	if !nearVec(got, want) {
		t.Errorf("RotY(90°)·x = %v, want %v", got, want)
	}
}

func TestEulerDegOrder(t *testing.T) {
	// X first: y-axis → z-axis, then Y by 90°: z-axis → x-axis.
	got := EulerDeg(90, 90, 0).MulVec3(Vec3{0, 1, 0})
	want := Vec3{1, 0, 0}
	if !nearVec(got, want) {
		t.Errorf("EulerDeg(90,90,0)·y = %v, want %v", got, want)
	}
}

func TestVec3LenLarge(t *testing.T) {
	v := Vec3{3e200, 4e200, 0}
	if l := v.Len(); math.Abs(l/5e200-1) > 1e-12 {
		t.Errorf("Vec3%v.Len() = %v, want 5e200", v, l)
	}
	if v.IsZero() {
		t.Errorf("Vec3%v.IsZero() = true", v)
	}
}

func TestMat3MulAppliesRightFirst(t *testing.T) {
	a, b := RotY(Deg2Rad(90)), RotX(Deg2Rad(90))
	v := Vec3{0.2, 1, -0.5}
	got := Mat3Mul(a, b).MulVec3(v)
	want := a.MulVec3(b.MulVec3(v))
	if !nearVec(got, want) {
		t.Errorf("Mat3Mul(a, b)·v = %v, want a·(b·v) = %v", got, want)
	}
}

func TestMat3Transpose(t *testing.T) {
	m := Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	want := Mat3{1, 4, 7, 2, 5, 8, 3, 6, 9}
	if got := m.Transpose(); got != want {
		t.Errorf("Transpose() = %v, want %v", got, want)
	}
}
