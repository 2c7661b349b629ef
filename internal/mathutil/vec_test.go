package mathutil

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3i{1, 2, 3}
	b := Vec3i{4, -5, 6}

	if got, want := a.Add(b), (Vec3i{5, -3, 9}); got != want {
		t.Errorf("Add = %v, want %v", got, want)
	}
	if got, want := a.Sub(b), (Vec3i{-3, 7, -3}); got != want {
		t.Errorf("Sub = %v, want %v", got, want)
	}
	if got, want := a.Dot(b), 4-10+18; got != want {
		t.Errorf("Dot = %v, want %v", got, want)
	}
	if got, want := a.Cross(b), (Vec3i{27, 6, -13}); got != want {
		t.Errorf("Cross = %v, want %v", got, want)
	}
	if got, want := a.Scale(1.5), (Vec3i{1, 3, 4}); got != want {
		t.Errorf("Scale = %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	n := Vec3f{3, 0, 4}.Normalize()
	if math.Abs(n.X-0.6) > 1e-12 || n.Y != 0 || math.Abs(n.Z-0.8) > 1e-12 {
		t.Errorf("Normalize = %v", n)
	}
	if math.Abs(n.Norm()-1) > 1e-12 {
		t.Errorf("Norm = %v, want 1", n.Norm())
	}
	if z := (Vec3f{}).Normalize(); z != (Vec3f{}) {
		t.Errorf("zero Normalize = %v", z)
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 0}, {0.49, 0}, {0.5, 1}, {1.7, 2}, {-0.4, 0}, {-0.6, 0}, {-1.6, -1},
	}
	for _, c := range cases {
		if got := Round(c.in); got != c.want {
			t.Errorf("Round(%v) = %d, want %d", c.in, got, c.want)
		}
	}
	if got := Round3(Vec3f{1.5, 2.49, 7}); got != (Vec3i{2, 2, 7}) {
		t.Errorf("Round3 = %v", got)
	}
}

func TestLerp3(t *testing.T) {
	a := Vec3f{0, 10, 20}
	b := Vec3f{10, 20, 40}
	if got := Lerp3(a, b, 0.5); got != (Vec3f{5, 15, 30}) {
		t.Errorf("Lerp3 = %v", got)
	}
}

func TestRotation(t *testing.T) {
	v := RotY(Deg2Rad(90)).MulVec3(Vec3f{1, 0, 0})
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Z+1) > 1e-12 {
		t.Errorf("RotY(90)·x = %v, want (0,0,-1)", v)
	}
	if m := EulerDeg(0, 0, 0); m != Mat3Identity() {
		t.Errorf("EulerDeg(0,0,0) = %v", m)
	}
	r := RotZ(0.3).Mul(RotZ(-0.3))
	id := Mat3Identity()
	for i := range r {
		if math.Abs(r[i]-id[i]) > 1e-12 {
			t.Fatalf("RotZ(a)·RotZ(-a) = %v", r)
		}
	}
}
