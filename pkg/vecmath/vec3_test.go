package vecmath

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, 5, 6)

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v, want {5 7 9}", got)
	}
	if got := b.Subtract(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Subtract = %v, want {3 3 3}", got)
	}
	if got := a.Multiply(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Multiply = %v, want {2 4 6}", got)
	}
	if got := a.MultiplyVec(b); got != (Vec3{4, 10, 18}) {
		t.Errorf("MultiplyVec = %v, want {4 10 18}", got)
	}
	if got := a.Negate(); got != (Vec3{-1, -2, -3}) {
		t.Errorf("Negate = %v, want {-1 -2 -3}", got)
	}
}

func TestVec3DotCross(t *testing.T) {
	x := New(1, 0, 0)
	y := New(0, 1, 0)
	z := New(0, 0, 1)

	if dot := x.Dot(y); dot != 0 {
		t.Errorf("x.Dot(y) = %f, want 0", dot)
	}
	if got := x.Cross(y); got != z {
		t.Errorf("x.Cross(y) = %v, want %v", got, z)
	}
}

func TestVec3Length(t *testing.T) {
	v := New(3, 4, 0)
	if got := v.Length(); got != 5 {
		t.Errorf("Length = %f, want 5", got)
	}
	if got := v.LengthSquared(); got != 25 {
		t.Errorf("LengthSquared = %f, want 25", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := New(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-9 {
		t.Errorf("Normalize result not unit length: %f", v.Length())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Normalize of zero vector = %v, want zero", zero)
	}
}

func TestVec3MinMaxClamp(t *testing.T) {
	a := New(1, 5, -2)
	b := New(3, 2, 0)

	if got := a.Min(b); got != (Vec3{1, 2, -2}) {
		t.Errorf("Min = %v, want {1 2 -2}", got)
	}
	if got := a.Max(b); got != (Vec3{3, 5, 0}) {
		t.Errorf("Max = %v, want {3 5 0}", got)
	}
	if got := New(-1, 0.5, 2).Clamp(0, 1); got != (Vec3{0, 0.5, 1}) {
		t.Errorf("Clamp = %v, want {0 0.5 1}", got)
	}
}

func TestLerp(t *testing.T) {
	a := New(0, 0, 0)
	b := New(1, 1, 1)

	if got := Lerp(0, a, b); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := Lerp(1, a, b); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	if got := Lerp(0.5, a, b); got != (Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("Lerp(0.5) = %v, want {0.5 0.5 0.5}", got)
	}
}

// TestReflect checks reflect(d,n)·n = -d·n and |reflect(d,n)| = |d|.
func TestReflect(t *testing.T) {
	d := New(1, -1, 0).Normalize()
	n := New(0, 1, 0)

	r := Reflect(d, n)

	if math.Abs(r.Dot(n)-(-d.Dot(n))) > 1e-9 {
		t.Errorf("Reflect(d,n).Dot(n) = %f, want %f", r.Dot(n), -d.Dot(n))
	}
	if math.Abs(r.Length()-d.Length()) > 1e-9 {
		t.Errorf("Reflect length = %f, want %f", r.Length(), d.Length())
	}
}

func TestIsZero(t *testing.T) {
	if !(Vec3{}).IsZero() {
		t.Error("zero vector should report IsZero")
	}
	if New(0, 0.001, 0).IsZero() {
		t.Error("non-zero vector should not report IsZero")
	}
}
