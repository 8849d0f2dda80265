package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// TestSchlickMonotonicAndEndpoint checks that Schlick is monotonically
// decreasing in cosTheta on [0,1] and equals r0 at cosTheta=1.
func TestSchlickMonotonicAndEndpoint(t *testing.T) {
	iorIn, iorOut := 1.0, 1.5
	r0 := math.Pow((iorIn-iorOut)/(iorIn+iorOut), 2)

	if got := Schlick(1.0, iorIn, iorOut); math.Abs(got-r0) > 1e-9 {
		t.Errorf("Schlick(1, ...) = %f, want r0=%f", got, r0)
	}

	prev := Schlick(0.0, iorIn, iorOut)
	for cos := 0.1; cos <= 1.0; cos += 0.1 {
		cur := Schlick(cos, iorIn, iorOut)
		if cur > prev {
			t.Errorf("Schlick not monotonically decreasing: Schlick(%f)=%f > prev=%f", cos, cur, prev)
		}
		prev = cur
	}
}

// TestRefractCenteredRay checks that a ray through the center of a
// sphere refracts with the expected exit cosine.
func TestRefractCenteredRay(t *testing.T) {
	d := vecmath.New(0, 0, -1)
	n := vecmath.New(0, 0, 1)
	eta := 1.0 / 1.5

	refracted := Refract(d, n, eta)

	// A ray travelling exactly along the normal should pass straight
	// through undeviated.
	if refracted.Subtract(d).Length() > 1e-9 {
		t.Errorf("Refract along normal = %v, want %v", refracted, d)
	}
}

func TestDielectricScatterAlwaysSucceeds(t *testing.T) {
	d := NewDielectric(vecmath.New(1, 1, 1), 1.5)
	hit := HitRecord{
		Point:     vecmath.New(0, 0, -0.5),
		Normal:    vecmath.New(0, 0, 1),
		FrontFace: true,
	}
	rng := rand.New(rand.NewSource(42))

	result, ok := d.Scatter(vecmath.NewRay(vecmath.New(0, 0, -2), vecmath.New(0, 0, 1)), hit, rng)
	if !ok {
		t.Fatal("Dielectric.Scatter should always continue the path")
	}
	if result.Attenuation != d.Albedo {
		t.Errorf("Attenuation = %v, want albedo %v", result.Attenuation, d.Albedo)
	}
}
