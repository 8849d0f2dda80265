package material

import (
	"math/rand"
	"testing"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

func TestDiffuseScatterStaysInHemisphere(t *testing.T) {
	d := NewDiffuse(vecmath.New(0.5, 0.5, 0.5))
	rng := rand.New(rand.NewSource(7))
	normal := vecmath.New(0, 1, 0)
	hit := HitRecord{Point: vecmath.New(0, 0, 0), Normal: normal}

	for i := 0; i < 200; i++ {
		result, ok := d.Scatter(vecmath.Ray{}, hit, rng)
		if !ok {
			t.Fatal("Diffuse.Scatter should always succeed")
		}
		if result.Attenuation != d.Albedo {
			t.Errorf("Attenuation = %v, want albedo %v", result.Attenuation, d.Albedo)
		}
		length := result.Scattered.Direction.Length()
		if length < 0.999 || length > 1.001 {
			t.Errorf("scattered direction not unit length: %f", length)
		}
	}
}

func TestDiffuseScatterOrigin(t *testing.T) {
	d := NewDiffuse(vecmath.New(1, 1, 1))
	rng := rand.New(rand.NewSource(1))
	point := vecmath.New(1, 2, 3)
	hit := HitRecord{Point: point, Normal: vecmath.New(0, 1, 0)}

	result, _ := d.Scatter(vecmath.Ray{}, hit, rng)
	if result.Scattered.Origin != point {
		t.Errorf("scattered origin = %v, want %v", result.Scattered.Origin, point)
	}
}
