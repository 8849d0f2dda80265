package material

import (
	"math/rand"

	"github.com/elyse-vance/lumen/pkg/sampling"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// Metallic is a fuzzy mirror: perfect reflection perturbed by a random
// in-unit-sphere offset scaled by Roughness.
type Metallic struct {
	Albedo    vecmath.Vec3
	Roughness float64 // in [0,1]; 0 = perfect mirror
}

// NewMetallic creates a metallic material, clamping roughness to [0,1].
func NewMetallic(albedo vecmath.Vec3, roughness float64) *Metallic {
	if roughness < 0 {
		roughness = 0
	}
	if roughness > 1 {
		roughness = 1
	}
	return &Metallic{Albedo: albedo, Roughness: roughness}
}

// Scatter implements Material for metallic reflection.
// A reflection that points back into the surface (d·normal <= 0) is
// absorbed: the ray terminates returning black.
func (m *Metallic) Scatter(rayIn vecmath.Ray, hit HitRecord, rng *rand.Rand) (ScatterResult, bool) {
	reflected := vecmath.Reflect(rayIn.Direction, hit.Normal)
	d := reflected.Add(sampling.InUnitSphere(rng).Multiply(m.Roughness))

	if d.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	scattered := vecmath.NewRay(hit.Point, d.Normalize())

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, true
}
