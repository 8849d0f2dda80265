package material

import (
	"math/rand"

	"github.com/elyse-vance/lumen/pkg/sampling"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// Diffuse is a Lambertian material: it scatters toward a direction
// jittered uniformly off the surface normal.
type Diffuse struct {
	Albedo vecmath.Vec3
}

// NewDiffuse creates a diffuse material with the given base color.
func NewDiffuse(albedo vecmath.Vec3) *Diffuse {
	return &Diffuse{Albedo: albedo}
}

// Scatter implements Material for Lambertian scattering: the new
// direction is normalize(normal + random point on the unit sphere).
func (d *Diffuse) Scatter(rayIn vecmath.Ray, hit HitRecord, rng *rand.Rand) (ScatterResult, bool) {
	direction := hit.Normal.Add(sampling.OnUnitSphere(rng)).Normalize()
	scattered := vecmath.NewRay(hit.Point, direction)

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: d.Albedo,
	}, true
}
