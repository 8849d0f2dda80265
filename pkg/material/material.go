// Package material implements the BSDF/emission contract and the five
// material variants: Normal, Diffuse, Metallic, Dielectric, and
// Emissive.
package material

import (
	"math/rand"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// HitRecord describes one successful intersection and is returned by a
// primitive's Hit. T is the ray parameter of the hit; composites pass
// the closest T found so far as the next child's tMax, and a primitive
// only accepts a candidate root that lies strictly within (tMin, tMax).
type HitRecord struct {
	T         float64
	Point     vecmath.Vec3
	Normal    vecmath.Vec3
	FrontFace bool
	Material  Material
}

// SetFaceNormal orients the stored normal against the ray direction
// and records whether the ray hit the front (outward-facing) side.
func (h *HitRecord) SetFaceNormal(ray vecmath.Ray, outwardNormal vecmath.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// ScatterResult is the outcome of a material scattering a ray.
type ScatterResult struct {
	Scattered   vecmath.Ray
	Attenuation vecmath.Vec3
}

// Material is implemented by every surface shading model. Scatter
// returns the new ray and its color attenuation; the bool reports
// whether the ray continues (false terminates the path, as for
// emissive materials or an absorbed metallic bounce).
type Material interface {
	Scatter(rayIn vecmath.Ray, hit HitRecord, rng *rand.Rand) (ScatterResult, bool)
}

// Emitter is implemented by materials that emit radiance. Emissive is
// the only emitting variant, but the interface keeps the tracer's
// dispatch symmetric with Material.
type Emitter interface {
	Emit() vecmath.Vec3
}
