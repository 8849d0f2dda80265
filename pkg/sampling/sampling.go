// Package sampling provides the rejection-sampling RNG helpers used by
// the diffuse/metallic/dielectric materials and the thin-lens camera.
package sampling

import (
	"math/rand"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// InUnitSphere rejection-samples the cube [-1,1]^3, accepting the
// first point whose squared length is below 1. The loop terminates
// with probability 1 (the sphere occupies ~52% of the cube's volume).
func InUnitSphere(rng *rand.Rand) vecmath.Vec3 {
	for {
		v := vecmath.New(
			rng.Float64()*2-1,
			rng.Float64()*2-1,
			rng.Float64()*2-1,
		)
		if v.LengthSquared() < 1 {
			return v
		}
	}
}

// OnUnitSphere returns a uniformly-distributed point on the surface of
// the unit sphere, by normalizing a rejection-sampled interior point.
func OnUnitSphere(rng *rand.Rand) vecmath.Vec3 {
	return InUnitSphere(rng).Normalize()
}

// InUnitDisk rejection-samples the square [-1,1]^2 in the xy-plane
// (z=0), accepting the first point whose squared length is below 1.
func InUnitDisk(rng *rand.Rand) vecmath.Vec3 {
	for {
		v := vecmath.New(rng.Float64()*2-1, rng.Float64()*2-1, 0)
		if v.LengthSquared() < 1 {
			return v
		}
	}
}
