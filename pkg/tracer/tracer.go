// Package tracer implements the recursive Monte-Carlo radiance
// estimator at the heart of the renderer: trace a ray into the scene,
// dispatch on whatever material it hit, and recurse into the bounce.
package tracer

import (
	"math"
	"math/rand"

	"github.com/elyse-vance/lumen/pkg/core"
	"github.com/elyse-vance/lumen/pkg/material"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// selfIntersectionBias keeps a bounced ray from immediately re-hitting
// the surface it left due to floating point error.
const selfIntersectionBias = 1e-4

var (
	skyHorizon = vecmath.New(1.0, 1.0, 1.0)
	skyZenith  = vecmath.New(0.5, 0.7, 1.0)
)

// DefaultAmbientScale is the ambientScale that renders the sky
// gradient normally. Callers that want every ray miss to return black
// (scenes lit only by emissive geometry) pass 0 instead.
const DefaultAmbientScale = 1.0

// Trace estimates the incoming radiance along ray by recursively
// bouncing it through root up to maxDepth times. depth == 0 terminates
// the recursion with black, bounding worst-case path length.
func Trace(ray vecmath.Ray, root core.Hittable, depth int, rng *rand.Rand, ambientScale float64) vecmath.Vec3 {
	if depth == 0 {
		return vecmath.Vec3{}
	}

	hit, ok := root.Hit(ray, selfIntersectionBias, math.Inf(1))
	if !ok {
		return background(ray).Multiply(ambientScale)
	}

	switch m := hit.Material.(type) {
	case *material.Normal:
		return m.Shade(hit.Normal)
	case material.Emitter:
		return m.Emit()
	default:
		result, scattered := hit.Material.Scatter(ray, *hit, rng)
		if !scattered {
			return vecmath.Vec3{}
		}
		incoming := Trace(result.Scattered, root, depth-1, rng, ambientScale)
		return result.Attenuation.MultiplyVec(incoming)
	}
}

// background is the vertical sky gradient sampled when a ray escapes
// the scene without hitting anything: white straight down, shading
// linearly with the direction's Y component to blue straight up.
func background(ray vecmath.Ray) vecmath.Vec3 {
	t := 0.5 * (ray.Direction.Y + 1.0)
	return vecmath.Lerp(t, skyHorizon, skyZenith)
}
