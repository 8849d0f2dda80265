// Package camera implements the thin-lens camera: a fixed world-space
// basis built once from a small set of framing parameters, producing
// jittered primary rays for depth-of-field sampling.
package camera

import (
	"math"
	"math/rand"

	"github.com/elyse-vance/lumen/pkg/sampling"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// Config describes a camera in terms a scene author would specify it.
// Up is fixed at +Y; there is no roll.
type Config struct {
	Center        vecmath.Vec3
	LookAt        vecmath.Vec3
	Width         int
	AspectRatio   float64
	VFov          float64 // vertical field of view, degrees
	Aperture      float64 // lens diameter; 0 disables depth of field
	FocusDistance float64
}

// Camera holds the precomputed world-space basis and viewport extents
// used to generate every primary ray. Immutable after construction and
// safe to share across render workers.
type Camera struct {
	origin           vecmath.Vec3
	lowerLeftCorner  vecmath.Vec3
	widthWorldSpace  vecmath.Vec3
	heightWorldSpace vecmath.Vec3
	lensRadius       float64
	u, v, w          vecmath.Vec3
}

// NewCamera builds a camera from config, deriving the right-handed
// (u, v, w) basis from pos/target/up and the world-space viewport
// extents scaled by focus distance.
func NewCamera(config Config) *Camera {
	halfHeight := math.Tan(config.VFov * math.Pi / 360.0)
	imageHeight := halfHeight * 2.0
	imageWidth := config.AspectRatio * imageHeight

	up := vecmath.New(0, 1, 0)

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	focus := config.FocusDistance
	if focus <= 0 {
		focus = 1.0
	}

	widthWS := u.Multiply(focus * imageWidth)
	heightWS := v.Multiply(focus * imageHeight)
	lowerLeft := config.Center.
		Subtract(widthWS.Multiply(0.5)).
		Subtract(heightWS.Multiply(0.5)).
		Subtract(w.Multiply(focus))

	return &Camera{
		origin:           config.Center,
		lowerLeftCorner:  lowerLeft,
		widthWorldSpace:  widthWS,
		heightWorldSpace: heightWS,
		lensRadius:       config.Aperture / 2.0,
		u:                u,
		v:                v,
		w:                w,
	}
}

// GetRay produces a jittered primary ray through pixel-normalized
// coordinates (s, t) in [0,1]^2, sampling the lens disk for
// depth-of-field when the aperture is non-zero.
func (c *Camera) GetRay(s, t float64, rng *rand.Rand) vecmath.Ray {
	rd := sampling.InUnitDisk(rng).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	origin := c.origin.Add(offset)
	target := c.lowerLeftCorner.
		Add(c.widthWorldSpace.Multiply(s)).
		Add(c.heightWorldSpace.Multiply(t))
	direction := target.Subtract(origin).Normalize()

	return vecmath.NewRay(origin, direction)
}

// Forward returns the camera's viewing direction (−w, since w points
// from target back toward the eye).
func (c *Camera) Forward() vecmath.Vec3 {
	return c.w.Negate()
}
