package image

import (
	"math"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// Average returns the filter c -> c/n. n is typically the
// authoritative sample count at the time of the snapshot; applying it
// to a raw sum produces the sample mean.
func Average(n int) func(vecmath.Vec3) vecmath.Vec3 {
	inv := 1.0 / float64(n)
	return func(c vecmath.Vec3) vecmath.Vec3 {
		return c.Multiply(inv)
	}
}

// Gamma returns the filter c -> (c.x^(1/g), c.y^(1/g), c.z^(1/g)).
func Gamma(g float64) func(vecmath.Vec3) vecmath.Vec3 {
	inv := 1.0 / g
	return func(c vecmath.Vec3) vecmath.Vec3 {
		return vecmath.New(
			math.Pow(c.X, inv),
			math.Pow(c.Y, inv),
			math.Pow(c.Z, inv),
		)
	}
}
