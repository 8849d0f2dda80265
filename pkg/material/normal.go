package material

import (
	"math/rand"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// Normal is a debug material that shades by the geometric normal
// rather than doing any light transport. The tracer special-cases it
// before calling Scatter (there is nothing to bounce).
type Normal struct{}

// NewNormal creates a normal-debug material.
func NewNormal() *Normal {
	return &Normal{}
}

// Shade returns the debug color 0.5*normal + (0.5,0.5,0.5).
func (n *Normal) Shade(normal vecmath.Vec3) vecmath.Vec3 {
	return normal.Multiply(0.5).Add(vecmath.New(0.5, 0.5, 0.5))
}

// Scatter is never invoked for Normal (it is a terminal debug case),
// but is implemented to satisfy the Material interface.
func (n *Normal) Scatter(rayIn vecmath.Ray, hit HitRecord, rng *rand.Rand) (ScatterResult, bool) {
	return ScatterResult{}, false
}
