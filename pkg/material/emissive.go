package material

import (
	"math/rand"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// Emissive is a terminal light source: it never scatters, only emits.
type Emissive struct {
	EmissionColor vecmath.Vec3
	Strength      float64 // >= 0
}

// NewEmissive creates an emissive material.
func NewEmissive(emissionColor vecmath.Vec3, strength float64) *Emissive {
	return &Emissive{EmissionColor: emissionColor, Strength: strength}
}

// Scatter never succeeds for an emissive material: it is terminal.
func (e *Emissive) Scatter(rayIn vecmath.Ray, hit HitRecord, rng *rand.Rand) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit returns the emission color scaled by strength.
func (e *Emissive) Emit() vecmath.Vec3 {
	return e.EmissionColor.Multiply(e.Strength)
}
