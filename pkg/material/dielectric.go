package material

import (
	"math"
	"math/rand"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// Dielectric is a refracting, non-conductive material such as glass.
// The surrounding medium is always assumed to be vacuum (IOR = 1); a
// hollow shell is modeled with a pair of spheres rather than a medium
// stack.
type Dielectric struct {
	Albedo vecmath.Vec3
	IOR    float64 // index of refraction, > 0
}

// NewDielectric creates a dielectric material.
func NewDielectric(albedo vecmath.Vec3, ior float64) *Dielectric {
	return &Dielectric{Albedo: albedo, IOR: ior}
}

// Scatter implements Material for glass: reflect or refract depending
// on total internal reflection and a Schlick-weighted coin flip.
func (d *Dielectric) Scatter(rayIn vecmath.Ray, hit HitRecord, rng *rand.Rand) (ScatterResult, bool) {
	const vacuumIOR = 1.0

	var iorIn, iorOut float64
	if hit.FrontFace {
		iorIn, iorOut = vacuumIOR, d.IOR
	} else {
		iorIn, iorOut = d.IOR, vacuumIOR
	}
	eta := iorIn / iorOut

	unitDir := rayIn.Direction.Normalize()
	cosTheta := math.Min(1, unitDir.Negate().Dot(hit.Normal))
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)

	cannotRefract := eta*sinTheta > 1
	var direction vecmath.Vec3
	if cannotRefract || Schlick(cosTheta, iorIn, iorOut) > rng.Float64() {
		direction = vecmath.Reflect(unitDir, hit.Normal)
	} else {
		direction = Refract(unitDir, hit.Normal, eta)
	}

	scattered := vecmath.NewRay(hit.Point, direction)

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: d.Albedo,
	}, true
}

// Schlick approximates the Fresnel reflectance at the given cosine of
// the incidence angle.
func Schlick(cosTheta, iorIn, iorOut float64) float64 {
	r0 := (iorIn - iorOut) / (iorIn + iorOut)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosTheta, 5)
}

// Refract applies Snell's law to a unit incoming direction d about an
// outward normal n with ratio eta = ior_in/ior_out.
func Refract(d, n vecmath.Vec3, eta float64) vecmath.Vec3 {
	cos := math.Min(1, n.Dot(d.Negate()))
	rPerp := d.Add(n.Multiply(cos)).Multiply(eta)
	rParallel := n.Multiply(-math.Sqrt(math.Abs(1 - rPerp.LengthSquared())))
	return rPerp.Add(rParallel)
}
