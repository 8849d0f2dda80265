package geometry

import (
	"math"

	"github.com/elyse-vance/lumen/pkg/core"
	"github.com/elyse-vance/lumen/pkg/material"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

const triangleEpsilon = 1e-5

// Triangle is defined by three positions, optional per-vertex normals,
// and per-vertex UVs. UVs are carried through the hit record but are
// not consulted by any material in this package.
type Triangle struct {
	V0, V1, V2    vecmath.Vec3
	N0, N1, N2    vecmath.Vec3
	UV0, UV1, UV2 [2]float64
	hasNormals    bool
	Material      material.Material

	faceNormal vecmath.Vec3
	bbox       core.AABB
}

// NewTriangle builds a triangle with a flat face normal derived from
// the winding of (v0, v1, v2).
func NewTriangle(v0, v1, v2 vecmath.Vec3, mat material.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
	t.faceNormal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)
	return t
}

// NewTriangleWithNormals builds a triangle that interpolates the given
// per-vertex normals across its surface (smooth shading), as produced
// by a mesh loader.
func NewTriangleWithNormals(v0, v1, v2, n0, n1, n2 vecmath.Vec3, mat material.Material) *Triangle {
	t := NewTriangle(v0, v1, v2, mat)
	t.N0, t.N1, t.N2 = n0.Normalize(), n1.Normalize(), n2.Normalize()
	t.hasNormals = true
	return t
}

// Hit implements Möller–Trumbore triangle intersection.
func (t *Triangle) Hit(ray vecmath.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	e1 := t.V1.Subtract(t.V0)
	e2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(e2)
	a := e1.Dot(h)
	if math.Abs(a) < triangleEpsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(e1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	root := f * e2.Dot(q)
	if root <= tMin || root >= tMax {
		return nil, false
	}

	point := ray.At(root)

	var outwardNormal vecmath.Vec3
	if t.hasNormals {
		w := 1.0 - u - v
		outwardNormal = t.N0.Multiply(w).Add(t.N1.Multiply(u)).Add(t.N2.Multiply(v)).Normalize()
	} else {
		outwardNormal = t.faceNormal
	}

	rec := &material.HitRecord{
		T:        root,
		Point:    point,
		Material: t.Material,
	}
	rec.SetFaceNormal(ray, outwardNormal)

	return rec, true
}

// BoundingBox returns the cached AABB of the three vertices.
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}
