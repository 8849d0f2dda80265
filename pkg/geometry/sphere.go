package geometry

import (
	"math"

	"github.com/elyse-vance/lumen/pkg/core"
	"github.com/elyse-vance/lumen/pkg/material"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// Sphere is the simplest primitive. Radius may be negative, which
// denotes an inside-out shell (the surface normal flips to point
// inward) used to model hollow dielectrics; the bounding box always
// uses |radius| so it stays valid regardless of sign.
type Sphere struct {
	Center   vecmath.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere builds a sphere with the given center, radius, and material.
func NewSphere(center vecmath.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

// Hit solves |origin + t*dir - center|^2 = r^2, trying the closer
// root first and falling back to the farther root if it lies outside
// (tMin, tMax).
func (s *Sphere) Hit(ray vecmath.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(disc)

	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	rec := &material.HitRecord{
		T:        root,
		Point:    point,
		Material: s.Material,
	}
	rec.SetFaceNormal(ray, outwardNormal)

	return rec, true
}

// BoundingBox returns center +/- |radius| on every axis.
func (s *Sphere) BoundingBox() core.AABB {
	r := math.Abs(s.Radius)
	extent := vecmath.New(r, r, r)
	return core.NewAABB(s.Center.Subtract(extent), s.Center.Add(extent))
}
