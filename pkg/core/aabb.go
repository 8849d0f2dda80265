package core

import (
	"math"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// AABB is an axis-aligned bounding box used by the BVH to cull rays
// before falling through to per-primitive intersection tests.
type AABB struct {
	Min vecmath.Vec3
	Max vecmath.Vec3
}

// NewAABB builds an AABB from explicit min/max corners.
func NewAABB(min, max vecmath.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints returns the tightest AABB containing every point.
func NewAABBFromPoints(points ...vecmath.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)

		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}

	return AABB{Min: min, Max: max}
}

// Hit runs the slab test: the ray hits the box iff the intersection of
// its per-axis entry/exit intervals is non-empty within [tMin, tMax].
func (aabb AABB) Hit(ray vecmath.Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		var min, max, origin, direction float64

		switch axis {
		case 0:
			min, max = aabb.Min.X, aabb.Max.X
			origin, direction = ray.Origin.X, ray.Direction.X
		case 1:
			min, max = aabb.Min.Y, aabb.Max.Y
			origin, direction = ray.Origin.Y, ray.Direction.Y
		case 2:
			min, max = aabb.Min.Z, aabb.Max.Z
			origin, direction = ray.Origin.Z, ray.Direction.Z
		}

		if math.Abs(direction) < 1e-8 {
			if origin < min || origin > max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection

		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)

		if tMin > tMax {
			return false
		}
	}

	return true
}

// Union returns the smallest AABB containing both boxes.
func (aabb AABB) Union(other AABB) AABB {
	min := vecmath.New(
		math.Min(aabb.Min.X, other.Min.X),
		math.Min(aabb.Min.Y, other.Min.Y),
		math.Min(aabb.Min.Z, other.Min.Z),
	)
	max := vecmath.New(
		math.Max(aabb.Max.X, other.Max.X),
		math.Max(aabb.Max.Y, other.Max.Y),
		math.Max(aabb.Max.Z, other.Max.Z),
	)
	return AABB{Min: min, Max: max}
}

// Center returns the midpoint of the box.
func (aabb AABB) Center() vecmath.Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the extent of the box along each axis.
func (aabb AABB) Size() vecmath.Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// IsValid reports whether min <= max on every axis.
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// LowerBound returns the box's minimum corner coordinate along axis.
func (aabb AABB) LowerBound(axis int) float64 {
	switch axis {
	case 0:
		return aabb.Min.X
	case 1:
		return aabb.Min.Y
	default:
		return aabb.Min.Z
	}
}
