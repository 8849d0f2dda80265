// Package core provides the acceleration structure and scene-level
// types shared by the geometry, material, and tracer packages: the
// hittable contract, AABBs, the BVH, and the top-level Scene.
package core

import (
	"github.com/elyse-vance/lumen/pkg/material"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// Hittable is the contract every primitive and composite exposes: a
// ray/object intersection test and a tight axis-aligned bounding box.
type Hittable interface {
	// Hit reports whether the ray intersects the object with some
	// t in (tMin, tMax). On a hit it returns a populated HitRecord;
	// on a miss it returns (nil, false).
	Hit(ray vecmath.Ray, tMin, tMax float64) (*material.HitRecord, bool)

	// BoundingBox returns the tight axis-aligned bounds of the object.
	BoundingBox() AABB
}

// HittableList composes a slice of hittables into a single hittable by
// OR-reducing the hit test: every child is tried, and the narrowing
// tMax (the closest hit's T) means later children only override on a
// strictly closer intersection.
type HittableList struct {
	Objects []Hittable
}

// Hit implements Hittable for a plain list composition.
func (l HittableList) Hit(ray vecmath.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, obj := range l.Objects {
		if rec, ok := obj.Hit(ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = rec.T
			closest = rec
		}
	}

	return closest, hitAnything
}

// BoundingBox returns the union of every child's bounds.
func (l HittableList) BoundingBox() AABB {
	if len(l.Objects) == 0 {
		return AABB{}
	}
	box := l.Objects[0].BoundingBox()
	for _, obj := range l.Objects[1:] {
		box = box.Union(obj.BoundingBox())
	}
	return box
}
