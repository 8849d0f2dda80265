package core

import (
	"math/rand"
	"sort"

	"github.com/elyse-vance/lumen/pkg/material"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// BVHNode is an internal node of the bounding volume hierarchy: its
// bounds are the union of its two children's bounds, and it is itself
// a Hittable so traversal recurses uniformly.
type BVHNode struct {
	Bounds AABB
	Left   Hittable
	Right  Hittable
}

// Hit tests the node's bounding box first; on a box hit it tries the
// left child, then the right, narrowing tMax to the closest hit found
// so far so the later child can only override on a strictly closer
// intersection. Both children are always consulted when the box is hit.
func (n *BVHNode) Hit(ray vecmath.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !n.Bounds.Hit(ray, tMin, tMax) {
		return nil, false
	}

	var closest *material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	if rec, ok := n.Left.Hit(ray, tMin, closestSoFar); ok {
		hitAnything = true
		closestSoFar = rec.T
		closest = rec
	}
	if rec, ok := n.Right.Hit(ray, tMin, closestSoFar); ok {
		hitAnything = true
		closestSoFar = rec.T
		closest = rec
	}

	return closest, hitAnything
}

// BoundingBox returns the node's precomputed bounds.
func (n *BVHNode) BoundingBox() AABB {
	return n.Bounds
}

// BVH is a bottom-up bounding volume hierarchy over a fixed set of
// hittables, built once and read concurrently by many render workers.
type BVH struct {
	Root Hittable
}

// NewBVH builds a BVH from objects, choosing a uniformly random split
// axis at every level. rng need not be the same RNG used for path
// tracing; construction happens once, before workers start.
func NewBVH(objects []Hittable, rng *rand.Rand) *BVH {
	if len(objects) == 0 {
		return &BVH{Root: nil}
	}
	return &BVH{Root: build(objects, rng)}
}

// build implements the construction recursion: a singleton list is
// returned as-is (no wrapper node), otherwise the list is sorted by
// lower bound along a randomly chosen axis and split at the midpoint.
func build(objects []Hittable, rng *rand.Rand) Hittable {
	if len(objects) == 1 {
		return objects[0]
	}

	axis := rng.Intn(3)

	sorted := make([]Hittable, len(objects))
	copy(sorted, objects)
	sort.Slice(sorted, func(i, j int) bool {
		li := sorted[i].BoundingBox().LowerBound(axis)
		lj := sorted[j].BoundingBox().LowerBound(axis)
		return totalOrderLess(li, lj)
	})

	mid := len(sorted) / 2
	left := build(sorted[:mid], rng)
	right := build(sorted[mid:], rng)

	return &BVHNode{
		Bounds: left.BoundingBox().Union(right.BoundingBox()),
		Left:   left,
		Right:  right,
	}
}

// totalOrderLess orders floats so that NaNs sort deterministically
// (as greater than every other value) rather than corrupting sort.Slice.
func totalOrderLess(a, b float64) bool {
	if a != a { // a is NaN
		return false
	}
	if b != b { // b is NaN
		return true
	}
	return a < b
}

// Hit tests the ray against the whole tree, or reports a miss
// immediately if the BVH holds no geometry.
func (bvh *BVH) Hit(ray vecmath.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.Root.Hit(ray, tMin, tMax)
}

// BoundingBox returns the bounds of the whole tree.
func (bvh *BVH) BoundingBox() AABB {
	if bvh.Root == nil {
		return AABB{}
	}
	return bvh.Root.BoundingBox()
}
