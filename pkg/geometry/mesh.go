package geometry

import (
	"math/rand"

	"github.com/elyse-vance/lumen/pkg/core"
	"github.com/elyse-vance/lumen/pkg/material"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// Mesh is a group of triangles sharing a single material, organized
// into its own BVH so a mesh is hit-testable in O(log n) average
// instead of the linear scan a flat triangle list would require.
type Mesh struct {
	Material  material.Material
	triangles []*Triangle
	bvh       *core.BVH
}

// NewMesh builds a mesh from its triangles. rng drives the BVH's
// random split-axis choice at construction time only; it has no
// bearing on rendering, which happens after the mesh is built.
func NewMesh(triangles []*Triangle, mat material.Material, rng *rand.Rand) *Mesh {
	objects := make([]core.Hittable, len(triangles))
	for i, tri := range triangles {
		objects[i] = tri
	}

	return &Mesh{
		Material:  mat,
		triangles: triangles,
		bvh:       core.NewBVH(objects, rng),
	}
}

// Hit delegates to the internal BVH, then overwrites the returned
// hit's material with the mesh's own — individual triangles carry
// whatever placeholder material they were built with, but the mesh is
// the single source of truth for shading.
func (m *Mesh) Hit(ray vecmath.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	rec, ok := m.bvh.Hit(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	rec.Material = m.Material
	return rec, true
}

// BoundingBox returns the bounds of the internal BVH.
func (m *Mesh) BoundingBox() core.AABB {
	return m.bvh.BoundingBox()
}

// TriangleCount reports how many triangles make up the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}
