package geometry

import (
	"math/rand"
	"testing"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

func quadTriangles() []*Triangle {
	v0 := vecmath.New(0, 0, 0)
	v1 := vecmath.New(1, 0, 0)
	v2 := vecmath.New(1, 1, 0)
	v3 := vecmath.New(0, 1, 0)
	return []*Triangle{
		NewTriangle(v0, v1, v2, dummyMaterial{}),
		NewTriangle(v0, v2, v3, dummyMaterial{}),
	}
}

func TestMeshHitAndBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	mesh := NewMesh(quadTriangles(), dummyMaterial{}, rng)

	if mesh.TriangleCount() != 2 {
		t.Errorf("TriangleCount() = %d, want 2", mesh.TriangleCount())
	}

	box := mesh.BoundingBox()
	wantMin := vecmath.New(0, 0, 0)
	wantMax := vecmath.New(1, 1, 0)
	if box.Min.Subtract(wantMin).Length() > 1e-9 || box.Max.Subtract(wantMax).Length() > 1e-9 {
		t.Errorf("bounds = [%v, %v], want [%v, %v]", box.Min, box.Max, wantMin, wantMax)
	}

	ray := vecmath.NewRay(vecmath.New(0.5, 0.5, -1), vecmath.New(0, 0, 1))
	hit, ok := mesh.Hit(ray, 0.001, 10.0)
	if !ok {
		t.Fatal("expected hit on quad center")
	}
	if hit.Material != mesh.Material {
		t.Error("hit material should be overwritten with the mesh's own material")
	}
}

func TestMeshMiss(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	mesh := NewMesh(quadTriangles(), dummyMaterial{}, rng)

	ray := vecmath.NewRay(vecmath.New(5, 5, -1), vecmath.New(0, 0, 1))
	if _, ok := mesh.Hit(ray, 0.001, 10.0); ok {
		t.Error("expected miss outside the quad")
	}
}

func TestMeshSingleTriangleDegenerateBVH(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tri := NewTriangle(vecmath.New(0, 0, 0), vecmath.New(1, 0, 0), vecmath.New(0, 1, 0), dummyMaterial{})
	mesh := NewMesh([]*Triangle{tri}, dummyMaterial{}, rng)

	ray := vecmath.NewRay(vecmath.New(0.2, 0.2, -1), vecmath.New(0, 0, 1))
	if _, ok := mesh.Hit(ray, 0.001, 10.0); !ok {
		t.Error("expected hit on single-triangle mesh")
	}
}
