package objloader

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/elyse-vance/lumen/pkg/geometry"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// LoadGLTF reads every mesh primitive in a glTF/GLB document at path
// and flattens them into a single triangle list, the same contract
// LoadFile gives the OBJ subset parser. Non-triangle primitive modes
// are skipped.
func LoadGLTF(path string) ([]*geometry.Triangle, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("objloader: opening %s: %w", path, err)
	}

	var triangles []*geometry.Triangle
	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			tris, err := loadGLTFPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("objloader: %s mesh %d primitive %d: %w", path, mi, pi, err)
			}
			triangles = append(triangles, tris...)
		}
	}
	return triangles, nil
}

func loadGLTFPrimitive(doc *gltf.Document, prim *gltf.Primitive) ([]*geometry.Triangle, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("triangle-list index count %d is not a multiple of 3", len(indices))
	}

	verts := make([]vecmath.Vec3, len(positions))
	for i, p := range positions {
		verts[i] = vecmath.New(float64(p[0]), float64(p[1]), float64(p[2]))
	}
	haveNormals := len(normals) == len(positions) && len(normals) > 0
	vertNormals := make([]vecmath.Vec3, len(normals))
	for i, n := range normals {
		vertNormals[i] = vecmath.New(float64(n[0]), float64(n[1]), float64(n[2]))
	}

	triangles := make([]*geometry.Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if haveNormals {
			triangles = append(triangles, geometry.NewTriangleWithNormals(
				verts[a], verts[b], verts[c],
				vertNormals[a], vertNormals[b], vertNormals[c],
				nil,
			))
		} else {
			triangles = append(triangles, geometry.NewTriangle(verts[a], verts[b], verts[c], nil))
		}
	}
	return triangles, nil
}
