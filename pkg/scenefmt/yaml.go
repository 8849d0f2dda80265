package scenefmt

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elyse-vance/lumen/pkg/camera"
	"github.com/elyse-vance/lumen/pkg/core"
	"github.com/elyse-vance/lumen/pkg/geometry"
	"github.com/elyse-vance/lumen/pkg/material"
	"github.com/elyse-vance/lumen/pkg/objloader"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// YAMLSource is a supplementary SceneSource alongside TextSource,
// describing the same scene shape (one camera, spheres, meshes) as a
// structured document instead of the line-oriented grammar.
type YAMLSource struct {
	Rng *rand.Rand
}

type yamlDoc struct {
	Camera  yamlCamera   `yaml:"camera"`
	Spheres []yamlSphere `yaml:"spheres"`
	Meshes  []yamlMesh   `yaml:"meshes"`
}

type yamlCamera struct {
	Width        int        `yaml:"width"`
	Height       int        `yaml:"height"`
	Position     [3]float64 `yaml:"position"`
	Target       [3]float64 `yaml:"target"`
	Fov          float64    `yaml:"fov"`
	DepthOfField float64    `yaml:"depth_of_field"`
	ApertureSize float64    `yaml:"aperture_size"`
}

type yamlMaterial struct {
	Type          string     `yaml:"type"`
	Albedo        [3]float64 `yaml:"albedo"`
	Roughness     float64    `yaml:"roughness"`
	IOR           float64    `yaml:"ior"`
	EmissionColor [3]float64 `yaml:"emission_color"`
	Strength      float64    `yaml:"strength"`
}

type yamlSphere struct {
	Pos      [3]float64   `yaml:"pos"`
	Radius   float64      `yaml:"radius"`
	Material yamlMaterial `yaml:"material"`
}

type yamlMesh struct {
	MeshFile string       `yaml:"mesh_file"`
	Material yamlMaterial `yaml:"material"`
}

// Load reads filename as YAML and builds a Scene from it.
func (s YAMLSource) Load(filename string) (*core.Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("scenefmt: opening %s: %w", filename, err)
	}

	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scenefmt: %s: %w", filename, err)
	}

	rng := s.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	if doc.Camera.Width == 0 {
		doc.Camera.Width = 400
	}
	if doc.Camera.Height == 0 {
		doc.Camera.Height = 225
	}
	if doc.Camera.Fov == 0 {
		doc.Camera.Fov = 90
	}
	if doc.Camera.DepthOfField == 0 {
		doc.Camera.DepthOfField = 1.0
	}

	camConfig := camera.Config{
		Center:        toVec3(doc.Camera.Position),
		LookAt:        toVec3(doc.Camera.Target),
		Width:         doc.Camera.Width,
		AspectRatio:   float64(doc.Camera.Width) / float64(doc.Camera.Height),
		VFov:          doc.Camera.Fov,
		Aperture:      doc.Camera.ApertureSize,
		FocusDistance: doc.Camera.DepthOfField,
	}

	var objects []core.Hittable
	for i, sp := range doc.Spheres {
		mat, err := yamlBuildMaterial(sp.Material)
		if err != nil {
			return nil, fmt.Errorf("scenefmt: %s: sphere %d: %w", filename, i, err)
		}
		objects = append(objects, geometry.NewSphere(toVec3(sp.Pos), sp.Radius, mat))
	}
	for i, m := range doc.Meshes {
		mat, err := yamlBuildMaterial(m.Material)
		if err != nil {
			return nil, fmt.Errorf("scenefmt: %s: mesh %d: %w", filename, i, err)
		}
		triangles, err := objloader.LoadFile(m.MeshFile)
		if err != nil {
			return nil, err
		}
		objects = append(objects, geometry.NewMesh(triangles, mat, rng))
	}

	if len(objects) == 0 {
		return nil, fmt.Errorf("scenefmt: %s: scene has no objects to build a BVH from", filename)
	}

	return &core.Scene{
		Camera: camera.NewCamera(camConfig),
		Root:   core.NewBVH(objects, rng),
		Width:  camConfig.Width,
		Height: doc.Camera.Height,
	}, nil
}

func toVec3(v [3]float64) vecmath.Vec3 {
	return vecmath.New(v[0], v[1], v[2])
}

func yamlBuildMaterial(m yamlMaterial) (material.Material, error) {
	switch m.Type {
	case "diffuse_material":
		return material.NewDiffuse(toVec3(m.Albedo)), nil
	case "metallic_material":
		return material.NewMetallic(toVec3(m.Albedo), m.Roughness), nil
	case "emissive_material":
		strength := m.Strength
		if strength == 0 {
			strength = 1.0
		}
		return material.NewEmissive(toVec3(m.EmissionColor), strength), nil
	case "dielectric_material":
		ior := m.IOR
		if ior == 0 {
			ior = 1.5
		}
		return material.NewDielectric(toVec3(m.Albedo), ior), nil
	default:
		return nil, fmt.Errorf("unrecognized material type %q", m.Type)
	}
}
