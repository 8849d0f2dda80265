// Package scenefmt parses the textual scene descriptor: a
// line-oriented grammar of `[header]` blocks and `key = value`
// fields, producing a fully built core.Scene (camera and BVH already
// constructed) or a location-bearing ParseError.
package scenefmt

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/elyse-vance/lumen/pkg/camera"
	"github.com/elyse-vance/lumen/pkg/core"
	"github.com/elyse-vance/lumen/pkg/geometry"
	"github.com/elyse-vance/lumen/pkg/material"
	"github.com/elyse-vance/lumen/pkg/objloader"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// ParseError locates a malformed line in a scene descriptor.
type ParseError struct {
	Filename string
	Line     int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, e.Message)
}

// field is a key=value pair remembered alongside the line it came
// from, so an unrecognized key can be reported precisely.
type field struct {
	value string
	line  int
}

// block accumulates the fields of one [header] section.
type block struct {
	header string
	fields map[string]field
}

// SceneSource is the scene-loading collaborator contract: something
// that can turn an external representation into a fully built Scene.
type SceneSource interface {
	Load(filename string) (*core.Scene, error)
}

// TextSource loads the line-oriented textual scene descriptor. Rng
// seeds the scene's top-level BVH construction (random split axes).
type TextSource struct {
	Rng *rand.Rand
}

// Load reads filename from disk and parses it.
func (s TextSource) Load(filename string) (*core.Scene, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("scenefmt: opening %s: %w", filename, err)
	}
	defer f.Close()
	rng := s.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return Parse(f, filename, rng)
}

// Parse reads a scene descriptor from r and returns the built Scene.
func Parse(r io.Reader, filename string, rng *rand.Rand) (*core.Scene, error) {
	blocks, err := splitBlocks(r, filename)
	if err != nil {
		return nil, err
	}

	var camConfig *camera.Config
	var camHeight int
	var objects []core.Hittable

	for _, b := range blocks {
		switch b.header {
		case "camera":
			cfg, height, err := parseCamera(b, filename)
			if err != nil {
				return nil, err
			}
			camConfig = cfg
			camHeight = height
		case "sphere":
			sphere, err := parseSphere(b, filename)
			if err != nil {
				return nil, err
			}
			objects = append(objects, sphere)
		case "mesh":
			mesh, err := parseMesh(b, filename, rng)
			if err != nil {
				return nil, err
			}
			objects = append(objects, mesh)
		default:
			return nil, &ParseError{filename, 0, fmt.Sprintf("unrecognized header [%s]", b.header)}
		}
	}

	if camConfig == nil {
		return nil, fmt.Errorf("scenefmt: %s: scene has no [camera] block", filename)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("scenefmt: %s: scene has no objects to build a BVH from", filename)
	}

	cam := camera.NewCamera(*camConfig)
	return &core.Scene{
		Camera: cam,
		Root:   core.NewBVH(objects, rng),
		Width:  camConfig.Width,
		Height: camHeight,
	}, nil
}

// splitBlocks groups the trimmed, non-blank lines of r into the
// sequence of [header] blocks that contain them.
func splitBlocks(r io.Reader, filename string) ([]block, error) {
	var blocks []block
	var current *block

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, &ParseError{filename, lineNo, fmt.Sprintf("malformed header %q", line)}
			}
			if current != nil {
				blocks = append(blocks, *current)
			}
			current = &block{header: strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"), fields: map[string]field{}}
			continue
		}

		if current == nil {
			return nil, &ParseError{filename, lineNo, "key=value line before any [header]"}
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			return nil, &ParseError{filename, lineNo, fmt.Sprintf("expected key = value, got %q", line)}
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		current.fields[key] = field{value: value, line: lineNo}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scenefmt: reading %s: %w", filename, err)
	}
	if current != nil {
		blocks = append(blocks, *current)
	}
	return blocks, nil
}

func parseVec3(s string) (vecmath.Vec3, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 3 {
		return vecmath.Vec3{}, fmt.Errorf("expected x; y; z, got %q", s)
	}
	x, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	z, err3 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return vecmath.Vec3{}, fmt.Errorf("malformed vector component in %q", s)
	}
	return vecmath.New(x, y, z), nil
}

// cameraKeys are the only fields recognized inside [camera].
var cameraKeys = map[string]bool{
	"width": true, "height": true, "position": true, "target": true,
	"fov": true, "depth_of_field": true, "aperture_size": true,
}

func parseCamera(b block, filename string) (*camera.Config, int, error) {
	for key, f := range b.fields {
		if !cameraKeys[key] {
			return nil, 0, &ParseError{filename, f.line, fmt.Sprintf("unrecognized camera key %q", key)}
		}
	}

	width, height := 400, 225
	if f, ok := b.fields["width"]; ok {
		v, err := strconv.Atoi(f.value)
		if err != nil {
			return nil, 0, &ParseError{filename, f.line, fmt.Sprintf("invalid width %q", f.value)}
		}
		width = v
	}
	if f, ok := b.fields["height"]; ok {
		v, err := strconv.Atoi(f.value)
		if err != nil {
			return nil, 0, &ParseError{filename, f.line, fmt.Sprintf("invalid height %q", f.value)}
		}
		height = v
	}

	position := vecmath.New(0, 0, 0)
	if f, ok := b.fields["position"]; ok {
		v, err := parseVec3(f.value)
		if err != nil {
			return nil, 0, &ParseError{filename, f.line, err.Error()}
		}
		position = v
	}
	target := vecmath.New(0, 0, -1)
	if f, ok := b.fields["target"]; ok {
		v, err := parseVec3(f.value)
		if err != nil {
			return nil, 0, &ParseError{filename, f.line, err.Error()}
		}
		target = v
	}

	fov := 90.0
	if f, ok := b.fields["fov"]; ok {
		v, err := strconv.ParseFloat(f.value, 64)
		if err != nil {
			return nil, 0, &ParseError{filename, f.line, fmt.Sprintf("invalid fov %q", f.value)}
		}
		fov = v
	}

	depthOfField := 1.0
	if f, ok := b.fields["depth_of_field"]; ok {
		v, err := strconv.ParseFloat(f.value, 64)
		if err != nil {
			return nil, 0, &ParseError{filename, f.line, fmt.Sprintf("invalid depth_of_field %q", f.value)}
		}
		depthOfField = v
	}
	apertureSize := 0.0
	if f, ok := b.fields["aperture_size"]; ok {
		v, err := strconv.ParseFloat(f.value, 64)
		if err != nil {
			return nil, 0, &ParseError{filename, f.line, fmt.Sprintf("invalid aperture_size %q", f.value)}
		}
		apertureSize = v
	}

	return &camera.Config{
		Center:        position,
		LookAt:        target,
		Width:         width,
		AspectRatio:   float64(width) / float64(height),
		VFov:          fov,
		Aperture:      apertureSize,
		FocusDistance: depthOfField,
	}, height, nil
}

// materialKeys lists the companion keys recognized for each
// material_type. A key outside this set (for the type in use) fails
// closed with a parse error.
var materialKeys = map[string]map[string]bool{
	"diffuse_material":    {"albedo": true},
	"metallic_material":   {"albedo": true, "roughness": true},
	"emissive_material":   {"emission_color": true, "strength": true},
	"dielectric_material": {"albedo": true, "ior": true},
}

func parseMaterial(b block, filename string, ownKeys map[string]bool) (material.Material, error) {
	typeField, ok := b.fields["material_type"]
	if !ok {
		return nil, &ParseError{filename, 0, fmt.Sprintf("[%s] block is missing material_type", b.header)}
	}
	allowed, ok := materialKeys[typeField.value]
	if !ok {
		return nil, &ParseError{filename, typeField.line, fmt.Sprintf("unrecognized material_type %q", typeField.value)}
	}

	for key, f := range b.fields {
		if key == "material_type" || ownKeys[key] {
			continue
		}
		if !allowed[key] {
			return nil, &ParseError{filename, f.line, fmt.Sprintf("key %q is not valid for material_type %q", key, typeField.value)}
		}
	}

	switch typeField.value {
	case "diffuse_material":
		albedo, err := requireVec3(b, "albedo", filename)
		if err != nil {
			return nil, err
		}
		return material.NewDiffuse(albedo), nil
	case "metallic_material":
		albedo, err := requireVec3(b, "albedo", filename)
		if err != nil {
			return nil, err
		}
		roughness := 0.0
		if f, ok := b.fields["roughness"]; ok {
			v, err := strconv.ParseFloat(f.value, 64)
			if err != nil {
				return nil, &ParseError{filename, f.line, fmt.Sprintf("invalid roughness %q", f.value)}
			}
			roughness = v
		}
		return material.NewMetallic(albedo, roughness), nil
	case "emissive_material":
		emission, err := requireVec3(b, "emission_color", filename)
		if err != nil {
			return nil, err
		}
		strength := 1.0
		if f, ok := b.fields["strength"]; ok {
			v, err := strconv.ParseFloat(f.value, 64)
			if err != nil {
				return nil, &ParseError{filename, f.line, fmt.Sprintf("invalid strength %q", f.value)}
			}
			strength = v
		}
		return material.NewEmissive(emission, strength), nil
	case "dielectric_material":
		albedo, err := requireVec3(b, "albedo", filename)
		if err != nil {
			return nil, err
		}
		ior := 1.5
		if f, ok := b.fields["ior"]; ok {
			v, err := strconv.ParseFloat(f.value, 64)
			if err != nil {
				return nil, &ParseError{filename, f.line, fmt.Sprintf("invalid ior %q", f.value)}
			}
			ior = v
		}
		return material.NewDielectric(albedo, ior), nil
	default:
		panic("unreachable: material_type already validated")
	}
}

func requireVec3(b block, key, filename string) (vecmath.Vec3, error) {
	f, ok := b.fields[key]
	if !ok {
		return vecmath.Vec3{}, &ParseError{filename, 0, fmt.Sprintf("[%s] block is missing required key %q", b.header, key)}
	}
	v, err := parseVec3(f.value)
	if err != nil {
		return vecmath.Vec3{}, &ParseError{filename, f.line, err.Error()}
	}
	return v, nil
}

func parseSphere(b block, filename string) (*geometry.Sphere, error) {
	posField, ok := b.fields["pos"]
	if !ok {
		return nil, &ParseError{filename, 0, "[sphere] block is missing required key \"pos\""}
	}
	pos, err := parseVec3(posField.value)
	if err != nil {
		return nil, &ParseError{filename, posField.line, err.Error()}
	}

	radiusField, ok := b.fields["radius"]
	if !ok {
		return nil, &ParseError{filename, 0, "[sphere] block is missing required key \"radius\""}
	}
	radius, err := strconv.ParseFloat(radiusField.value, 64)
	if err != nil {
		return nil, &ParseError{filename, radiusField.line, fmt.Sprintf("invalid radius %q", radiusField.value)}
	}

	mat, err := parseMaterial(b, filename, map[string]bool{"pos": true, "radius": true})
	if err != nil {
		return nil, err
	}

	return geometry.NewSphere(pos, radius, mat), nil
}

func parseMesh(b block, filename string, rng *rand.Rand) (*geometry.Mesh, error) {
	meshFileField, ok := b.fields["mesh_file"]
	if !ok {
		return nil, &ParseError{filename, 0, "[mesh] block is missing required key \"mesh_file\""}
	}

	triangles, err := objloader.LoadFile(meshFileField.value)
	if err != nil {
		return nil, err
	}

	mat, err := parseMaterial(b, filename, map[string]bool{"mesh_file": true})
	if err != nil {
		return nil, err
	}

	return geometry.NewMesh(triangles, mat, rng), nil
}
