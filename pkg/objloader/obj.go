// Package objloader parses a Wavefront OBJ subset: v, vt, vn, f, s,
// and comment lines, triangle faces only.
package objloader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/elyse-vance/lumen/pkg/geometry"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// ParseError locates a malformed line in an OBJ file, the same way
// scenefmt.ParseError locates one in a scene descriptor.
type ParseError struct {
	Filename string
	Line     int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, e.Message)
}

// faceIndex is a 1-based OBJ vertex/texcoord/normal reference; 0 means absent.
type faceIndex struct {
	v, vt, vn int
}

// Load reads an OBJ document from r and returns its triangles. Every
// triangle's Material field is left nil; a mesh source is expected to
// wrap the result in a geometry.Mesh, which overwrites it on every hit.
func Load(r io.Reader, filename string) ([]*geometry.Triangle, error) {
	var positions []vecmath.Vec3
	var texcoords [][2]float64
	var normals []vecmath.Vec3
	var triangles []*geometry.Triangle
	smoothing := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, &ParseError{filename, lineNo, fmt.Sprintf("vertex: %v", err)}
			}
			positions = append(positions, p)
		case "vt":
			if len(fields) < 3 {
				return nil, &ParseError{filename, lineNo, "texture coordinate needs u and v"}
			}
			u, err1 := strconv.ParseFloat(fields[1], 64)
			v, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				return nil, &ParseError{filename, lineNo, "malformed texture coordinate"}
			}
			texcoords = append(texcoords, [2]float64{u, v})
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, &ParseError{filename, lineNo, fmt.Sprintf("normal: %v", err)}
			}
			normals = append(normals, n)
		case "s":
			if len(fields) < 2 {
				return nil, &ParseError{filename, lineNo, "s directive needs off|on|0|1"}
			}
			switch fields[1] {
			case "off", "0":
				smoothing = false
			case "on", "1":
				smoothing = true
			default:
				return nil, &ParseError{filename, lineNo, fmt.Sprintf("unrecognized smoothing state %q", fields[1])}
			}
		case "f":
			if len(fields) != 4 {
				return nil, &ParseError{filename, lineNo, "only triangle faces are supported (expected 3 vertex references)"}
			}
			idx := make([]faceIndex, 3)
			for i, ref := range fields[1:] {
				fi, err := parseFaceIndex(ref, len(positions), len(texcoords), len(normals))
				if err != nil {
					return nil, &ParseError{filename, lineNo, err.Error()}
				}
				idx[i] = fi
			}
			tri, err := buildTriangle(idx, positions, texcoords, normals, smoothing)
			if err != nil {
				return nil, &ParseError{filename, lineNo, err.Error()}
			}
			triangles = append(triangles, tri)
		default:
			// Unrecognized directives (g, o, mtllib, usemtl, ...) are
			// silently skipped; they carry no geometry this loader needs.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("objloader: reading %s: %w", filename, err)
	}

	return triangles, nil
}

// LoadFile opens path and parses it as an OBJ document.
func LoadFile(path string) ([]*geometry.Triangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("objloader: opening %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, path)
}

func parseVec3(fields []string) (vecmath.Vec3, error) {
	if len(fields) < 3 {
		return vecmath.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err1 := strconv.ParseFloat(fields[0], 64)
	y, err2 := strconv.ParseFloat(fields[1], 64)
	z, err3 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return vecmath.Vec3{}, fmt.Errorf("malformed component in %v", fields[:3])
	}
	return vecmath.New(x, y, z), nil
}

// parseFaceIndex parses a v[/t[/n]] face reference, resolving
// negative (relative) indices against the counts seen so far.
func parseFaceIndex(ref string, numV, numVT, numVN int) (faceIndex, error) {
	parts := strings.Split(ref, "/")
	var fi faceIndex
	var err error

	fi.v, err = resolveIndex(parts[0], numV)
	if err != nil {
		return fi, fmt.Errorf("vertex index %q: %w", ref, err)
	}

	if len(parts) > 1 && parts[1] != "" {
		fi.vt, err = resolveIndex(parts[1], numVT)
		if err != nil {
			return fi, fmt.Errorf("texcoord index %q: %w", ref, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		fi.vn, err = resolveIndex(parts[2], numVN)
		if err != nil {
			return fi, fmt.Errorf("normal index %q: %w", ref, err)
		}
	}
	return fi, nil
}

func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = count + n + 1
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("index %d out of range (have %d)", n, count)
	}
	return n, nil
}

func buildTriangle(idx []faceIndex, positions []vecmath.Vec3, texcoords [][2]float64, normals []vecmath.Vec3, smoothing bool) (*geometry.Triangle, error) {
	v0, v1, v2 := positions[idx[0].v-1], positions[idx[1].v-1], positions[idx[2].v-1]

	haveNormals := smoothing && idx[0].vn != 0 && idx[1].vn != 0 && idx[2].vn != 0
	var tri *geometry.Triangle
	if haveNormals {
		n0, n1, n2 := normals[idx[0].vn-1], normals[idx[1].vn-1], normals[idx[2].vn-1]
		tri = geometry.NewTriangleWithNormals(v0, v1, v2, n0, n1, n2, nil)
	} else {
		tri = geometry.NewTriangle(v0, v1, v2, nil)
	}

	for i, fi := range idx {
		if fi.vt == 0 {
			continue
		}
		uv := texcoords[fi.vt-1]
		switch i {
		case 0:
			tri.UV0 = uv
		case 1:
			tri.UV1 = uv
		case 2:
			tri.UV2 = uv
		}
	}

	return tri, nil
}
