package core

import "github.com/elyse-vance/lumen/pkg/camera"

// Scene bundles everything a render needs and nothing it can mutate:
// the camera, the root acceleration structure, and the output
// dimensions. Built once by a scene source and shared read-only across
// every render worker.
type Scene struct {
	Camera *camera.Camera
	Root   *BVH
	Width  int
	Height int
}
