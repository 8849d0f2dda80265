// Package image holds the progressive accumulator: a flat, lockable
// sum buffer that many render workers add rows into, and the pure
// average/gamma filters applied when a snapshot or final image is
// produced.
package image

import (
	"sync"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// Image is unnormalized, accumulated radiance: every sample adds into
// it, nothing ever divides in place. Averaging happens only in a
// filter applied to a clone, so the accumulator itself stays a pure
// running sum and an early stop still yields an unbiased mean.
type Image struct {
	mu     sync.Mutex
	Width  int
	Height int
	Pixels []vecmath.Vec3
}

// NewImage allocates a zeroed accumulator of width x height.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]vecmath.Vec3, width*height),
	}
}

// AddRow adds a worker's private row buffer into scanline y of the
// shared accumulator. This is the only mutating entry point and is
// the sole critical section render workers contend on.
func (img *Image) AddRow(y int, row []vecmath.Vec3) {
	if len(row) != img.Width {
		panic("image: AddRow row length does not match image width")
	}

	img.mu.Lock()
	defer img.mu.Unlock()

	base := y * img.Width
	for x, v := range row {
		img.Pixels[base+x] = img.Pixels[base+x].Add(v)
	}
}

// Clone deep-copies the pixel buffer under the lock so a snapshot can
// filter and encode it without blocking in-flight workers.
func (img *Image) Clone() *Image {
	img.mu.Lock()
	defer img.mu.Unlock()

	pixels := make([]vecmath.Vec3, len(img.Pixels))
	copy(pixels, img.Pixels)

	return &Image{Width: img.Width, Height: img.Height, Pixels: pixels}
}

// At returns the pixel at (x, y), row 0 being the bottom row in the
// in-memory convention.
func (img *Image) At(x, y int) vecmath.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// ApplyFilter maps every pixel through f in place. Filters are pure
// Vec3 -> Vec3 transforms and are meant to run on a Clone, never on
// the live accumulator workers are still adding into.
func (img *Image) ApplyFilter(f func(vecmath.Vec3) vecmath.Vec3) {
	for i, p := range img.Pixels {
		img.Pixels[i] = f(p)
	}
}
