package ppm

import (
	"bytes"
	"math"
	"testing"

	"github.com/elyse-vance/lumen/pkg/image"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

func TestWriteHeader(t *testing.T) {
	img := image.NewImage(4, 2)
	var buf bytes.Buffer
	if err := Write(&buf, img); err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := "P6\n4 2 255\n"
	if got := buf.String()[:len(want)]; got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
}

func TestWriteClampsAndScalesChannels(t *testing.T) {
	img := image.NewImage(1, 1)
	img.Pixels[0] = vecmath.New(2.0, 0.5, -1.0) // out-of-range above and below

	var buf bytes.Buffer
	if err := Write(&buf, img); err != nil {
		t.Fatalf("Write: %v", err)
	}

	body := buf.Bytes()[len("P6\n1 1 255\n"):]
	if len(body) != 3 {
		t.Fatalf("expected 3 bytes of pixel data, got %d", len(body))
	}
	if body[0] != 255 {
		t.Errorf("channel clamped above 1 should saturate to 255, got %d", body[0])
	}
	if body[2] != 0 {
		t.Errorf("channel clamped below 0 should floor to 0, got %d", body[2])
	}
}

func TestWriteFlipsRowsVertically(t *testing.T) {
	img := image.NewImage(1, 2)
	img.Pixels[0] = vecmath.New(1, 0, 0) // row 0 (bottom in memory)
	img.Pixels[1] = vecmath.New(0, 0, 1) // row 1 (top in memory)

	var buf bytes.Buffer
	if err := Write(&buf, img); err != nil {
		t.Fatalf("Write: %v", err)
	}

	body := buf.Bytes()[len("P6\n1 2 255\n"):]
	// Row 1 (top) must be written first on disk.
	if body[0] != 0 || body[2] != 255 {
		t.Errorf("first row on disk = %v, want blue (top row in memory)", body[:3])
	}
	if body[3] != 255 || body[5] != 0 {
		t.Errorf("second row on disk = %v, want red (bottom row in memory)", body[3:6])
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	original := image.NewImage(3, 2)
	for i := range original.Pixels {
		original.Pixels[i] = vecmath.New(float64(i)/6.0, 0.5, 1.0-float64(i)/6.0)
	}

	var buf bytes.Buffer
	if err := Write(&buf, original); err != nil {
		t.Fatalf("Write: %v", err)
	}

	decoded, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if decoded.Width != original.Width || decoded.Height != original.Height {
		t.Fatalf("dimensions = %dx%d, want %dx%d", decoded.Width, decoded.Height, original.Width, original.Height)
	}

	for i := range original.Pixels {
		want := original.Pixels[i]
		got := decoded.Pixels[i]
		// Round trip through a byte quantizes to 1/255 precision.
		if math.Abs(got.X-want.X) > 1.0/255.0 ||
			math.Abs(got.Y-want.Y) > 1.0/255.0 ||
			math.Abs(got.Z-want.Z) > 1.0/255.0 {
			t.Errorf("pixel %d = %v, want ~%v", i, got, want)
		}
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, err := Read(bytes.NewBufferString("P5\n1 1 255\n\x00\x00\x00"))
	if err == nil {
		t.Error("expected error for non-P6 magic")
	}
}
