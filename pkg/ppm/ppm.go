// Package ppm encodes and decodes the binary portable pixmap (P6)
// format used to persist rendered frames: an ASCII header followed by
// row-major RGB triples, written with a vertical flip so the
// in-memory lower-left origin becomes the on-disk upper-left origin.
package ppm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/elyse-vance/lumen/pkg/image"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// Write encodes img as P6, clamping and quantizing every channel to a
// byte and writing image row 0 last so the file reads top-down.
func Write(w io.Writer, img *image.Image) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d 255\n", img.Width, img.Height); err != nil {
		return err
	}
	_, err := w.Write(EncodeRows(img))
	return err
}

// EncodeRows returns the row-major RGB byte payload for img with the
// same vertical flip Write applies, minus the header. A display sink
// consumes exactly this layout for its periodic frames.
func EncodeRows(img *image.Image) []byte {
	buf := make([]byte, 0, img.Width*img.Height*3)
	for y := img.Height - 1; y >= 0; y-- {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			buf = append(buf, toByte(p.X), toByte(p.Y), toByte(p.Z))
		}
	}
	return buf
}

// toByte clamps a channel to [0,1], scales to [0,255], and truncates.
func toByte(c float64) byte {
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return byte(c * 255)
}

// Read decodes a P6 stream back into an Image, undoing the vertical
// flip applied on write. Used primarily to round-trip test Write.
func Read(r io.Reader) (*image.Image, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("ppm: reading magic: %w", err)
	}
	if string(magic) != "P6" {
		return nil, fmt.Errorf("ppm: unsupported magic %q, want P6", magic)
	}

	width, err := readInt(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: reading width: %w", err)
	}
	height, err := readInt(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: reading height: %w", err)
	}
	maxVal, err := readInt(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: reading maxval: %w", err)
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("ppm: unsupported maxval %d, want 255", maxVal)
	}

	data := make([]byte, width*height*3)
	if _, err := io.ReadFull(br, data); err != nil {
		return nil, fmt.Errorf("ppm: reading pixel data: %w", err)
	}

	img := image.NewImage(width, height)
	for y := 0; y < height; y++ {
		srcY := height - 1 - y
		for x := 0; x < width; x++ {
			idx := (srcY*width + x) * 3
			img.Pixels[y*width+x] = vecmath.New(
				float64(data[idx])/255.0,
				float64(data[idx+1])/255.0,
				float64(data[idx+2])/255.0,
			)
		}
	}

	return img, nil
}

// readInt skips leading whitespace, then reads digits up to the next
// whitespace byte, consuming exactly one separator (per the PPM
// header grammar: tokens are whitespace-delimited, and the single
// byte after maxval begins the binary pixel data).
func readInt(br *bufio.Reader) (int, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if !isSpace(b) {
			if err := br.UnreadByte(); err != nil {
				return 0, err
			}
			break
		}
	}

	var digits []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if isSpace(b) {
			break
		}
		digits = append(digits, b)
	}

	return strconv.Atoi(string(digits))
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
