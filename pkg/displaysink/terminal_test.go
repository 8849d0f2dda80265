package displaysink

import (
	"image/color"
	"testing"
)

func TestPixelAtDecodesRGBTriple(t *testing.T) {
	frame := []byte{
		10, 20, 30, 40, 50, 60,
		70, 80, 90, 100, 110, 120,
	}
	width := 2

	got := pixelAt(frame, width, 1, 0)
	want := color.RGBA{R: 40, G: 50, B: 60, A: 255}
	if got != want {
		t.Errorf("pixelAt(1,0) = %v, want %v", got, want)
	}

	got = pixelAt(frame, width, 0, 1)
	want = color.RGBA{R: 70, G: 80, B: 90, A: 255}
	if got != want {
		t.Errorf("pixelAt(0,1) = %v, want %v", got, want)
	}
}

func TestPixelAtOutOfRangeReturnsZeroValue(t *testing.T) {
	frame := []byte{1, 2, 3}
	if got := pixelAt(frame, 1, 5, 5); got != (color.RGBA{}) {
		t.Errorf("pixelAt out of range = %v, want zero value", got)
	}
}

func TestRequestStopSetsFlag(t *testing.T) {
	sink := &Terminal{}
	sink.RequestStop()
	if !sink.stopRequested {
		t.Error("expected stopRequested to be set")
	}
}
