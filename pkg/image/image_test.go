package image

import (
	"sync"
	"testing"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

func TestAddRowAccumulatesAcrossSamples(t *testing.T) {
	img := NewImage(3, 2)
	row := []vecmath.Vec3{vecmath.New(1, 1, 1), vecmath.New(2, 2, 2), vecmath.New(3, 3, 3)}

	img.AddRow(0, row)
	img.AddRow(0, row)

	for x := 0; x < 3; x++ {
		want := row[x].Multiply(2)
		if img.At(x, 0) != want {
			t.Errorf("At(%d,0) = %v, want %v", x, img.At(x, 0), want)
		}
	}
}

func TestAddRowPanicsOnWidthMismatch(t *testing.T) {
	img := NewImage(3, 2)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on row length mismatch")
		}
	}()
	img.AddRow(0, []vecmath.Vec3{{}})
}

func TestCloneIsIndependentOfSource(t *testing.T) {
	img := NewImage(2, 2)
	img.AddRow(0, []vecmath.Vec3{vecmath.New(1, 0, 0), vecmath.New(0, 1, 0)})

	clone := img.Clone()
	img.AddRow(0, []vecmath.Vec3{vecmath.New(1, 0, 0), vecmath.New(0, 1, 0)})

	if clone.At(0, 0) == img.At(0, 0) {
		t.Error("clone should not observe mutations made after it was taken")
	}
}

func TestConcurrentAddRowIsSafe(t *testing.T) {
	img := NewImage(4, 8)
	row := []vecmath.Vec3{vecmath.New(1, 1, 1), vecmath.New(1, 1, 1), vecmath.New(1, 1, 1), vecmath.New(1, 1, 1)}

	var wg sync.WaitGroup
	for y := 0; y < 8; y++ {
		for s := 0; s < 20; s++ {
			wg.Add(1)
			go func(y int) {
				defer wg.Done()
				img.AddRow(y, row)
			}(y)
		}
	}
	wg.Wait()

	want := vecmath.New(20, 20, 20)
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			if img.At(x, y) != want {
				t.Errorf("At(%d,%d) = %v, want %v", x, y, img.At(x, y), want)
			}
		}
	}
}

func TestApplyFilterTransformsEveryPixel(t *testing.T) {
	img := NewImage(2, 1)
	img.AddRow(0, []vecmath.Vec3{vecmath.New(2, 4, 6), vecmath.New(8, 10, 12)})

	img.ApplyFilter(Average(2))

	if img.At(0, 0) != vecmath.New(1, 2, 3) {
		t.Errorf("At(0,0) = %v, want %v", img.At(0, 0), vecmath.New(1, 2, 3))
	}
	if img.At(1, 0) != vecmath.New(4, 5, 6) {
		t.Errorf("At(1,0) = %v, want %v", img.At(1, 0), vecmath.New(4, 5, 6))
	}
}
