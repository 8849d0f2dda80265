// Package renderer drives a progressive render: repeated full-image
// sample passes over a fixed scene, accumulated into a shared image
// and periodically flushed to disk and an optional display sink.
package renderer

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/elyse-vance/lumen/pkg/core"
	"github.com/elyse-vance/lumen/pkg/image"
	"github.com/elyse-vance/lumen/pkg/ppm"
	"github.com/elyse-vance/lumen/pkg/tracer"
	"github.com/elyse-vance/lumen/pkg/vecmath"
)

// DefaultLogger implements core.Logger by writing to stdout.
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger returns a core.Logger that writes to stdout.
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// DisplaySink receives periodic, gamma-corrected preview frames as
// row-major RGB bytes in on-disk (top-down) order. Present returns
// true to request that the render stop early, e.g. because a
// terminal window was closed.
type DisplaySink interface {
	Present(frame []byte, width, height int) bool
}

// Config controls a single driver run.
type Config struct {
	SamplesTarget int     // total samples per pixel before the render is considered complete
	MaxDepth      int     // bounce budget passed to tracer.Trace
	AmbientScale  float64 // passed to tracer.Trace; 0 disables the sky gradient
	SnapshotEvery int     // snapshot after this many completed samples; 0 disables periodic snapshots
	NumWorkers    int     // 0 uses runtime.NumCPU()
	OutputPath    string  // PPM destination; empty skips writing to disk
	GammaValue    float64 // gamma applied to every snapshot, including the final one
}

// DefaultConfig returns sensible defaults for an interactive preview render.
func DefaultConfig() Config {
	return Config{
		SamplesTarget: 100,
		MaxDepth:      50,
		AmbientScale:  tracer.DefaultAmbientScale,
		SnapshotEvery: 10,
		NumWorkers:    0,
		GammaValue:    2.0,
	}
}

// Driver renders a core.Scene by accumulating one sample per pixel at
// a time across every scanline, in parallel, until SamplesTarget is
// reached or Stop is called.
type Driver struct {
	scene  *core.Scene
	img    *image.Image
	config Config
	logger core.Logger
	sink   DisplaySink

	sampleCount      atomic.Int64
	stopRequested    atomic.Bool
	snapshotInFlight atomic.Bool
	snapshotWG       sync.WaitGroup
}

// NewDriver builds a Driver over scene. logger and sink may be nil;
// a nil logger discards progress output and a nil sink skips preview
// frames entirely.
func NewDriver(scene *core.Scene, config Config, logger core.Logger, sink DisplaySink) *Driver {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Driver{
		scene:  scene,
		img:    image.NewImage(scene.Width, scene.Height),
		config: config,
		logger: logger,
		sink:   sink,
	}
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...interface{}) {}

// Stop requests the render halt after the sample currently in flight
// finishes. Safe to call from another goroutine, including from
// inside a DisplaySink.Present callback.
func (d *Driver) Stop() {
	d.stopRequested.Store(true)
}

// SampleCount reports how many full-image samples have completed so far.
func (d *Driver) SampleCount() int {
	return int(d.sampleCount.Load())
}

// Run renders until SamplesTarget samples have accumulated or Stop is
// called, then waits for any in-flight snapshot to finish and writes
// a final frame. It returns the final accumulated image, averaged and
// gamma-corrected.
func (d *Driver) Run() (*image.Image, error) {
	numWorkers := d.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	d.logger.Printf("render: %dx%d, %d samples target, %d workers\n",
		d.scene.Width, d.scene.Height, d.config.SamplesTarget, numWorkers)

	start := time.Now()
	for sample := 0; sample < d.config.SamplesTarget; sample++ {
		d.renderSample(sample, numWorkers)
		d.sampleCount.Add(1)

		if d.config.SnapshotEvery > 0 && (sample+1)%d.config.SnapshotEvery == 0 {
			d.takeSnapshot()
		}

		d.printProgress(sample + 1)

		// Yield once per sample so a snapshot worker or a goroutine
		// calling Stop gets to run before the stop flag is checked,
		// even with a single processor.
		runtime.Gosched()

		if d.stopRequested.Load() {
			d.logger.Printf("\nrender: stopped after %d samples\n", sample+1)
			break
		}
	}

	d.snapshotWG.Wait()
	d.logger.Printf("\nrender: %d samples in %s\n",
		d.SampleCount(), time.Since(start).Round(time.Millisecond))

	final := d.finalImage()
	if err := d.writeFile(final); err != nil {
		return final, err
	}
	return final, nil
}

// printProgress rewrites the single in-place progress line: completed
// samples out of the target, percent done, and a [saving] marker while
// a snapshot is being written.
func (d *Driver) printProgress(done int) {
	saving := ""
	if d.snapshotInFlight.Load() {
		saving = " [saving]"
	}
	percent := 100 * float64(done) / float64(d.config.SamplesTarget)
	d.logger.Printf("\rrender: %d/%d (%.1f%%)%s", done, d.config.SamplesTarget, percent, saving)
}

// renderSample renders one additional sample per pixel across every
// scanline, fanning rows out to numWorkers goroutines. Each worker
// accumulates its row into a private buffer and hands it to the
// shared image through a single AddRow call, so the accumulator's
// mutex is held once per row rather than once per pixel.
func (d *Driver) renderSample(sampleIndex, numWorkers int) {
	rows := make(chan int, d.scene.Height)
	for y := 0; y < d.scene.Height; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(sampleIndex)*2654435761 + int64(workerID) + 1))
			for y := range rows {
				d.img.AddRow(y, d.renderRow(y, rng))
			}
		}(w)
	}
	wg.Wait()
}

func (d *Driver) renderRow(y int, rng *rand.Rand) []vecmath.Vec3 {
	width, height := d.scene.Width, d.scene.Height
	row := make([]vecmath.Vec3, width)
	for x := 0; x < width; x++ {
		s := (float64(x) + rng.Float64()) / float64(width)
		t := (float64(y) + rng.Float64()) / float64(height)
		ray := d.scene.Camera.GetRay(s, t, rng)
		row[x] = tracer.Trace(ray, d.scene.Root, d.config.MaxDepth, rng, d.config.AmbientScale)
	}
	return row
}

// takeSnapshot clones the accumulator and, if no snapshot is already
// running, filters and publishes it in the background. A snapshot
// that is still in flight when the next one would start is skipped
// rather than queued, so rendering never waits on disk or display I/O.
func (d *Driver) takeSnapshot() {
	if !d.snapshotInFlight.CompareAndSwap(false, true) {
		return
	}

	clone := d.img.Clone()
	n := d.SampleCount()

	d.snapshotWG.Add(1)
	go func() {
		defer d.snapshotWG.Done()
		defer d.snapshotInFlight.Store(false)

		d.filter(clone, n)

		if err := d.writeFile(clone); err != nil {
			// Snapshot failures are non-fatal; the final save is the
			// authoritative output and reports its own error.
			fmt.Fprintf(os.Stderr, "render: snapshot write failed: %v\n", err)
		}
		if d.sink != nil {
			if d.sink.Present(ppm.EncodeRows(clone), clone.Width, clone.Height) {
				d.Stop()
			}
		}
	}()
}

func (d *Driver) filter(img *image.Image, sampleCount int) {
	if sampleCount < 1 {
		sampleCount = 1
	}
	img.ApplyFilter(image.Average(sampleCount))
	gamma := d.config.GammaValue
	if gamma <= 0 {
		gamma = 1.0
	}
	img.ApplyFilter(image.Gamma(gamma))
}

func (d *Driver) finalImage() *image.Image {
	clone := d.img.Clone()
	d.filter(clone, d.SampleCount())
	return clone
}

func (d *Driver) writeFile(img *image.Image) error {
	if d.config.OutputPath == "" {
		return nil
	}
	f, err := os.Create(d.config.OutputPath)
	if err != nil {
		return fmt.Errorf("render: creating output file: %w", err)
	}
	defer f.Close()
	return ppm.Write(f, img)
}
