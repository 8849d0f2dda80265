// Package displaysink implements the optional display sink
// collaborator: something that receives periodic cloned, averaged,
// gamma-corrected, y-flipped preview frames and may ask the driver to
// stop.
package displaysink

import (
	"context"
	"fmt"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Terminal renders preview frames to the terminal using half-block
// characters, two image rows per terminal row, the same technique the
// pack's terminal framebuffer renderer uses (fg/bg of an upper-half
// block cell encode a pair of vertically adjacent pixels).
type Terminal struct {
	term          *uv.Terminal
	cols, rows    int
	stopRequested bool
}

// NewTerminal opens the controlling terminal in alternate-screen mode
// and sizes itself to it. Call Close when the render finishes or is
// cancelled to restore the terminal.
func NewTerminal() (*Terminal, error) {
	term := uv.DefaultTerminal()

	cols, termRows, err := term.GetSize()
	if err != nil {
		return nil, fmt.Errorf("displaysink: get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("displaysink: start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, termRows)

	go func() {
		for range term.Events() {
			// Preview is read-only; input events are drained so the
			// terminal's event channel never blocks the writer.
		}
	}()

	return &Terminal{term: term, cols: cols, rows: termRows}, nil
}

// Close restores the terminal to its prior state.
func (t *Terminal) Close() {
	t.term.ExitAltScreen()
	t.term.ShowCursor()
	t.term.Shutdown(context.Background())
}

// Present draws frame (row-major RGB bytes, already y-flipped to
// on-disk/top-down order) into the terminal grid and reports whether
// a prior stop request means the render should halt.
func (t *Terminal) Present(frame []byte, width, height int) bool {
	for row := 0; row < t.rows; row++ {
		topY := row * 2 * height / (t.rows * 2)
		botY := topY + 1
		if botY >= height {
			botY = topY
		}
		for col := 0; col < t.cols && col < width; col++ {
			srcX := col * width / t.cols
			top := pixelAt(frame, width, srcX, topY)
			bot := pixelAt(frame, width, srcX, botY)
			t.term.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: top,
					Bg: bot,
				},
			})
		}
	}
	t.term.Display()
	return t.stopRequested
}

// RequestStop marks the sink to report a stop on its next Present
// call, e.g. in response to a quit keypress observed elsewhere.
func (t *Terminal) RequestStop() {
	t.stopRequested = true
}

func pixelAt(frame []byte, width, x, y int) color.Color {
	idx := (y*width + x) * 3
	if idx+2 >= len(frame) {
		return color.RGBA{}
	}
	return color.RGBA{R: frame[idx], G: frame[idx+1], B: frame[idx+2], A: 255}
}
