// Package render draws generations to a terminal. Every frame is a full
// redraw: cells that died since the last frame are painted over.
package render

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/termlife/model"
)

// ErrInterrupted is returned when the user interrupts the run from the terminal
var ErrInterrupted = errors.New("interrupted")

// Renderer draws one generation per call
type Renderer interface {
	// Size returns the drawable area in cells
	Size() (width, height int, err error)
	Render(g *model.Grid) error
	Close() error
}

// Options configures how cells are drawn
type Options struct {
	Glyph rune
	// Color is a hex ("#00ff00") or named colour; empty leaves the terminal default
	Color string
	// FallbackWidth and FallbackHeight are used when the output is not a terminal
	FallbackWidth  int
	FallbackHeight int
}

// DefaultOptions matches the reference look: '*' in the default colour on 80x24
func DefaultOptions() Options {
	return Options{
		Glyph:          '*',
		FallbackWidth:  80,
		FallbackHeight: 24,
	}
}
