package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/termlife/model"
)

// ScreenRenderer draws through a tcell screen, the full-screen terminal path
type ScreenRenderer struct {
	screen tcell.Screen
	glyph  rune
	style  tcell.Style

	closeOnce sync.Once
}

// NewScreenRenderer takes over the terminal. A nil screen opens the real one.
func NewScreenRenderer(screen tcell.Screen, opts Options) (*ScreenRenderer, error) {
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, errors.Wrap(err, "[NewScreenRenderer] failed to create screen")
		}
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[NewScreenRenderer] failed to initialize screen")
	}
	screen.HideCursor()
	screen.Clear()

	style := tcell.StyleDefault
	if opts.Color != "" {
		style = style.Foreground(tcell.GetColor(opts.Color))
	}

	return &ScreenRenderer{
		screen: screen,
		glyph:  opts.Glyph,
		style:  style,
	}, nil
}

// Size returns the screen size in cells
func (r *ScreenRenderer) Size() (int, int, error) {
	width, height := r.screen.Size()
	return width, height, nil
}

// Render clears the back buffer, draws every living cell and shows the frame
func (r *ScreenRenderer) Render(g *model.Grid) error {
	r.screen.Clear()
	for _, p := range g.LiveCells() {
		r.screen.SetContent(p.X, p.Y, r.glyph, nil, r.style)
	}
	r.screen.Show()
	return nil
}

// WaitForInterrupt blocks until Ctrl-C is pressed or the screen is closed.
// The screen runs the terminal in raw mode, so the interrupt arrives as a key
// event rather than a signal.
func (r *ScreenRenderer) WaitForInterrupt() error {
	for {
		switch ev := r.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return ErrInterrupted
			}
		case *tcell.EventResize:
			r.screen.Sync()
		}
	}
}

// Close restores the terminal. Safe to call more than once.
func (r *ScreenRenderer) Close() error {
	r.closeOnce.Do(r.screen.Fini)
	return nil
}
