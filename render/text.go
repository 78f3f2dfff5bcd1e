package render

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/sheikhrachel/termlife/model"
)

const emptyCell = ' '

// TextRenderer prints frames as plain text with ANSI cursor control.
// It is the fallback when no full-screen terminal library is wanted.
type TextRenderer struct {
	w       io.Writer
	out     *termenv.Output
	opts    Options
	glyph   string
	started bool
}

// NewTextRenderer writes frames to w
func NewTextRenderer(w io.Writer, opts Options, outOpts ...termenv.OutputOption) *TextRenderer {
	out := termenv.NewOutput(w, outOpts...)

	glyph := string(opts.Glyph)
	if opts.Color != "" {
		glyph = out.String(glyph).Foreground(out.Color(opts.Color)).String()
	}

	return &TextRenderer{
		w:     w,
		out:   out,
		opts:  opts,
		glyph: glyph,
	}
}

// Size returns the terminal size, or the fallback size when w is not a terminal
func (r *TextRenderer) Size() (int, int, error) {
	if f, ok := r.w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		width, height, err := term.GetSize(int(f.Fd()))
		if err != nil {
			return 0, 0, errors.Wrap(err, "[TextRenderer.Size] failed to read terminal size")
		}
		return width, height, nil
	}
	return r.opts.FallbackWidth, r.opts.FallbackHeight, nil
}

// Render redraws the whole grid from the top-left corner
func (r *TextRenderer) Render(g *model.Grid) error {
	if !r.started {
		r.out.ClearScreen()
		r.out.HideCursor()
		r.started = true
	}
	r.out.MoveCursor(1, 1)

	if _, err := io.WriteString(r.w, r.frame(g)); err != nil {
		return errors.Wrap(err, "[TextRenderer.Render] failed to write frame")
	}
	return nil
}

// frame lays out one row per line. The last row has no line break so a grid
// as tall as the terminal does not scroll.
func (r *TextRenderer) frame(g *model.Grid) string {
	width, height := g.Dimensions()

	var sb strings.Builder
	sb.Grow((width*len(r.glyph) + 2) * height)
	for y := range height {
		if y > 0 {
			sb.WriteString("\r\n")
		}
		for x := range width {
			if g.Get(x, y) {
				sb.WriteString(r.glyph)
			} else {
				sb.WriteByte(emptyCell)
			}
		}
	}
	return sb.String()
}

// Close restores the cursor
func (r *TextRenderer) Close() error {
	if r.started {
		r.out.ShowCursor()
		if _, err := io.WriteString(r.w, "\r\n"); err != nil {
			return errors.Wrap(err, "[TextRenderer.Close] failed to write")
		}
		r.started = false
	}
	return nil
}
