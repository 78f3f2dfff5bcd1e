package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/termlife/model"
)

func verticalPair() *model.Grid {
	g := model.NewGrid(3, 2)
	g.Set(1, 0, true)
	g.Set(1, 1, true)
	return g
}

func TestTextRenderer_FullRedraw(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf, DefaultOptions(), termenv.WithProfile(termenv.Ascii))

	require.NoError(t, r.Render(verticalPair()))
	out := buf.String()
	assert.True(t, strings.HasSuffix(out, " * \r\n * "), "got %q", out)
	assert.Contains(t, out, "\x1b[?25l", "cursor hidden on first frame")

	buf.Reset()
	require.NoError(t, r.Render(model.NewGrid(3, 2)))
	out = buf.String()
	assert.True(t, strings.HasSuffix(out, "   \r\n   "), "dead cells are painted over, got %q", out)
	assert.NotContains(t, out, "*")
	assert.NotContains(t, out, "\x1b[?25l", "cursor only hidden once")

	buf.Reset()
	require.NoError(t, r.Close())
	assert.Contains(t, buf.String(), "\x1b[?25h")

	buf.Reset()
	require.NoError(t, r.Close())
	assert.Empty(t, buf.String(), "second close is a no-op")
}

func TestTextRenderer_CustomGlyph(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Glyph = 'o'
	r := NewTextRenderer(&buf, opts, termenv.WithProfile(termenv.Ascii))

	require.NoError(t, r.Render(verticalPair()))
	assert.True(t, strings.HasSuffix(buf.String(), " o \r\n o "))
}

func TestTextRenderer_SizeFallsBackWhenNotATerminal(t *testing.T) {
	opts := DefaultOptions()
	opts.FallbackWidth = 100
	opts.FallbackHeight = 30
	r := NewTextRenderer(&bytes.Buffer{}, opts)

	w, h, err := r.Size()
	require.NoError(t, err)
	assert.Equal(t, 100, w)
	assert.Equal(t, 30, h)
}

func newSimulationRenderer(t *testing.T, width, height int) (*ScreenRenderer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	r, err := NewScreenRenderer(sim, DefaultOptions())
	require.NoError(t, err)
	sim.SetSize(width, height)
	t.Cleanup(func() { _ = r.Close() })
	return r, sim
}

func runeAt(sim tcell.SimulationScreen, x, y int) rune {
	cells, width, _ := sim.GetContents()
	c := cells[y*width+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func TestScreenRenderer_Render(t *testing.T) {
	r, sim := newSimulationRenderer(t, 4, 3)

	w, h, err := r.Size()
	require.NoError(t, err)
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)

	g := model.NewGrid(4, 3)
	g.Set(0, 0, true)
	g.Set(3, 2, true)
	require.NoError(t, r.Render(g))

	assert.Equal(t, '*', runeAt(sim, 0, 0))
	assert.Equal(t, '*', runeAt(sim, 3, 2))
	assert.Equal(t, ' ', runeAt(sim, 1, 1))

	g = model.NewGrid(4, 3)
	g.Set(1, 1, true)
	require.NoError(t, r.Render(g))

	assert.Equal(t, ' ', runeAt(sim, 0, 0), "stale glyph erased")
	assert.Equal(t, ' ', runeAt(sim, 3, 2), "stale glyph erased")
	assert.Equal(t, '*', runeAt(sim, 1, 1))
}

func TestScreenRenderer_WaitForInterrupt(t *testing.T) {
	r, sim := newSimulationRenderer(t, 4, 3)

	done := make(chan error, 1)
	go func() { done <- r.WaitForInterrupt() }()

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrInterrupted)
	case <-time.After(2 * time.Second):
		t.Fatal("interrupt was not delivered")
	}
}

func TestScreenRenderer_WaitForInterruptReturnsOnClose(t *testing.T) {
	r, _ := newSimulationRenderer(t, 4, 3)

	done := make(chan error, 1)
	go func() { done <- r.WaitForInterrupt() }()

	require.NoError(t, r.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("close did not release the event loop")
	}
}
