package patterns

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/termlife/model"
)

func TestGosperGun_Shape(t *testing.T) {
	gun := GosperGun()
	assert.Len(t, gun.Cells, 36)

	w, h := gun.Bounds()
	assert.Equal(t, 41, w)
	assert.Equal(t, 14, h)
}

func TestSeed_PlacesEveryCell(t *testing.T) {
	g := model.NewGrid(41, 14)
	require.NoError(t, Seed(g, GosperGun()))

	assert.Equal(t, 36, g.CountLivingCells())
	for _, c := range GosperGun().Cells {
		assert.True(t, g.Get(c.X, c.Y), "cell (%d, %d)", c.X, c.Y)
	}
}

func TestSeed_KeepsExistingCells(t *testing.T) {
	g := model.NewGrid(10, 10)
	g.Set(9, 9, true)

	require.NoError(t, Seed(g, Block()))
	assert.True(t, g.Get(9, 9))
	assert.Equal(t, 5, g.CountLivingCells())
}

func TestSeed_TooSmallGridIsUntouched(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"one column short", 40, 14},
		{"one row short", 41, 13},
		{"reference minimum check", 40, 13},
		{"tiny", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := model.NewGrid(tt.width, tt.height)
			g.Set(0, 0, true)
			before := g.Clone()

			err := Seed(g, GosperGun())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrPatternTooLarge))

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "gosper-gun", cfgErr.Pattern)
			assert.Equal(t, 41, cfgErr.NeedW)
			assert.Equal(t, 14, cfgErr.NeedH)
			assert.Equal(t, tt.width, cfgErr.GridW)
			assert.Equal(t, tt.height, cfgErr.GridH)

			assert.True(t, before.Equal(g), "grid must not change")
		})
	}
}

func TestSeed_NegativeCellRejected(t *testing.T) {
	g := model.NewGrid(5, 5)
	p := Pattern{Name: "bad", Cells: []model.Point{{X: 1, Y: 1}, {X: -1, Y: 2}}}

	err := Seed(g, p)
	require.Error(t, err)
	assert.Zero(t, g.CountLivingCells())
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		p, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name)
		assert.NotEmpty(t, p.Cells)
	}

	_, err := Lookup("r-pentomino")
	assert.True(t, errors.Is(err, ErrUnknownPattern))
}

func TestLookup_ReturnsCopies(t *testing.T) {
	p, err := Lookup("gosper-gun")
	require.NoError(t, err)
	p.Cells[0] = model.Point{X: 100, Y: 100}

	again, err := Lookup("gosper-gun")
	require.NoError(t, err)
	assert.Equal(t, model.Point{X: 5, Y: 9}, again.Cells[0])
}

func TestBlinkerPreset_Oscillates(t *testing.T) {
	g := model.NewGrid(5, 5)
	require.NoError(t, Seed(g, Blinker()))
	start := g.Clone()

	g = model.Advance(model.Advance(g))
	assert.True(t, start.Equal(g))
}

func TestGunArray(t *testing.T) {
	tests := []struct {
		width int
		guns  int
	}{
		{30, 1},
		{41, 1},
		{90, 1},
		{91, 2},
		{491, 10},
		{540, 10},
	}

	for _, tt := range tests {
		p := GunArray(tt.width)
		assert.Len(t, p.Cells, tt.guns*36, "width %d", tt.width)

		w, h := p.Bounds()
		assert.Equal(t, 14, h)
		assert.Equal(t, 41+(tt.guns-1)*50, w)
		if tt.width >= 41 {
			assert.LessOrEqual(t, w, tt.width)
			assert.NoError(t, Seed(model.NewGrid(tt.width, 14), p))
		}
	}
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte("name: glider\ncells:\n  - [1, 0]\n  - [2, 1]\n  - [0, 2]\n  - [1, 2]\n  - [2, 2]\n"))
	require.NoError(t, err)
	assert.Equal(t, Glider(), p)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "cells: [[1, 2"},
		{"no cells", "name: empty\n"},
		{"short cell", "cells:\n  - [1]\n"},
		{"negative", "cells:\n  - [1, -2]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.True(t, errors.Is(err, ErrInvalidPatternFile), "got %v", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pair.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cells:\n  - [0, 0]\n  - [3, 1]\n"), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pair", p.Name)
	assert.Equal(t, []model.Point{{X: 0, Y: 0}, {X: 3, Y: 1}}, p.Cells)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
