package game

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/sheikhrachel/termlife/model"
	"github.com/sheikhrachel/termlife/patterns"
	"github.com/sheikhrachel/termlife/render"
	"github.com/sheikhrachel/termlife/utils"
)

// GridSize picks the board size: configured dimensions win, the renderer's
// drawable area fills in whatever is left at zero
func GridSize(c utils.GridConfig, r render.Renderer) (width, height int, err error) {
	width, height = c.Width, c.Height
	if width > 0 && height > 0 {
		return width, height, nil
	}

	termW, termH, err := r.Size()
	if err != nil {
		return 0, 0, errors.Wrap(err, "[GridSize] failed to read renderer size")
	}
	if width <= 0 {
		width = termW
	}
	if height <= 0 {
		height = termH
	}
	if width <= 0 || height <= 0 {
		return 0, 0, errors.Wrapf(model.ErrInvalidDimensions, "[GridSize] renderer reported %dx%d", termW, termH)
	}
	return width, height, nil
}

// ResolvePattern turns the configured pattern name or file into cells.
// It returns ok=false for random seeding.
func ResolvePattern(c utils.GridConfig, width int) (p patterns.Pattern, ok bool, err error) {
	switch {
	case c.PatternFile != "":
		p, err = patterns.LoadFile(c.PatternFile)
		if err != nil {
			return p, false, err
		}
		return p, true, nil
	case c.Pattern == utils.PatternRandom:
		return p, false, nil
	case c.Pattern == utils.PatternGuns:
		return patterns.GunArray(width), true, nil
	default:
		p, err = patterns.Lookup(c.Pattern)
		if err != nil {
			return p, false, err
		}
		return p, true, nil
	}
}

// NewInitialGrid builds the first generation for a width x height board
func NewInitialGrid(c utils.GridConfig, width, height int, logger zerolog.Logger) (*model.Grid, error) {
	grid := model.NewGrid(width, height)

	p, ok, err := ResolvePattern(c, width)
	if err != nil {
		return nil, errors.Wrap(err, "[NewInitialGrid] failed to resolve pattern")
	}

	if !ok {
		grid.Randomize(model.NewRand(c.Seed), c.Density)
		logger.Info().
			Int("width", width).
			Int("height", height).
			Float64("density", c.Density).
			Int64("seed", c.Seed).
			Int("living", grid.CountLivingCells()).
			Msg("seeded random grid")
		return grid, nil
	}

	if err := patterns.Seed(grid, p); err != nil {
		return nil, errors.Wrap(err, "[NewInitialGrid] failed to seed pattern")
	}
	logger.Info().
		Int("width", width).
		Int("height", height).
		Str("pattern", p.Name).
		Int("living", grid.CountLivingCells()).
		Msg("seeded pattern")
	return grid, nil
}
