package model

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/termlife/rules"
)

// Advance computes the next generation of g into a freshly allocated grid.
// g itself is left untouched.
func Advance(g *Grid) *Grid {
	return AdvanceInto(NewGrid(g.width, g.height), g)
}

// AdvanceInto computes the next generation of src into dst and returns dst.
// Every cell of dst is overwritten. dst must match src's dimensions and must
// not be src; both are programmer errors and panic.
func AdvanceInto(dst, src *Grid) *Grid {
	if dst == src {
		panic(errors.Wrap(ErrAliasedGrid, "[AdvanceInto]"))
	}
	if dst.width != src.width || dst.height != src.height {
		panic(errors.Wrapf(ErrDimensionMismatch, "[AdvanceInto] dst %dx%d, src %dx%d",
			dst.width, dst.height, src.width, src.height))
	}

	for y := range src.height {
		row := dst.cells[y]
		for x := range src.width {
			row[x] = rules.ApplyConwayRules(src.CountNeighbors(x, y), src.cells[y][x])
		}
	}

	return dst
}

// NextGeneration calculates the next generation, drawing the new grid from
// pool when one is given
func (g *Grid) NextGeneration(pool *GridPool) *Grid {
	if pool == nil {
		return Advance(g)
	}
	return AdvanceInto(pool.Get(g.width, g.height), g)
}
