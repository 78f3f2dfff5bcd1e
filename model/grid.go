package model

import (
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
)

// Point is a cell coordinate on the grid
type Point struct {
	X, Y int
}

// Grid holds one generation of cell states over a fixed rectangle
type Grid struct {
	width  int
	height int
	cells  [][]bool
}

// NewGrid creates a new all-dead grid with the specified dimensions
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(errors.Wrapf(ErrInvalidDimensions, "[NewGrid] %dx%d", width, height))
	}
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Dimensions returns the width and height of the grid
func (g *Grid) Dimensions() (width, height int) {
	return g.width, g.height
}

// InBounds reports whether (x, y) addresses a cell of the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Reset resizes the grid to new dimensions and kills every cell
func (g *Grid) Reset(width, height int) {
	if width <= 0 || height <= 0 {
		panic(errors.Wrapf(ErrInvalidDimensions, "[Grid.Reset] %dx%d", width, height))
	}
	g.width = width
	g.height = height

	if len(g.cells) != height {
		g.cells = make([][]bool, height)
	}
	for i := range g.cells {
		if len(g.cells[i]) != width {
			g.cells[i] = make([]bool, width)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear kills every cell
func (g *Grid) Clear() {
	for y := range g.height {
		clear(g.cells[y])
	}
}

// Set sets a cell to alive (true) or dead (false).
// Panics when (x, y) is outside the grid.
func (g *Grid) Set(x, y int, alive bool) {
	g.mustBeInBounds("Grid.Set", x, y)
	g.cells[y][x] = alive
}

// Get returns the state of a cell.
// Panics when (x, y) is outside the grid.
func (g *Grid) Get(x, y int) bool {
	g.mustBeInBounds("Grid.Get", x, y)
	return g.cells[y][x]
}

func (g *Grid) mustBeInBounds(op string, x, y int) {
	if !g.InBounds(x, y) {
		panic(errors.Wrapf(ErrOutOfBounds, "[%s] (%d, %d) outside %dx%d grid", op, x, y, g.width, g.height))
	}
}

// CountNeighbors counts living cells in the Moore neighborhood of (x, y).
// Neighbors that fall outside the grid count as dead.
func (g *Grid) CountNeighbors(x, y int) int {
	count := 0

	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			if g.cells[ny][nx] {
				count++
			}
		}
	}

	return count
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// LiveCells returns the coordinates of every living cell in row-major order
func (g *Grid) LiveCells() []Point {
	var points []Point
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.width, g.height)
	for y := range g.height {
		copy(c.cells[y], g.cells[y])
	}
	return c
}

// Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Randomize sets each cell alive with the given probability
func (g *Grid) Randomize(rng *rand.Rand, probability float64) {
	for y := range g.height {
		for x := range g.width {
			g.cells[y][x] = rng.Float64() < probability
		}
	}
}

// String draws the grid with '#' for living and '.' for dead cells, one row per line
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
