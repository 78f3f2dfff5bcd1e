// Package patterns holds named starting configurations and seeds them onto a
// grid without ever writing a partial pattern.
package patterns

import (
	"fmt"
	"slices"
	"sort"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/termlife/model"
)

// ErrPatternTooLarge is wrapped by Seed when the pattern does not fit the grid
var ErrPatternTooLarge = errors.New("pattern does not fit grid")

// ErrUnknownPattern is returned by Lookup for names that are not registered
var ErrUnknownPattern = errors.New("unknown pattern")

// ConfigError reports a pattern that cannot be placed on a grid
type ConfigError struct {
	Pattern      string
	NeedW, NeedH int
	GridW, GridH int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("pattern %q needs at least %dx%d cells, grid is %dx%d",
		e.Pattern, e.NeedW, e.NeedH, e.GridW, e.GridH)
}

func (e *ConfigError) Unwrap() error { return ErrPatternTooLarge }

// Pattern is an ordered list of cells to bring to life
type Pattern struct {
	Name  string
	Cells []model.Point
}

// Bounds returns the smallest grid, anchored at the origin, that holds every cell
func (p Pattern) Bounds() (width, height int) {
	for _, c := range p.Cells {
		width = max(width, c.X+1)
		height = max(height, c.Y+1)
	}
	return
}

// Offset returns a copy of the pattern shifted by (dx, dy)
func (p Pattern) Offset(dx, dy int) Pattern {
	cells := make([]model.Point, len(p.Cells))
	for i, c := range p.Cells {
		cells[i] = model.Point{X: c.X + dx, Y: c.Y + dy}
	}
	return Pattern{Name: p.Name, Cells: cells}
}

// Seed brings every cell of p to life on g. Other cells keep their state.
// If p does not fit, g is left untouched and a *ConfigError is returned.
func Seed(g *model.Grid, p Pattern) error {
	needW, needH := p.Bounds()
	gridW, gridH := g.Dimensions()
	if needW > gridW || needH > gridH {
		return errors.WithStack(&ConfigError{
			Pattern: p.Name,
			NeedW:   needW,
			NeedH:   needH,
			GridW:   gridW,
			GridH:   gridH,
		})
	}
	for _, c := range p.Cells {
		if c.X < 0 || c.Y < 0 {
			return errors.Wrapf(ErrPatternTooLarge, "[Seed] pattern %q has negative cell (%d, %d)", p.Name, c.X, c.Y)
		}
	}

	for _, c := range p.Cells {
		g.Set(c.X, c.Y, true)
	}
	return nil
}

var registry = map[string]func() Pattern{
	"gosper-gun": GosperGun,
	"glider":     Glider,
	"blinker":    Blinker,
	"block":      Block,
}

// Lookup returns the preset registered under name
func Lookup(name string) (Pattern, error) {
	build, ok := registry[name]
	if !ok {
		return Pattern{}, errors.Wrapf(ErrUnknownPattern, "[Lookup] %q (known: %v)", name, Names())
	}
	return build(), nil
}

// Names lists the registered presets in alphabetical order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GosperGun is the 36-cell gun that emits a glider every 30 generations
func GosperGun() Pattern {
	return Pattern{Name: "gosper-gun", Cells: slices.Clone(gosperGunCells)}
}

var gosperGunCells = []model.Point{
	{X: 5, Y: 9}, {X: 6, Y: 9}, {X: 5, Y: 10}, {X: 6, Y: 10},
	{X: 17, Y: 7}, {X: 18, Y: 7}, {X: 16, Y: 8}, {X: 15, Y: 9}, {X: 15, Y: 10}, {X: 15, Y: 11}, {X: 16, Y: 12}, {X: 17, Y: 13}, {X: 18, Y: 13},
	{X: 19, Y: 10},
	{X: 20, Y: 8}, {X: 21, Y: 9}, {X: 21, Y: 10}, {X: 21, Y: 11}, {X: 20, Y: 12}, {X: 22, Y: 10},
	{X: 25, Y: 7}, {X: 25, Y: 8}, {X: 25, Y: 9}, {X: 26, Y: 7}, {X: 26, Y: 8}, {X: 26, Y: 9}, {X: 27, Y: 6}, {X: 27, Y: 10},
	{X: 29, Y: 6}, {X: 29, Y: 5}, {X: 29, Y: 10}, {X: 29, Y: 11},
	{X: 39, Y: 7}, {X: 39, Y: 8}, {X: 40, Y: 7}, {X: 40, Y: 8},
}

// Glider is the smallest spaceship, heading down and to the right
func Glider() Pattern {
	return Pattern{Name: "glider", Cells: []model.Point{
		{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
	}}
}

// Blinker is a period-2 oscillator, placed one row down so its vertical phase
// stays on the grid
func Blinker() Pattern {
	return Pattern{Name: "blinker", Cells: []model.Point{
		{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2},
	}}
}

// Block is a 2x2 still life
func Block() Pattern {
	return Pattern{Name: "block", Cells: []model.Point{
		{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2},
	}}
}

const gunSpacing = 50

// GunArray lines up as many gosper guns as fit in width, gunSpacing columns apart.
// A width narrower than one gun yields a single gun, which Seed will reject.
func GunArray(width int) Pattern {
	gun := GosperGun()
	gunW, _ := gun.Bounds()

	count := 1
	if width > gunW {
		count += (width - gunW) / gunSpacing
	}

	cells := make([]model.Point, 0, count*len(gun.Cells))
	for i := range count {
		cells = append(cells, gun.Offset(i*gunSpacing, 0).Cells...)
	}
	return Pattern{Name: "gun-array", Cells: cells}
}
