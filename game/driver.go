// Package game runs the frame loop: render, wait, advance, render again.
package game

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/sheikhrachel/termlife/metrics"
	"github.com/sheikhrachel/termlife/model"
	"github.com/sheikhrachel/termlife/render"
	"github.com/sheikhrachel/termlife/utils"
)

// Options controls the frame loop
type Options struct {
	// Iterations is the number of generations to advance; 0 means until ctx ends
	Iterations    int
	FrameDelay    time.Duration
	InitialPause  time.Duration
	UseMemoryPool bool
}

// OptionsFromConfig picks the loop settings out of a run config
func OptionsFromConfig(c utils.Config) Options {
	return Options{
		Iterations:    c.Run.Iterations,
		FrameDelay:    c.Run.FrameDelay,
		InitialPause:  c.Run.InitialPause,
		UseMemoryPool: c.Grid.UseMemoryPool,
	}
}

// Driver owns the current generation and hands it to the renderer each frame
type Driver struct {
	renderer render.Renderer
	opts     Options
	logger   zerolog.Logger
	metrics  *metrics.Collector
	stats    *utils.Stats
	pool     *model.GridPool

	frameDelay atomic.Int64
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewDriver wires a driver. m may be nil.
func NewDriver(r render.Renderer, opts Options, logger zerolog.Logger, m *metrics.Collector) *Driver {
	d := &Driver{
		renderer: r,
		opts:     opts,
		logger:   logger,
		metrics:  m,
		stats:    utils.NewStats(),
		sleep:    sleepContext,
	}
	if opts.UseMemoryPool {
		d.pool = model.NewGridPool()
	}
	d.frameDelay.Store(int64(opts.FrameDelay))
	return d
}

// SetFrameDelay changes the pause between frames while the loop is running
func (d *Driver) SetFrameDelay(delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	if old := time.Duration(d.frameDelay.Swap(int64(delay))); old != delay {
		d.logger.Info().Dur("old", old).Dur("new", delay).Msg("frame delay changed")
	}
}

// FrameDelay returns the current pause between frames
func (d *Driver) FrameDelay() time.Duration {
	return time.Duration(d.frameDelay.Load())
}

// Stats returns the run statistics gathered so far
func (d *Driver) Stats() *utils.Stats {
	return d.stats
}

// Run draws initial, waits the initial pause, then advances and draws until
// the iteration count is reached or ctx is cancelled. Cancellation is a
// normal stop and returns a nil error. Run takes ownership of initial; with
// the memory pool enabled retired generations are reused, so callers must not
// keep them. The last generation is returned.
func (d *Driver) Run(ctx context.Context, initial *model.Grid) (*model.Grid, error) {
	grid := initial
	if err := d.draw(grid, 0); err != nil {
		return grid, err
	}

	if err := d.sleep(ctx, d.opts.InitialPause); err != nil {
		d.logger.Debug().Msg("stopped during initial pause")
		return grid, nil
	}

	lastFrame := time.Now()
	for generation := 1; d.opts.Iterations == 0 || generation <= d.opts.Iterations; generation++ {
		if ctx.Err() != nil {
			d.logger.Debug().Int("generation", generation-1).Msg("stopped")
			return grid, nil
		}

		start := time.Now()
		next := grid.NextGeneration(d.pool)
		if d.metrics != nil {
			d.metrics.ObserveAdvance(time.Since(start))
		}
		model.GridToPool(grid, d.pool)
		grid = next

		if err := d.draw(grid, generation); err != nil {
			return grid, err
		}

		now := time.Now()
		d.stats.Update(generation, d.stats.Population, now.Sub(lastFrame))
		lastFrame = now

		if err := d.sleep(ctx, d.FrameDelay()); err != nil {
			d.logger.Debug().Int("generation", generation).Msg("stopped")
			return grid, nil
		}
	}

	d.logger.Info().Int("iterations", d.opts.Iterations).Msg("iteration limit reached")
	return grid, nil
}

func (d *Driver) draw(grid *model.Grid, generation int) error {
	population := grid.CountLivingCells()
	d.stats.Population = population

	start := time.Now()
	err := d.renderer.Render(grid)
	if d.metrics != nil {
		d.metrics.ObserveRender(population, time.Since(start), err)
	}
	if err != nil {
		d.logger.Error().Err(err).Int("generation", generation).Msg("render failed")
		return errors.Wrapf(err, "[Driver.Run] failed to render generation %d", generation)
	}

	d.logger.Debug().
		Int("generation", generation).
		Int("population", population).
		Msg("frame")
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
