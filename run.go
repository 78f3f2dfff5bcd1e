package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/termlife/game"
	"github.com/sheikhrachel/termlife/metrics"
	"github.com/sheikhrachel/termlife/model"
	"github.com/sheikhrachel/termlife/render"
	"github.com/sheikhrachel/termlife/utils"
)

func run(cmd *cobra.Command, configPath string) error {
	cfg, v, err := utils.LoadConfig(configPath, cmd.Flags())
	if err != nil {
		return err
	}

	logOut, release, err := openLogOutput(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer release()

	logger, err := utils.NewLogger(cfg.Log, logOut)
	if err != nil {
		return err
	}

	renderer, err := newRenderer(cfg.Render, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeRenderer(renderer, logger)

	width, height, err := game.GridSize(cfg.Grid, renderer)
	if err != nil {
		return err
	}
	grid, err := game.NewInitialGrid(cfg.Grid, width, height, logger)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	driver := game.NewDriver(renderer, game.OptionsFromConfig(cfg), logger, collector)
	if cfg.Run.WatchConfig {
		watchFrameDelay(v, driver, logger)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = runLoop(ctx, cfg, renderer, driver, grid, collector, logger)
	logger.Info().Object("stats", driver.Stats()).Msg("run finished")
	return err
}

// runLoop runs the driver alongside its helpers: the Ctrl-C listener for the
// full-screen renderer and the optional metrics server. All of them stop once
// the driver returns.
func runLoop(
	ctx context.Context,
	cfg utils.Config,
	renderer render.Renderer,
	driver *game.Driver,
	grid *model.Grid,
	collector *metrics.Collector,
	logger zerolog.Logger,
) error {
	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	g.Go(func() error {
		defer cancel()
		// the screen must be released here so its event loop ends
		defer closeRenderer(renderer, logger)
		_, err := driver.Run(runCtx, grid)
		return err
	})

	if sr, ok := renderer.(*render.ScreenRenderer); ok {
		g.Go(func() error {
			err := sr.WaitForInterrupt()
			if errors.Is(err, render.ErrInterrupted) {
				logger.Info().Msg("interrupted")
				cancel()
				return nil
			}
			return err
		})
	}

	if cfg.Metrics.Addr != "" {
		g.Go(func() error {
			return metrics.Serve(runCtx, cfg.Metrics.Addr, collector.Handler(), logger)
		})
	}

	return g.Wait()
}

func newRenderer(c utils.RenderConfig, out io.Writer) (render.Renderer, error) {
	opts := render.Options{
		Glyph:          c.GlyphRune(),
		Color:          c.Color,
		FallbackWidth:  c.FallbackWidth,
		FallbackHeight: c.FallbackHeight,
	}

	switch c.Renderer {
	case utils.RendererText:
		return render.NewTextRenderer(out, opts), nil
	case utils.RendererScreen:
		r, err := render.NewScreenRenderer(nil, opts)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, errors.Wrapf(utils.ErrInvalidConfig, "unknown renderer %q", c.Renderer)
	}
}

func closeRenderer(r render.Renderer, logger zerolog.Logger) {
	if err := r.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to restore terminal")
	}
}

// openLogOutput picks where logs go. A log file is used as is; otherwise logs
// are held back until the renderer has given the terminal back.
func openLogOutput(c utils.LogConfig, stderr io.Writer) (io.Writer, func(), error) {
	if c.File != "" {
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "[openLogOutput] failed to open log file: %+v", c.File)
		}
		return f, func() { _ = f.Close() }, nil
	}

	deferred := utils.NewDeferredWriter(stderr)
	return deferred, func() { _ = deferred.Release() }, nil
}

func watchFrameDelay(v *viper.Viper, driver *game.Driver, logger zerolog.Logger) {
	if v.ConfigFileUsed() == "" {
		logger.Warn().Msg("watch_config set but no config file in use")
		return
	}
	utils.WatchConfig(v,
		func(c utils.Config) { driver.SetFrameDelay(c.Run.FrameDelay) },
		func(err error) { logger.Warn().Err(err).Msg("config reload failed") },
	)
	logger.Info().Str("file", v.ConfigFileUsed()).Msg("watching config")
}
