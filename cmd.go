package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sheikhrachel/termlife/patterns"
	"github.com/sheikhrachel/termlife/utils"
)

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "termlife",
		Short: "Conway's Game of Life in the terminal",
		Long: `termlife seeds a grid with a pattern or random noise and animates it in the
terminal until the iteration limit is reached or it is interrupted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, configPath)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./termlife.yaml or ~/.config/termlife/termlife.yaml)")
	addRunFlags(rootCmd.Flags())
	rootCmd.AddCommand(newPatternsCmd())
	return rootCmd
}

// addRunFlags declares every flag that maps onto a config key. Defaults are
// shown in help only; the config layer owns the real defaults.
func addRunFlags(fs *pflag.FlagSet) {
	d := utils.DefaultConfig()

	fs.Int("width", d.Grid.Width, "grid width in cells (0 uses the terminal width)")
	fs.Int("height", d.Grid.Height, "grid height in cells (0 uses the terminal height)")
	fs.StringP("pattern", "p", d.Grid.Pattern, fmt.Sprintf("starting pattern: a preset, %q or %q", utils.PatternRandom, utils.PatternGuns))
	fs.String("pattern-file", d.Grid.PatternFile, "YAML pattern file, overrides --pattern")
	fs.Float64("density", d.Grid.Density, "probability of a live cell for random seeding")
	fs.Int64("seed", d.Grid.Seed, "random seed (0 picks one from the clock)")
	fs.Bool("pool", d.Grid.UseMemoryPool, "reuse grid buffers between generations")

	fs.IntP("iterations", "n", d.Run.Iterations, "generations to advance (0 runs until interrupted)")
	fs.Duration("frame-delay", d.Run.FrameDelay, "pause between frames")
	fs.Duration("initial-pause", d.Run.InitialPause, "pause after the first frame")
	fs.Bool("watch-config", d.Run.WatchConfig, "apply frame delay changes from the config file while running")

	fs.StringP("renderer", "r", d.Render.Renderer, fmt.Sprintf("renderer: %q or %q", utils.RendererScreen, utils.RendererText))
	fs.String("glyph", d.Render.Glyph, "character drawn for a live cell")
	fs.String("color", d.Render.Color, "live cell colour, hex or name")
	fs.Int("fallback-width", d.Render.FallbackWidth, "width used when output is not a terminal")
	fs.Int("fallback-height", d.Render.FallbackHeight, "height used when output is not a terminal")

	fs.String("log-level", d.Log.Level, "debug, info, warn or error")
	fs.String("log-format", d.Log.Format, fmt.Sprintf("%q or %q", utils.LogFormatConsole, utils.LogFormatJSON))
	fs.String("log-file", d.Log.File, "write logs to this file instead of stderr")

	fs.String("metrics-addr", d.Metrics.Addr, "serve Prometheus metrics on this address, e.g. :9090")
}

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the built-in patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range patterns.Names() {
				p, err := patterns.Lookup(name)
				if err != nil {
					return err
				}
				w, h := p.Bounds()
				fmt.Fprintf(out, "%-12s %3d cells  needs %dx%d\n", name, len(p.Cells), w, h)
			}
			fmt.Fprintf(out, "%-12s random cells at --density\n", utils.PatternRandom)
			fmt.Fprintf(out, "%-12s gosper guns across the grid width\n", utils.PatternGuns)
			return nil
		},
	}
}
