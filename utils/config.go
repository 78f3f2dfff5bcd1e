package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "TERMLIFE"
	configName     = "termlife"
	RendererScreen = "screen"
	RendererText   = "text"
	PatternRandom  = "random"
	PatternGuns    = "gun-array"
)

// ErrInvalidConfig is wrapped by Validate
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the configuration for a run
type Config struct {
	Grid    GridConfig    `mapstructure:"grid"`
	Run     RunConfig     `mapstructure:"run"`
	Render  RenderConfig  `mapstructure:"render"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// GridConfig describes the board and how it is seeded
type GridConfig struct {
	// Width and Height override the terminal size when positive
	Width         int     `mapstructure:"width"`
	Height        int     `mapstructure:"height"`
	Pattern       string  `mapstructure:"pattern"`
	PatternFile   string  `mapstructure:"pattern_file"`
	Density       float64 `mapstructure:"density"`
	Seed          int64   `mapstructure:"seed"`
	UseMemoryPool bool    `mapstructure:"use_memory_pool"`
}

// RunConfig controls the frame loop
type RunConfig struct {
	// Iterations is the number of generations to advance; 0 runs until interrupted
	Iterations   int           `mapstructure:"iterations"`
	FrameDelay   time.Duration `mapstructure:"frame_delay"`
	InitialPause time.Duration `mapstructure:"initial_pause"`
	WatchConfig  bool          `mapstructure:"watch_config"`
}

// RenderConfig selects and styles the renderer
type RenderConfig struct {
	Renderer       string `mapstructure:"renderer"`
	Glyph          string `mapstructure:"glyph"`
	Color          string `mapstructure:"color"`
	FallbackWidth  int    `mapstructure:"fallback_width"`
	FallbackHeight int    `mapstructure:"fallback_height"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// MetricsConfig holds the optional metrics endpoint
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// GlyphRune returns the configured glyph as a single rune
func (c RenderConfig) GlyphRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Glyph)
	return r
}

// setDefaults mirrors the reference program: a gosper gun, 30ms between
// frames, a one second pause before the first advance, run forever
func setDefaults(v *viper.Viper) {
	v.SetDefault("grid.width", 0)
	v.SetDefault("grid.height", 0)
	v.SetDefault("grid.pattern", "gosper-gun")
	v.SetDefault("grid.pattern_file", "")
	v.SetDefault("grid.density", 0.5)
	v.SetDefault("grid.seed", 0)
	v.SetDefault("grid.use_memory_pool", true)

	v.SetDefault("run.iterations", 0)
	v.SetDefault("run.frame_delay", 30*time.Millisecond)
	v.SetDefault("run.initial_pause", time.Second)
	v.SetDefault("run.watch_config", false)

	v.SetDefault("render.renderer", RendererScreen)
	v.SetDefault("render.glyph", "*")
	v.SetDefault("render.color", "")
	v.SetDefault("render.fallback_width", 80)
	v.SetDefault("render.fallback_height", 24)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	v.SetDefault("metrics.addr", "")
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"width":           "grid.width",
	"height":          "grid.height",
	"pattern":         "grid.pattern",
	"pattern-file":    "grid.pattern_file",
	"density":         "grid.density",
	"seed":            "grid.seed",
	"pool":            "grid.use_memory_pool",
	"iterations":      "run.iterations",
	"frame-delay":     "run.frame_delay",
	"initial-pause":   "run.initial_pause",
	"watch-config":    "run.watch_config",
	"renderer":        "render.renderer",
	"glyph":           "render.glyph",
	"color":           "render.color",
	"log-level":       "log.level",
	"log-format":      "log.format",
	"log-file":        "log.file",
	"metrics-addr":    "metrics.addr",
	"fallback-width":  "render.fallback_width",
	"fallback-height": "render.fallback_height",
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("failed to decode default config: " + err.Error())
	}
	return cfg
}

// NewViper builds a viper instance layered as defaults < config file < env < flags.
// An explicit path must exist; without one termlife.yaml is looked up in the
// working directory and ~/.config/termlife and may be absent.
func NewViper(path string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/termlife")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "[NewViper] failed to read config file: %+v", path)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "[NewViper] failed to bind flag: %s", name)
				}
			}
		}
	}

	return v, nil
}

// Decode unmarshals and validates the current viper state
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "[Decode] failed to unmarshal config")
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads configuration from path (optional), the environment and flags
func LoadConfig(path string, flags *pflag.FlagSet) (Config, *viper.Viper, error) {
	v, err := NewViper(path, flags)
	if err != nil {
		return Config{}, nil, err
	}
	cfg, err := Decode(v)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, v, nil
}

// WatchConfig re-decodes the config file whenever it changes. Invalid edits
// are reported through onError and otherwise ignored.
func WatchConfig(v *viper.Viper, onChange func(Config), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := Decode(v)
		if err != nil {
			if onError != nil {
				onError(errors.Wrapf(err, "[WatchConfig] ignoring change to %s", e.Name))
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}

// Validate checks the configuration values
func Validate(c Config) error {
	invalid := func(format string, args ...any) error {
		return errors.Wrap(ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		return invalid("grid.width and grid.height must be non-negative")
	}
	if c.Grid.Pattern == "" && c.Grid.PatternFile == "" {
		return invalid("grid.pattern or grid.pattern_file must be set")
	}
	if c.Grid.Density < 0 || c.Grid.Density > 1 {
		return invalid("grid.density must be between 0 and 1")
	}

	if c.Run.Iterations < 0 {
		return invalid("run.iterations must be non-negative")
	}
	if c.Run.FrameDelay < 0 {
		return invalid("run.frame_delay must be non-negative")
	}
	if c.Run.InitialPause < 0 {
		return invalid("run.initial_pause must be non-negative")
	}

	switch c.Render.Renderer {
	case RendererScreen, RendererText:
	default:
		return invalid("render.renderer must be %q or %q", RendererScreen, RendererText)
	}
	if utf8.RuneCountInString(c.Render.Glyph) != 1 {
		return invalid("render.glyph must be a single character")
	}
	if c.Render.FallbackWidth <= 0 || c.Render.FallbackHeight <= 0 {
		return invalid("render fallback dimensions must be positive")
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level: %v", err)
	}
	switch c.Log.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return invalid("log.format must be %q or %q", LogFormatConsole, LogFormatJSON)
	}

	return nil
}
