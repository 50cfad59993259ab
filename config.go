package sctview

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 12.0
	DefaultHeight = 4.5
	DefaultAlpha  = 0.2
	DefaultTicks  = 5
	DefaultPadXY  = 1.0
	DefaultPadZ   = 10.0
	DefaultBefore = 50
	DefaultAfter  = 100
)

// Config holds the display settings shared by the commands. Flags given on
// the command line take precedence.
type Config struct {
	// Width and Height of the rendered figure, in inches.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Show lists the drawn categories: vtx, trk, vtrk, mc.
	Show []string `yaml:"show"`
	// MC selects the drawn MC tracks: all, final or longlived.
	MC string `yaml:"mc"`

	Alpha  float64      `yaml:"alpha"`
	Ticks  int          `yaml:"ticks"`
	Colors ColorConfig  `yaml:"colors"`
	Pad    PadConfig    `yaml:"padding"`
	Cache  CacheConfig  `yaml:"cache"`
	Limits LimitsConfig `yaml:"limits"`
}

type ColorConfig struct {
	Vertices string `yaml:"vtx"`
	Long     string `yaml:"trk"`
	Velo     string `yaml:"vtrk"`
	MC       string `yaml:"mc"`
}

// PadConfig is the margin added around the data when display limits are
// derived from the first events, in mm.
type PadConfig struct {
	XY float64 `yaml:"xy"`
	Z  float64 `yaml:"z"`
}

// CacheConfig is the number of events read around the current one.
type CacheConfig struct {
	Before int64 `yaml:"before"`
	After  int64 `yaml:"after"`
}

// LimitsConfig fixes the display limits. Axes given as empty or
// non-increasing pairs are derived from the data.
type LimitsConfig struct {
	X []float64 `yaml:"x"`
	Y []float64 `yaml:"y"`
	Z []float64 `yaml:"z"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Show:   []string{"vtx", "trk", "vtrk"},
		MC:     "all",
		Alpha:  DefaultAlpha,
		Ticks:  DefaultTicks,
		Colors: ColorConfig{
			Vertices: "#ff0000",
			Long:     "#ff0000",
			Velo:     "#0000ff",
			MC:       "#008000",
		},
		Pad: PadConfig{
			XY: DefaultPadXY,
			Z:  DefaultPadZ,
		},
		Cache: CacheConfig{
			Before: DefaultBefore,
			After:  DefaultAfter,
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

var errConfig = errors.New("invalid config")

// Validate checks value ranges and color syntax.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("figure size %gx%g: %w", c.Width, c.Height, errConfig)
	case c.Alpha < 0 || c.Alpha > 1:
		return fmt.Errorf("alpha %g not in [0, 1]: %w", c.Alpha, errConfig)
	case c.Ticks < 2:
		return fmt.Errorf("ticks %d below 2: %w", c.Ticks, errConfig)
	case c.Pad.XY < 0 || c.Pad.Z < 0:
		return fmt.Errorf("negative padding: %w", errConfig)
	case c.Cache.Before < 0 || c.Cache.After < 1:
		return fmt.Errorf("cache %d before, %d after: %w", c.Cache.Before, c.Cache.After, errConfig)
	}
	for _, s := range []string{c.Colors.Vertices, c.Colors.Long, c.Colors.Velo, c.Colors.MC} {
		if _, err := ParseColor(s); err != nil {
			return err
		}
	}
	for axis, lim := range map[string][]float64{"x": c.Limits.X, "y": c.Limits.Y, "z": c.Limits.Z} {
		if len(lim) != 0 && len(lim) != 2 {
			return fmt.Errorf("limits.%s needs two values: %w", axis, errConfig)
		}
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, errConfig)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, errConfig)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
