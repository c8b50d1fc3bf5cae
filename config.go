package textfx

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultCount       = 120
	DefaultResizeDelay = 100 * time.Millisecond
	DefaultMargin      = 10.0
	DefaultGlowOpacity = 0.3
	DefaultGlowSize    = 2.0
	DefaultColor       = "#ffffff"
	DefaultAccent      = "#64ffda"
	DefaultBackground  = "#0a192f"
)

// Range is a closed interval [Min, Max] that particle attributes are drawn
// from uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Lerp maps t in [0, 1) onto the range.
func (r Range) Lerp(t float64) float64 {
	return r.Min + t*(r.Max-r.Min)
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Config holds the tunable constants of the effect.
//
// The zero value is not useful; start from DefaultConfig or LoadConfig.
type Config struct {
	// Count is the number of particles simulated per frame.
	Count int `yaml:"count"`

	// ResizeDelay is the settle time before a resize regenerates the
	// surface and the text mask. DefaultResizeDelay is the intended
	// minimum; shorter delays, zero included, are accepted for tests and
	// hosts that already coalesce resize events, at the cost of
	// regenerating mid-drag.
	ResizeDelay time.Duration `yaml:"resizeDelay"`

	Size          Range `yaml:"size"`
	Opacity       Range `yaml:"opacity"`
	SpeedY        Range `yaml:"speedY"`
	SpeedX        Range `yaml:"speedX"`
	RotationSpeed Range `yaml:"rotationSpeed"`

	// Margin is how far, in pixels, a particle may leave the surface before
	// it wraps vertically or is re-placed horizontally.
	Margin float64 `yaml:"margin"`

	// GlowOpacity and GlowSize scale the opacity and radius of the accent
	// circle drawn around each particle.
	GlowOpacity float64 `yaml:"glowOpacity"`
	GlowSize    float64 `yaml:"glowSize"`

	// Color is the particle core color, Accent the glow color and
	// Background the color hosts clear the window to. All are hex strings.
	Color      string `yaml:"color"`
	Accent     string `yaml:"accent"`
	Background string `yaml:"background"`
}

// DefaultConfig returns the configuration the effect ships with.
func DefaultConfig() Config {
	return Config{
		Count:         DefaultCount,
		ResizeDelay:   DefaultResizeDelay,
		Size:          Range{Min: 0.5, Max: 2.5},
		Opacity:       Range{Min: 0.3, Max: 0.8},
		SpeedY:        Range{Min: 0.5, Max: 2.5},
		SpeedX:        Range{Min: -0.25, Max: 0.25},
		RotationSpeed: Range{Min: -0.01, Max: 0.01},
		Margin:        DefaultMargin,
		GlowOpacity:   DefaultGlowOpacity,
		GlowSize:      DefaultGlowSize,
		Color:         DefaultColor,
		Accent:        DefaultAccent,
		Background:    DefaultBackground,
	}
}

// Validate reports the first problem found in c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: count=%d must not be negative", ErrInvalidConfig, c.Count)
	}
	if c.ResizeDelay < 0 {
		return fmt.Errorf("%w: resizeDelay=%v must not be negative", ErrInvalidConfig, c.ResizeDelay)
	}

	ranges := []struct {
		name string
		r    Range
	}{
		{"size", c.Size},
		{"opacity", c.Opacity},
		{"speedY", c.SpeedY},
		{"speedX", c.SpeedX},
		{"rotationSpeed", c.RotationSpeed},
	}
	for _, nr := range ranges {
		if nr.r.Min > nr.r.Max {
			return fmt.Errorf("%w: %s min=%g > max=%g", ErrInvalidConfig, nr.name, nr.r.Min, nr.r.Max)
		}
	}
	if c.Size.Min < 0 {
		return fmt.Errorf("%w: size min=%g must not be negative", ErrInvalidConfig, c.Size.Min)
	}
	if c.Opacity.Min < 0 || c.Opacity.Max > 1 {
		return fmt.Errorf("%w: opacity must lie within [0, 1]", ErrInvalidConfig)
	}
	if c.Margin < 0 || c.GlowOpacity < 0 || c.GlowSize < 0 {
		return fmt.Errorf("%w: margin, glowOpacity and glowSize must not be negative", ErrInvalidConfig)
	}

	for name, hex := range map[string]string{"color": c.Color, "accent": c.Accent, "background": c.Background} {
		if !isHexColor(hex) {
			return fmt.Errorf("%w: %s=%q is not a hex color", ErrInvalidConfig, name, hex)
		}
	}
	return nil
}

// ColorRGBA returns the particle core color.
func (c Config) ColorRGBA() gg.RGBA { return gg.Hex(c.Color) }

// AccentRGBA returns the glow color.
func (c Config) AccentRGBA() gg.RGBA { return gg.Hex(c.Accent) }

// BackgroundRGBA returns the host background color.
func (c Config) BackgroundRGBA() gg.RGBA { return gg.Hex(c.Background) }

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Fields missing from data keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("textfx: failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. See ParseConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return Config{}, fmt.Errorf("textfx: failed to read config: %w", err)
	}
	return ParseConfig(data)
}

func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isHex := ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
		if !isHex {
			return false
		}
	}
	return true
}
