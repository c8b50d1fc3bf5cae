// Package cli holds the flags and setup shared by the textfx commands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/textfx"
)

// Flags are the options every textfx command accepts.
type Flags struct {
	Text    string
	Font    string
	Width   int
	Height  int
	Count   int
	Seed    uint64
	Config  string
	Verbose bool
}

// Register defines the shared flags on fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Text, "text", "TEXTFX", "text the particles are shaped into")
	fs.StringVar(&f.Font, "font", "bold 120px Go", "CSS font shorthand")
	fs.IntVar(&f.Width, "width", 800, "surface width in pixels")
	fs.IntVar(&f.Height, "height", 240, "surface height in pixels")
	fs.IntVar(&f.Count, "count", -1, "particle count (-1 keeps the configured count)")
	fs.Uint64Var(&f.Seed, "seed", 0, "random seed (0 seeds from the clock)")
	fs.StringVar(&f.Config, "config", "", "YAML config file")
	fs.BoolVar(&f.Verbose, "v", false, "debug logging")
}

// Setup is the resolved state of the shared flags.
type Setup struct {
	Font    textfx.Font
	Config  textfx.Config
	Options []textfx.Option
}

// Element returns a host element of the configured size.
func (s *Setup) Element(f *Flags) *textfx.Element {
	return textfx.NewElement(f.Text, s.Font, f.Width, f.Height)
}

// Resolve installs the logger on w, loads the config file and parses the
// font.
func (f *Flags) Resolve(w io.Writer) (*Setup, error) {
	level := slog.LevelInfo
	if f.Verbose {
		level = slog.LevelDebug
	}
	textfx.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))

	cfg := textfx.DefaultConfig()
	if f.Config != "" {
		var err error
		if cfg, err = textfx.LoadConfig(f.Config); err != nil {
			return nil, err
		}
	}

	font, err := textfx.ParseFont(f.Font)
	if err != nil {
		return nil, err
	}
	if f.Width < 0 || f.Height < 0 {
		return nil, fmt.Errorf("size %dx%d must not be negative", f.Width, f.Height)
	}

	var opts []textfx.Option
	if f.Count >= 0 {
		opts = append(opts, textfx.WithCount(f.Count))
	}
	if f.Seed != 0 {
		opts = append(opts, textfx.WithSeed(f.Seed))
	}
	return &Setup{Font: font, Config: cfg, Options: opts}, nil
}
