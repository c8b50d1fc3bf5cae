// Command textfx renders a text particle effect headless to PNG or GIF, or
// animates it in the terminal.
//
// Usage:
//
//	textfx -text HELLO -frames 120 -out hello.gif
//	textfx -text HELLO -term
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"

	"github.com/gogpu/textfx"
	"github.com/gogpu/textfx/integration/termhost"
	"github.com/gogpu/textfx/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "textfx: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	cli.Flags
	frames int
	out    string
	term   bool
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	var o options
	fs := flag.NewFlagSet("textfx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	o.Register(fs)
	fs.IntVar(&o.frames, "frames", 60, "frames to render headless")
	fs.StringVar(&o.out, "out", "textfx.png", "output file (.png writes the last frame, .gif the animation)")
	fs.BoolVar(&o.term, "term", false, "animate in the terminal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	setup, err := o.Resolve(stderr)
	if err != nil {
		return err
	}
	if o.term {
		return runTerminal(ctx, &o, setup)
	}
	return renderHeadless(ctx, &o, setup)
}

func renderHeadless(ctx context.Context, o *options, setup *cli.Setup) error {
	ext := strings.ToLower(filepath.Ext(o.out))
	if ext != ".png" && ext != ".gif" {
		return fmt.Errorf("unsupported output %q: want .png or .gif", o.out)
	}
	if o.frames < 1 {
		return fmt.Errorf("frames=%d must be at least 1", o.frames)
	}

	bg := setup.Config.BackgroundRGBA()
	anim := &gif.GIF{}
	var frame []byte

	opts := append([]textfx.Option{textfx.WithConfig(setup.Config)}, setup.Options...)
	if ext == ".gif" {
		opts = append(opts, textfx.OnFrame(func(s *textfx.Surface) {
			frame = s.Flatten(frame, bg)
			w, h := s.Size()
			anim.Image = append(anim.Image, toPaletted(frame, w, h))
			anim.Delay = append(anim.Delay, 2)
		}))
	}

	fx, err := textfx.New(setup.Element(&o.Flags), opts...)
	if err != nil {
		return err
	}
	defer func() { _ = fx.Close() }()

	if err := fx.Run(ctx, textfx.Frames(o.frames)); err != nil {
		return err
	}

	if ext == ".gif" {
		return writeGIF(o.out, anim)
	}
	s := fx.Surface()
	w, h := s.Size()
	if w == 0 || h == 0 {
		return fmt.Errorf("nothing to write: surface is %dx%d", w, h)
	}
	pm := gg.NewPixmap(w, h)
	s.Flatten(pm.Data()[:0], bg)
	if err := pm.SavePNG(o.out); err != nil {
		return err
	}
	textfx.Logger().Info("textfx: frame written", "path", o.out, "width", w, "height", h)
	return nil
}

func toPaletted(rgba []byte, w, h int) *image.Paletted {
	src := &image.RGBA{Pix: rgba, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	dst := image.NewPaletted(src.Rect, palette.Plan9)
	draw.FloydSteinberg.Draw(dst, dst.Rect, src, image.Point{})
	return dst
}

func writeGIF(path string, anim *gif.GIF) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	textfx.Logger().Info("textfx: animation written", "path", path, "frames", len(anim.Image))
	return f.Close()
}

func runTerminal(ctx context.Context, o *options, setup *cli.Setup) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// Terminal pixels are cells; keep the text within the rows.
	_, rows := screen.Size()
	font := setup.Font
	font.Size = min(font.Size, float64(rows*2)*0.8)

	term, err := termhost.New(screen, o.Text, font, setup.Config, 0, setup.Options...)
	if err != nil {
		return err
	}
	return term.Run(ctx)
}
