// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ebitenhost runs a text particle effect as an Ebitengine game.
//
// Update is the frame primitive: every tick steps the effect once. Layout
// reports the outside size to the host element, and Draw uploads the
// flattened frame with WritePixels.
package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/gg"
	"github.com/gogpu/textfx"
)

// Game implements ebiten.Game for one Effect.
type Game struct {
	el *textfx.Element
	fx *textfx.Effect
	bg gg.RGBA

	frame []byte
	img   *ebiten.Image
}

// NewGame attaches an effect to el. cfg supplies the background color and
// the effect configuration; opts are applied after it.
func NewGame(el *textfx.Element, cfg textfx.Config, opts ...textfx.Option) (*Game, error) {
	fx, err := textfx.New(el, append([]textfx.Option{textfx.WithConfig(cfg)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Game{el: el, fx: fx, bg: cfg.BackgroundRGBA()}, nil
}

// Effect returns the effect run by the game.
func (g *Game) Effect() *textfx.Effect { return g.fx }

// Update steps the effect. It returns ebiten.Termination once the effect
// has been stopped.
func (g *Game) Update() error {
	if !g.fx.Step() {
		return ebiten.Termination
	}
	return nil
}

// Draw presents the last frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(toColor(g.bg))

	s := g.fx.Surface()
	w, h := s.Size()
	if w == 0 || h == 0 {
		return
	}
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
	}
	g.frame = s.Flatten(g.frame, g.bg)
	g.img.WritePixels(g.frame)
	screen.DrawImage(g.img, nil)
}

// Layout tracks the outside size as the host bounds.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.el.SetBounds(outsideWidth, outsideHeight) {
		g.fx.NotifyResize()
	}
	return max(outsideWidth, 1), max(outsideHeight, 1)
}

// Run opens a resizable window and runs the game until it is closed or the
// effect is stopped. The effect is released on return.
func Run(g *Game, title string) error {
	w, h := g.el.Bounds()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer func() { _ = g.fx.Close() }()

	textfx.Logger().Info("ebitenhost: running", "width", w, "height", h)
	return ebiten.RunGame(g)
}

func toColor(c gg.RGBA) color.RGBA {
	p := c.Premultiply()
	return color.RGBA{
		R: uint8(p.R*255 + 0.5),
		G: uint8(p.G*255 + 0.5),
		B: uint8(p.B*255 + 0.5),
		A: uint8(p.A*255 + 0.5),
	}
}
