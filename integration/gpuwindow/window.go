// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpuwindow shows a text particle effect in a gogpu window.
//
// Frames are driven by the window's draw callback while an animation token
// is held, so the window idles at 0% CPU when paused. Each frame is
// flattened over the background color into a ggcanvas and rendered
// directly to the window surface.
//
//	el := textfx.NewElement("GOGPU", font, 800, 300)
//	w, err := gpuwindow.New(el, gpuwindow.Config{Title: "textfx"})
//	if err != nil { ... }
//	err = w.Run()
//
// Space pauses and resumes the animation.
package gpuwindow

import (
	"fmt"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/textfx"
)

// Config configures the window.
type Config struct {
	// Title is the window title.
	Title string

	// Effect configures the particle effect. The zero value means
	// textfx.DefaultConfig().
	Effect textfx.Config
}

// Window is a gogpu application presenting one Effect.
type Window struct {
	app *gogpu.App
	el  *textfx.Element
	fx  *textfx.Effect
	bg  gg.RGBA

	canvas *ggcanvas.Canvas
	token  *gogpu.AnimationToken
	frame  []byte

	started bool
	paused  bool
}

// New creates the window sized to the element bounds and attaches an
// effect to el. opts are applied after cfg.Effect.
func New(el *textfx.Element, cfg Config, opts ...textfx.Option) (*Window, error) {
	if cfg.Effect == (textfx.Config{}) {
		cfg.Effect = textfx.DefaultConfig()
	}
	fx, err := textfx.New(el, append([]textfx.Option{textfx.WithConfig(cfg.Effect)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gpuwindow: %w", err)
	}

	width, height := el.Bounds()
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(width, height).
		WithContinuousRender(false))

	w := &Window{
		app: app,
		el:  el,
		fx:  fx,
		bg:  cfg.Effect.BackgroundRGBA(),
	}
	app.OnDraw(w.draw)
	app.EventSource().OnKeyPress(w.keyPress)
	app.OnClose(w.close)
	return w, nil
}

// Effect returns the effect shown in the window.
func (w *Window) Effect() *textfx.Effect { return w.fx }

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	return w.app.Run()
}

func (w *Window) draw(dc *gogpu.Context) {
	if !w.started {
		w.started = true
		w.token = w.app.StartAnimation()
		textfx.Logger().Info("gpuwindow: animation started", "backend", dc.Backend())
	}

	width, height := dc.Width(), dc.Height()
	if width <= 0 || height <= 0 {
		return
	}
	if w.el.SetBounds(width, height) {
		w.fx.NotifyResize()
	}

	if err := w.ensureCanvas(width, height); err != nil {
		textfx.Logger().Error("gpuwindow: canvas unavailable", "err", err)
		return
	}

	if !w.paused {
		w.fx.Step()
	}

	if err := w.canvas.Draw(w.present); err != nil {
		textfx.Logger().Warn("gpuwindow: draw failed", "err", err)
	}
	sw, sh := dc.SurfaceSize()
	if err := w.canvas.RenderDirect(dc.RenderTarget().SurfaceView(), sw, sh); err != nil {
		textfx.Logger().Warn("gpuwindow: render failed", "err", err)
	}
}

// ensureCanvas creates the canvas on first use and keeps it at the window
// size.
func (w *Window) ensureCanvas(width, height int) error {
	if w.canvas == nil {
		provider := w.app.GPUContextProvider()
		if provider == nil {
			return fmt.Errorf("gpuwindow: no GPU context provider")
		}
		canvas, err := ggcanvas.New(provider, width, height)
		if err != nil {
			return err
		}
		w.canvas = canvas
		return nil
	}
	if cw, ch := w.canvas.Size(); cw != width || ch != height {
		return w.canvas.Resize(width, height)
	}
	return nil
}

// present copies the flattened frame into the canvas. Until a pending
// resize is applied the surface may be smaller than the canvas; the
// uncovered area shows the background.
func (w *Window) present(cc *gg.Context) {
	cc.ClearWithColor(w.bg)
	w.frame = w.fx.Surface().Flatten(w.frame, w.bg)
	blit(cc.ResizeTarget(), w.frame, w.fx.Surface())
}

func (w *Window) keyPress(key gpucontext.Key, _ gpucontext.Modifiers) {
	if key != gpucontext.KeySpace {
		return
	}
	w.paused = !w.paused
	if w.paused {
		if w.token != nil {
			w.token.Stop()
			w.token = nil
		}
		textfx.Logger().Info("gpuwindow: paused")
		return
	}
	w.token = w.app.StartAnimation()
	textfx.Logger().Info("gpuwindow: resumed")
}

func (w *Window) close() {
	if w.token != nil {
		w.token.Stop()
		w.token = nil
	}
	if err := w.fx.Close(); err != nil {
		textfx.Logger().Warn("gpuwindow: close failed", "err", err)
	}
	gg.CloseAccelerator()
}

// blit copies the RGBA rows of a frame of the surface's size into dst,
// clipped to the smaller of the two.
func blit(dst *gg.Pixmap, frame []byte, s *textfx.Surface) {
	sw, sh := s.Size()
	if len(frame) < sw*sh*4 {
		return
	}
	w := min(sw, dst.Width())
	h := min(sh, dst.Height())
	data := dst.Data()
	for y := range h {
		copy(data[y*dst.Width()*4:y*dst.Width()*4+w*4], frame[y*sw*4:y*sw*4+w*4])
	}
}
