// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package termhost renders a text particle effect in a terminal.
//
// Each cell shows two vertically stacked pixels with the upper half block
// '▀': the foreground is the top pixel, the background the bottom one. The
// surface is therefore cols × rows*2 pixels. Terminal resizes feed the
// effect's debounced resize path; q, Esc and Ctrl-C stop the animation.
package termhost

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/gg"
	"github.com/gogpu/textfx"
)

const halfBlock = '▀'

// Terminal presents one Effect on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	el     *textfx.Element
	fx     *textfx.Effect
	bg     tcell.Color

	interval time.Duration
	events   chan tcell.Event
	tick     *time.Ticker

	frame []byte
	bgRGB gg.RGBA
}

// New attaches an effect showing text in font to an initialized screen.
// cfg supplies the colors and effect configuration; opts are applied after
// it. Frames are paced at interval, or textfx.DefaultFrameInterval when it
// is not positive.
func New(screen tcell.Screen, text string, font textfx.Font, cfg textfx.Config, interval time.Duration, opts ...textfx.Option) (*Terminal, error) {
	cols, rows := screen.Size()
	if interval <= 0 {
		interval = textfx.DefaultFrameInterval
	}
	t := &Terminal{
		screen:   screen,
		el:       textfx.NewElement(text, font, cols, rows*2),
		interval: interval,
		events:   make(chan tcell.Event, 16),
		bgRGB:    cfg.BackgroundRGBA(),
	}
	t.bg = rgbColor(t.bgRGB)

	all := append([]textfx.Option{textfx.WithConfig(cfg), textfx.OnFrame(t.draw)}, opts...)
	fx, err := textfx.New(t.el, all...)
	if err != nil {
		return nil, err
	}
	t.fx = fx
	return t, nil
}

// Effect returns the effect shown in the terminal.
func (t *Terminal) Effect() *textfx.Effect { return t.fx }

// Run animates until a quit key is pressed, ctx is done or the effect is
// stopped. It returns nil on a quit key. The caller still owns the screen
// and calls Fini after Run returns.
func (t *Terminal) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go t.pollEvents(ctx)

	t.tick = time.NewTicker(t.interval)
	defer t.tick.Stop()

	err := t.fx.Run(ctx, t)
	if cerr := t.fx.Close(); err == nil {
		err = cerr
	}
	return err
}

func (t *Terminal) pollEvents(ctx context.Context) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// NextFrame implements textfx.FrameSource. Input is handled between frames
// on the frame goroutine.
func (t *Terminal) NextFrame(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-t.events:
			if !t.handle(ev) {
				t.fx.Stop()
				return nil
			}
		case <-t.tick.C:
			return nil
		}
	}
}

// handle processes one event and reports whether to keep running.
func (t *Terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' || ev.Rune() == 'Q' {
				return false
			}
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		if t.el.SetBounds(cols, rows*2) {
			textfx.Logger().Debug("termhost: terminal resized", "cols", cols, "rows", rows)
			t.fx.NotifyResize()
		}
		t.screen.Sync()
	}
	return true
}

// draw renders the composited frame as half-block cells.
func (t *Terminal) draw(s *textfx.Surface) {
	w, h := s.Size()
	t.frame = s.Flatten(t.frame, t.bgRGB)

	cols, rows := t.screen.Size()
	for row := range rows {
		for col := range cols {
			top := t.pixel(col, row*2, w, h)
			bottom := t.pixel(col, row*2+1, w, h)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}

// pixel returns the frame color at (x, y), or the background outside the
// surface.
func (t *Terminal) pixel(x, y, w, h int) tcell.Color {
	if x >= w || y >= h || len(t.frame) < w*h*4 {
		return t.bg
	}
	i := (y*w + x) * 4
	return tcell.NewRGBColor(int32(t.frame[i]), int32(t.frame[i+1]), int32(t.frame[i+2]))
}

func rgbColor(c gg.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R*255+0.5), int32(c.G*255+0.5), int32(c.B*255+0.5))
}
