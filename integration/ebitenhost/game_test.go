// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenhost

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/gg"
	"github.com/gogpu/textfx"
)

func newTestGame(t *testing.T) (*Game, *textfx.Element) {
	t.Helper()
	el := textfx.NewElement("GO", textfx.Font{Family: "Go", Size: 32}, 160, 60)
	cfg := textfx.DefaultConfig()
	cfg.ResizeDelay = time.Millisecond
	g, err := NewGame(el, cfg, textfx.WithCount(10), textfx.WithSeed(1))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(func() { _ = g.Effect().Close() })
	return g, el
}

func TestUpdate(t *testing.T) {
	g, _ := newTestGame(t)

	for range 3 {
		if err := g.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if got := g.Effect().Driver().Frames(); got != 3 {
		t.Errorf("Frames = %d, want 3", got)
	}

	g.Effect().Stop()
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after Stop = %v, want ebiten.Termination", err)
	}
}

func TestLayout(t *testing.T) {
	g, el := newTestGame(t)

	w, h := g.Layout(320, 100)
	if w != 320 || h != 100 {
		t.Errorf("Layout = %dx%d, want 320x100", w, h)
	}
	if bw, bh := el.Bounds(); bw != 320 || bh != 100 {
		t.Errorf("element bounds = %dx%d, want 320x100", bw, bh)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		_ = g.Update()
		if sw, _ := g.Effect().Surface().Size(); sw == 320 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("surface never picked up the new layout")
		}
		time.Sleep(time.Millisecond)
	}

	if w, h := g.Layout(0, 0); w != 1 || h != 1 {
		t.Errorf("Layout(0, 0) = %dx%d, want 1x1", w, h)
	}
}

func TestToColor(t *testing.T) {
	got := toColor(gg.RGBA{R: 1, G: 0.5, B: 0, A: 0.5})
	want := color.RGBA{R: 128, G: 64, B: 0, A: 128}
	if got != want {
		t.Errorf("toColor = %v, want %v", got, want)
	}
}
