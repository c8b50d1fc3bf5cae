// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raylibhost runs a text particle effect in a raylib window.
//
// The raylib draw loop is the frame source: every iteration steps the
// effect once and uploads the flattened frame into a texture. raylib must
// be driven from the main OS thread; callers lock it before calling Run.
package raylibhost

import (
	"context"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/gogpu/textfx"
)

// TargetFPS is the frame rate the window loop is capped at.
const TargetFPS = 60

// Run opens a resizable window sized to el and animates the effect until
// the window is closed, ctx is done or the effect is stopped.
func Run(ctx context.Context, el *textfx.Element, cfg textfx.Config, title string, opts ...textfx.Option) error {
	fx, err := textfx.New(el, append([]textfx.Option{textfx.WithConfig(cfg)}, opts...)...)
	if err != nil {
		return err
	}
	defer func() { _ = fx.Close() }()

	w, h := el.Bounds()
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h), title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(TargetFPS)

	bg := cfg.BackgroundRGBA()
	bgColor := rl.NewColor(uint8(bg.R*255+0.5), uint8(bg.G*255+0.5), uint8(bg.B*255+0.5), 255)

	var (
		tex    rl.Texture2D
		frame  []byte
		pixels []color.RGBA
	)
	defer func() {
		if tex.ID != 0 {
			rl.UnloadTexture(tex)
		}
	}()

	textfx.Logger().Info("raylibhost: running", "width", w, "height", h)
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if rl.IsWindowResized() && el.SetBounds(rl.GetScreenWidth(), rl.GetScreenHeight()) {
			fx.NotifyResize()
		}
		if !fx.Step() {
			break
		}

		s := fx.Surface()
		sw, sh := s.Size()
		if sw > 0 && sh > 0 {
			if tex.ID == 0 || int(tex.Width) != sw || int(tex.Height) != sh {
				if tex.ID != 0 {
					rl.UnloadTexture(tex)
				}
				img := rl.GenImageColor(sw, sh, rl.Blank)
				tex = rl.LoadTextureFromImage(img)
				rl.UnloadImage(img)
			}
			frame = s.Flatten(frame, bg)
			pixels = toPixels(pixels, frame)
			rl.UpdateTexture(tex, pixels)
		}

		rl.BeginDrawing()
		rl.ClearBackground(bgColor)
		if tex.ID != 0 && sw > 0 && sh > 0 {
			rl.DrawTexture(tex, 0, 0, rl.White)
		}
		rl.EndDrawing()
	}
	return ctx.Err()
}

// toPixels converts RGBA bytes to raylib colors, reusing dst.
func toPixels(dst []color.RGBA, rgba []byte) []color.RGBA {
	n := len(rgba) / 4
	if cap(dst) < n {
		dst = make([]color.RGBA, n)
	}
	dst = dst[:n]
	for i := range dst {
		p := rgba[i*4 : i*4+4 : i*4+4]
		dst[i] = color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return dst
}
