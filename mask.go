package textfx

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"
)

// MaskGenerator renders text into alpha masks.
//
// MaskGenerator is safe for concurrent use as long as its FontRegistry is.
type MaskGenerator struct {
	fonts *FontRegistry
}

// NewMaskGenerator creates a generator that resolves fonts through fonts.
// A nil registry means NewFontRegistry().
func NewMaskGenerator(fonts *FontRegistry) *MaskGenerator {
	if fonts == nil {
		fonts = NewFontRegistry()
	}
	return &MaskGenerator{fonts: fonts}
}

// Fonts returns the registry used to resolve fonts.
func (g *MaskGenerator) Fonts() *FontRegistry {
	return g.fonts
}

// Generate renders s in font, centered on a width×height canvas, and returns
// its coverage as a mask: 255 inside glyphs, 0 elsewhere, antialiased edges
// in between.
//
// Empty or whitespace-only text, a non-positive font size and a zero-area
// canvas all yield an empty mask without error. The output is a pure
// function of the arguments.
func (g *MaskGenerator) Generate(s string, font Font, width, height int) (*gg.Mask, error) {
	width, height = max(width, 0), max(height, 0)
	if width == 0 || height == 0 {
		return gg.NewMask(width, height), nil
	}
	if strings.TrimSpace(s) == "" || font.Size <= 0 {
		Logger().Debug("textfx: nothing to render, mask is empty", "text", s, "font", font.String())
		return gg.NewMask(width, height), nil
	}

	face, err := g.fonts.Face(font)
	if err != nil {
		return nil, fmt.Errorf("textfx: mask generation failed: %w", err)
	}

	dc := gg.NewContext(width, height)
	defer func() { _ = dc.Close() }()

	// Horizontal centering uses the advance width, vertical centering puts
	// the middle of the ascent/descent box on the canvas midline.
	m := face.Metrics()
	x := (float64(width) - face.Advance(s)) / 2
	y := float64(height)/2 + (m.Ascent-m.Descent)/2

	dc.SetFont(face)
	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawString(s, x, y)

	mask := coverage(dc)
	Logger().Debug("textfx: mask generated", "text", s, "font", font.String(), "width", width, "height", height)
	return mask, nil
}

// coverage flushes dc and returns its alpha channel as a mask.
func coverage(dc *gg.Context) *gg.Mask {
	_ = dc.FlushGPU()
	return gg.NewMaskFromAlpha(dc.ResizeTarget().ToImage())
}

// compositeDestinationIn keeps the premultiplied pixels of pm only where mask
// covers them: every channel is scaled by mask/255. Pixels outside the mask
// bounds are cleared.
func compositeDestinationIn(pm *gg.Pixmap, mask *gg.Mask) {
	pix := pm.Data()
	if mask == nil {
		clear(pix)
		return
	}

	w, h := pm.Width(), pm.Height()
	if mask.Width() == w && mask.Height() == h {
		for i, a := range mask.Data() {
			scalePixel(pix[i*4:i*4+4], a)
		}
		return
	}

	for y := range h {
		for x := range w {
			i := (y*w + x) * 4
			scalePixel(pix[i:i+4], mask.At(x, y))
		}
	}
}

func scalePixel(px []uint8, a uint8) {
	switch a {
	case 255:
		return
	case 0:
		px[0], px[1], px[2], px[3] = 0, 0, 0, 0
	default:
		m := uint32(a)
		for c := range px {
			px[c] = uint8((uint32(px[c])*m + 127) / 255)
		}
	}
}
