package textfx

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// Surface owns the drawing context the particles are rendered into and the
// text mask the result is clipped to. It is sized to its Host.
//
// Apart from RequestResize, Surface methods must be called from the frame
// goroutine.
type Surface struct {
	masks *MaskGenerator
	host  Host

	ctx           *gg.Context
	mask          *gg.Mask
	width, height int

	pending atomic.Bool
}

// NewSurface creates an uninitialized surface that builds masks with masks.
// A nil generator means NewMaskGenerator(nil).
func NewSurface(masks *MaskGenerator) *Surface {
	if masks == nil {
		masks = NewMaskGenerator(nil)
	}
	return &Surface{masks: masks}
}

// Initialize attaches the surface to host, sizes it to the host's bounds and
// generates the first mask.
//
// A nil host, including a typed nil such as (*Element)(nil), is logged and
// reported as ErrNoHost; no context is created.
func (s *Surface) Initialize(host Host) error {
	if hostMissing(host) {
		Logger().Warn("textfx: host element not found, particle effect disabled")
		return ErrNoHost
	}
	s.host = host
	return s.resize()
}

// Resize re-reads the bounds of host, resizes the context (clearing its
// pixels) and regenerates the mask for the new size.
func (s *Surface) Resize(host Host) error {
	if hostMissing(host) {
		Logger().Warn("textfx: resize without a host element ignored")
		return ErrNoHost
	}
	s.host = host
	return s.resize()
}

// RequestResize marks the surface for a resize against its current host.
// It is safe to call from any goroutine; the resize runs at the start of the
// next frame.
func (s *Surface) RequestResize() {
	s.pending.Store(true)
}

// applyPendingResize runs a requested resize. Failures are logged, the
// surface keeps running with whatever mask it has.
func (s *Surface) applyPendingResize() {
	if !s.pending.CompareAndSwap(true, false) || s.host == nil {
		return
	}
	if err := s.resize(); err != nil {
		Logger().Warn("textfx: resize failed", "err", err)
	}
}

// hostMissing reports whether host is nil or wraps a nil pointer, map,
// slice, func or chan.
func hostMissing(host Host) bool {
	if host == nil {
		return true
	}
	v := reflect.ValueOf(host)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

func (s *Surface) resize() error {
	w, h := s.host.Bounds()
	w, h = max(w, 0), max(h, 0)

	if w == 0 || h == 0 {
		if s.ctx != nil {
			_ = s.ctx.Close()
			s.ctx = nil
		}
		s.width, s.height = w, h
		s.mask = gg.NewMask(w, h)
		Logger().Debug("textfx: surface has zero area", "width", w, "height", h)
		return nil
	}

	if s.ctx == nil {
		s.ctx = gg.NewContext(w, h)
	} else if err := s.ctx.Resize(w, h); err != nil {
		return fmt.Errorf("textfx: surface resize failed: %w", err)
	}
	s.ctx.Clear()
	s.width, s.height = w, h

	mask, err := s.masks.Generate(s.host.Text(), s.host.Font(), w, h)
	if err != nil {
		s.mask = gg.NewMask(w, h)
		return err
	}
	s.mask = mask
	Logger().Debug("textfx: surface resized", "width", w, "height", h)
	return nil
}

// Size implements Dimensions with the current surface size.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Context returns the drawing context, or nil while the surface has no area
// or was never initialized.
func (s *Surface) Context() *gg.Context {
	return s.ctx
}

// Pixmap returns the premultiplied RGBA pixels of the last frame, or nil
// when there is no context.
func (s *Surface) Pixmap() *gg.Pixmap {
	if s.ctx == nil {
		return nil
	}
	return s.ctx.ResizeTarget()
}

// Mask returns the current text mask.
func (s *Surface) Mask() *gg.Mask {
	return s.mask
}

// Clear makes every pixel transparent.
func (s *Surface) Clear() {
	if s.ctx != nil {
		s.ctx.Clear()
	}
}

// CompositeMask keeps only the pixels covered by the text mask
// (destination-in).
func (s *Surface) CompositeMask() {
	if s.ctx == nil {
		return
	}
	_ = s.ctx.FlushGPU()
	compositeDestinationIn(s.ctx.ResizeTarget(), s.mask)
}

// Close releases the drawing context.
func (s *Surface) Close() error {
	if s.ctx == nil {
		return nil
	}
	err := s.ctx.Close()
	s.ctx = nil
	return err
}
