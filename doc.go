// Package textfx renders a drifting particle field clipped to the shape of a
// text string.
//
// # Overview
//
// textfx is a small decorative effect built on the gg 2D graphics library.
// A fixed population of particles floats upward across a drawing surface;
// after every frame the surface is composited against an alpha mask of the
// host text, so only the particles inside the glyphs remain visible.
//
// # Quick Start
//
//	import "github.com/gogpu/textfx"
//
//	host := textfx.NewElement("Hello", textfx.Font{Family: "Go", Size: 96, Weight: 700}, 800, 300)
//	fx, err := textfx.New(host, textfx.WithCount(200))
//	if err != nil {
//	    return err
//	}
//	defer fx.Close()
//
//	for range 60 {
//	    fx.Step()
//	}
//	_ = fx.Surface().Context().SavePNG("frame.png")
//
// # Architecture
//
// The package is organized into:
//   - Particle: per-particle state, Tick and Render
//   - MaskGenerator and FontRegistry: text to alpha mask
//   - Surface: drawing context, host sizing, mask compositing
//   - Driver: particle collection, frame loop, Idle/Running/Stopped lifecycle
//   - Effect: composition of the above with a debounced resize path
//
// Window-system hosts live under integration/: gpuwindow (gogpu),
// ebitenhost, raylibhost and termhost (tcell).
//
// # Timing
//
// Motion is advanced by a fixed amount per frame. There is no delta-time
// scaling, so the apparent speed follows the host's refresh rate.
//
// # Thread Safety
//
// A frame is a single unit of work on the goroutine that calls Step or Run.
// Stop, NotifyResize and Surface.RequestResize are safe to call from any
// goroutine; a requested resize is applied at the start of the next frame.
package textfx
