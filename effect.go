package textfx

import (
	"context"

	"github.com/gogpu/textfx/internal/debounce"
)

// Effect ties a Host to a Surface and a Driver and owns the resize
// debouncer. It is the usual entry point for hosts.
type Effect struct {
	host     Host
	surface  *Surface
	driver   *Driver
	debounce *debounce.Debouncer
}

// New attaches an effect to host and starts it: the surface is sized and
// masked, the particles are created and the driver is Running.
//
// A nil host returns ErrNoHost after logging a warning. A mask that could
// not be generated is returned as an error and the surface is released.
func New(host Host, opts ...Option) (*Effect, error) {
	o := buildOptions(opts)
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	surface := NewSurface(o.masks)
	if err := surface.Initialize(host); err != nil {
		_ = surface.Close()
		return nil, err
	}

	driver := newDriver(surface, o)
	if err := driver.Initialize(); err != nil {
		_ = surface.Close()
		return nil, err
	}

	return &Effect{
		host:     host,
		surface:  surface,
		driver:   driver,
		debounce: debounce.New(o.cfg.ResizeDelay, surface.RequestResize),
	}, nil
}

// NotifyResize reports that the host bounds may have changed. Bursts are
// coalesced; once they settle the surface is resized at the start of the
// next frame. Safe to call from any goroutine.
func (e *Effect) NotifyResize() {
	e.debounce.Trigger()
}

// Step runs one frame. See Driver.Step.
func (e *Effect) Step() bool {
	return e.driver.Step()
}

// Run drives frames from src. See Driver.Run.
func (e *Effect) Run(ctx context.Context, src FrameSource) error {
	return e.driver.Run(ctx, src)
}

// Stop halts the animation and drops any pending resize.
func (e *Effect) Stop() {
	e.debounce.Stop()
	e.driver.Stop()
}

// Close stops the effect and releases the surface. Call it from the frame
// goroutine once Run has returned.
func (e *Effect) Close() error {
	e.Stop()
	return e.surface.Close()
}

// Host returns the host element.
func (e *Effect) Host() Host { return e.host }

// Surface returns the surface frames are drawn into.
func (e *Effect) Surface() *Surface { return e.surface }

// Driver returns the animation driver.
func (e *Effect) Driver() *Driver { return e.driver }
