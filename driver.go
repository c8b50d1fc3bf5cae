package textfx

import (
	"context"
	"errors"
	"sync/atomic"
)

// State is the lifecycle state of a Driver.
type State int32

// Driver states. A driver moves Idle → Running → Stopped and never back.
const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Driver owns the particle collection and runs the frame cycle:
// clear, tick and render every particle, composite the text mask.
//
// Step and Run must be called from a single goroutine. Stop may be called
// from anywhere.
type Driver struct {
	surface   *Surface
	env       *particleEnv
	particles []*Particle
	onFrame   func(*Surface)

	state  atomic.Int32
	frames atomic.Uint64
}

// NewDriver creates an idle driver drawing into surface.
// Particles are bound to the surface's live size.
func NewDriver(surface *Surface, opts ...Option) *Driver {
	return newDriver(surface, buildOptions(opts))
}

func newDriver(surface *Surface, o options) *Driver {
	return &Driver{
		surface: surface,
		env:     newParticleEnv(surface, o.rnd, o.cfg),
		onFrame: o.onFrame,
	}
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	return State(d.state.Load())
}

// Initialize creates the particles and moves the driver to Running.
// It returns ErrNotIdle if the driver was already started or stopped.
func (d *Driver) Initialize() error {
	if !d.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrNotIdle
	}

	n := d.env.cfg.Count
	d.particles = make([]*Particle, n)
	for i := range d.particles {
		d.particles[i] = newParticle(d.env)
	}

	w, h := d.surface.Size()
	Logger().Info("textfx: animation started", "particles", n, "width", w, "height", h)
	return nil
}

// Step runs one frame and reports whether it did. Nothing happens unless
// the driver is Running.
//
// A resize requested since the previous frame is applied first, so the
// frame always sees consistent surface dimensions.
func (d *Driver) Step() bool {
	if d.State() != StateRunning {
		return false
	}

	s := d.surface
	s.applyPendingResize()
	s.Clear()

	dc := s.Context()
	for _, p := range d.particles {
		p.Tick()
		if dc != nil {
			p.Render(dc)
		}
	}
	s.CompositeMask()

	d.frames.Add(1)
	if d.onFrame != nil {
		d.onFrame(s)
	}
	return true
}

// Run drives frames from src until the driver is stopped, ctx is done or
// src fails. The state is checked before waiting for each frame and again
// before running it, so no frame is requested after Stop returns and the
// in-flight frame completes.
//
// Run returns nil after Stop or when src reports ErrNoMoreFrames. It
// returns immediately if the driver is not Running.
func (d *Driver) Run(ctx context.Context, src FrameSource) error {
	for d.State() == StateRunning {
		if err := src.NextFrame(ctx); err != nil {
			if errors.Is(err, ErrNoMoreFrames) {
				return nil
			}
			return err
		}
		d.Step()
	}
	return nil
}

// Stop moves the driver to Stopped. It is idempotent.
func (d *Driver) Stop() {
	for {
		cur := d.state.Load()
		if State(cur) == StateStopped {
			return
		}
		if d.state.CompareAndSwap(cur, int32(StateStopped)) {
			Logger().Info("textfx: animation stopped", "frames", d.frames.Load())
			return
		}
	}
}

// Frames returns the number of completed frames.
func (d *Driver) Frames() uint64 {
	return d.frames.Load()
}

// Particles returns a snapshot of every particle.
func (d *Driver) Particles() []ParticleState {
	out := make([]ParticleState, len(d.particles))
	for i, p := range d.particles {
		out[i] = p.State()
	}
	return out
}

// Surface returns the surface the driver draws into.
func (d *Driver) Surface() *Surface {
	return d.surface
}
