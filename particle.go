package textfx

import (
	"math"

	"github.com/gogpu/gg"
)

// Dimensions reports the live size of a drawing surface in pixels.
// Particles keep a Dimensions rather than a copy of the size, so a resize is
// visible to their boundary checks on the very next tick.
type Dimensions interface {
	Size() (width, height int)
}

// rotationRange is the range initial rotation angles are drawn from.
var rotationRange = Range{Min: 0, Max: 2 * math.Pi}

// particleEnv is the state shared by every particle of one driver.
type particleEnv struct {
	dims   Dimensions
	rnd    Rand
	cfg    Config
	core   gg.RGBA
	accent gg.RGBA
}

func newParticleEnv(dims Dimensions, rnd Rand, cfg Config) *particleEnv {
	return &particleEnv{
		dims:   dims,
		rnd:    rnd,
		cfg:    cfg,
		core:   cfg.ColorRGBA(),
		accent: cfg.AccentRGBA(),
	}
}

// Particle is one glowing dot drifting upward across the surface.
//
// Size, opacity, speeds and rotation speed are drawn once at creation.
// Position and rotation change every tick.
type Particle struct {
	env *particleEnv

	x, y          float64
	size          float64
	opacity       float64
	speedX        float64
	speedY        float64
	rotation      float64
	rotationSpeed float64
}

// ParticleState is a read-only snapshot of a particle.
type ParticleState struct {
	X, Y          float64
	Size          float64
	Opacity       float64
	SpeedX        float64
	SpeedY        float64
	Rotation      float64
	RotationSpeed float64
}

// NewParticle creates a particle placed uniformly at random on a surface of
// the given dimensions, with attributes drawn from the ranges in cfg.
//
// Random values are consumed in this order: x, y, size, speedY, speedX,
// opacity, rotation, rotationSpeed.
func NewParticle(dims Dimensions, rnd Rand, cfg Config) *Particle {
	return newParticle(newParticleEnv(dims, rnd, cfg))
}

func newParticle(env *particleEnv) *Particle {
	w, h := env.dims.Size()
	r := env.rnd
	cfg := &env.cfg

	p := &Particle{env: env}
	p.x = r.Float64() * float64(w)
	p.y = r.Float64() * float64(h)
	p.size = cfg.Size.Lerp(r.Float64())
	p.speedY = cfg.SpeedY.Lerp(r.Float64())
	p.speedX = cfg.SpeedX.Lerp(r.Float64())
	p.opacity = cfg.Opacity.Lerp(r.Float64())
	p.rotation = rotationRange.Lerp(r.Float64())
	p.rotationSpeed = cfg.RotationSpeed.Lerp(r.Float64())
	return p
}

// State returns a snapshot of the particle.
func (p *Particle) State() ParticleState {
	return ParticleState{
		X:             p.x,
		Y:             p.y,
		Size:          p.size,
		Opacity:       p.opacity,
		SpeedX:        p.speedX,
		SpeedY:        p.speedY,
		Rotation:      p.rotation,
		RotationSpeed: p.rotationSpeed,
	}
}

// Tick advances the particle by one frame.
//
// A particle that rises above the top margin wraps to just below the bottom
// edge at a new random x. Independently, a particle that drifts beyond the
// side margins is given a new random x. Both checks run every tick against
// the live surface size.
func (p *Particle) Tick() {
	p.y -= p.speedY
	p.x += p.speedX
	p.rotation += p.rotationSpeed

	w, h := p.env.dims.Size()
	margin := p.env.cfg.Margin

	if p.y < -margin {
		p.reset(w, h)
	}
	if p.x < -margin || p.x > float64(w)+margin {
		p.x = p.env.rnd.Float64() * float64(w)
	}
}

// reset moves the particle below the bottom edge at a new random x.
func (p *Particle) reset(w, h int) {
	p.y = float64(h) + p.env.cfg.Margin
	p.x = p.env.rnd.Float64() * float64(w)
}

// Render draws the particle core and its glow.
// The rotation transform has no visible effect on circles.
func (p *Particle) Render(dc *gg.Context) {
	cfg := &p.env.cfg
	core, accent := p.env.core, p.env.accent

	dc.Push()
	dc.Translate(p.x, p.y)
	dc.Rotate(p.rotation)

	dc.SetRGBA(core.R, core.G, core.B, core.A*p.opacity)
	dc.DrawCircle(0, 0, p.size)
	_ = dc.Fill()

	dc.SetRGBA(accent.R, accent.G, accent.B, accent.A*p.opacity*cfg.GlowOpacity)
	dc.DrawCircle(0, 0, p.size*cfg.GlowSize)
	_ = dc.Fill()

	dc.Pop()
}
