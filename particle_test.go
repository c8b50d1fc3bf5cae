package textfx

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func checkRanges(t *testing.T, s ParticleState, cfg Config) {
	t.Helper()
	checks := []struct {
		name string
		v    float64
		r    Range
	}{
		{"size", s.Size, cfg.Size},
		{"opacity", s.Opacity, cfg.Opacity},
		{"speedY", s.SpeedY, cfg.SpeedY},
		{"speedX", s.SpeedX, cfg.SpeedX},
		{"rotationSpeed", s.RotationSpeed, cfg.RotationSpeed},
	}
	for _, c := range checks {
		if !c.r.Contains(c.v) {
			t.Errorf("%s = %v, want within [%v, %v]", c.name, c.v, c.r.Min, c.r.Max)
		}
	}
}

func TestParticleRangeInvariants(t *testing.T) {
	cfg := DefaultConfig()
	dims := &fixedDims{w: 320, h: 120}
	rnd := NewRand(7)

	for i := range 500 {
		p := NewParticle(dims, rnd, cfg)
		s := p.State()
		checkRanges(t, s, cfg)
		if s.X < 0 || s.X >= 320 || s.Y < 0 || s.Y >= 120 {
			t.Fatalf("particle %d at (%v, %v), want within [0,320)x[0,120)", i, s.X, s.Y)
		}
		if s.Rotation < 0 || s.Rotation >= 2*math.Pi {
			t.Fatalf("particle %d rotation = %v, want within [0, 2pi)", i, s.Rotation)
		}

		// Attributes survive any number of ticks and wraps.
		for range 200 {
			p.Tick()
		}
		after := p.State()
		checkRanges(t, after, cfg)
		if after.Size != s.Size || after.Opacity != s.Opacity || after.SpeedY != s.SpeedY ||
			after.SpeedX != s.SpeedX || after.RotationSpeed != s.RotationSpeed {
			t.Fatalf("particle %d attributes changed by Tick: %+v -> %+v", i, s, after)
		}
	}
}

func TestParticleRangeExtremes(t *testing.T) {
	cfg := DefaultConfig()
	dims := &fixedDims{w: 100, h: 100}

	low := NewParticle(dims, &sequenceRand{values: []float64{0}}, cfg).State()
	checkRanges(t, low, cfg)
	if low.Size != 0.5 || low.SpeedY != 0.5 || low.SpeedX != -0.25 || low.Opacity != 0.3 || low.RotationSpeed != -0.01 {
		t.Errorf("all-zero draws = %+v, want range minimums", low)
	}

	high := NewParticle(dims, &sequenceRand{values: []float64{0.999999}}, cfg).State()
	checkRanges(t, high, cfg)
}

func TestParticleTickMotion(t *testing.T) {
	cfg := DefaultConfig()
	dims := &fixedDims{w: 200, h: 200}
	p := NewParticle(dims, NewRand(1), cfg)
	p.x, p.y = 100, 100
	p.speedX, p.speedY, p.rotation, p.rotationSpeed = 0.2, 1.5, 1, 0.01

	p.Tick()

	s := p.State()
	if !almostEqual(s.X, 100.2) || !almostEqual(s.Y, 98.5) || !almostEqual(s.Rotation, 1.01) {
		t.Errorf("after Tick = (%v, %v, %v), want (100.2, 98.5, 1.01)", s.X, s.Y, s.Rotation)
	}
}

func TestParticleVerticalWrap(t *testing.T) {
	cfg := DefaultConfig()
	dims := &fixedDims{w: 300, h: 150}
	rnd := &sequenceRand{values: []float64{0.5}}
	p := NewParticle(dims, rnd, cfg)
	p.x, p.y = 40, -11
	p.speedX = 0

	rnd.values = []float64{0.25}
	p.Tick()

	s := p.State()
	if s.Y != 150+cfg.Margin {
		t.Errorf("wrapped y = %v, want %v", s.Y, 150+cfg.Margin)
	}
	if s.X != 75 {
		t.Errorf("wrapped x = %v, want re-randomized 0.25*300 = 75", s.X)
	}
}

func TestParticleHorizontalReplace(t *testing.T) {
	cfg := DefaultConfig()
	dims := &fixedDims{w: 300, h: 150}
	rnd := &sequenceRand{values: []float64{0.5}}

	tests := []struct {
		name   string
		x      float64
		speedX float64
	}{
		{"right edge", 300 + 11, 0.1},
		{"left edge", -11, -0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParticle(dims, rnd, cfg)
			p.x, p.y, p.speedX = tt.x, 60, tt.speedX
			before := p.State()

			rnd.values = []float64{0.1}
			p.Tick()

			s := p.State()
			if !almostEqual(s.X, 30) {
				t.Errorf("x = %v, want re-randomized 0.1*300 = 30", s.X)
			}
			if s.X < 0 || s.X >= 300 {
				t.Errorf("x = %v, want within [0, 300)", s.X)
			}
			if !almostEqual(s.Y, before.Y-before.SpeedY) {
				t.Errorf("y = %v, want only regular motion %v", s.Y, before.Y-before.SpeedY)
			}
			if !almostEqual(s.Rotation, before.Rotation+before.RotationSpeed) {
				t.Errorf("rotation = %v, want %v", s.Rotation, before.Rotation+before.RotationSpeed)
			}
		})
	}
}

func TestParticleWrapAndReplaceSameTick(t *testing.T) {
	cfg := DefaultConfig()
	dims := &fixedDims{w: 100, h: 50}
	rnd := &sequenceRand{values: []float64{0.5}}
	p := NewParticle(dims, rnd, cfg)
	p.x, p.y, p.speedX = 100+cfg.Margin+5, -cfg.Margin-1, 0.1

	// The vertical wrap draws 0.9 for x; the horizontal check then sees an
	// in-bounds x and draws nothing more.
	rnd.values = []float64{0.9, 0.2}
	rnd.next = 0
	p.Tick()

	s := p.State()
	if s.Y != 50+cfg.Margin {
		t.Errorf("y = %v, want %v", s.Y, 50+cfg.Margin)
	}
	if !almostEqual(s.X, 90) {
		t.Errorf("x = %v, want 90", s.X)
	}
	if rnd.next != 1 {
		t.Errorf("consumed %d random values, want 1", rnd.next)
	}
}

func TestParticleSeesResizeImmediately(t *testing.T) {
	cfg := DefaultConfig()
	dims := &fixedDims{w: 400, h: 400}
	rnd := &sequenceRand{values: []float64{0.5}}
	p := NewParticle(dims, rnd, cfg)
	p.x, p.y, p.speedX = 250, -cfg.Margin-1, 0

	dims.set(200, 80)
	p.Tick()

	s := p.State()
	if s.Y != 80+cfg.Margin {
		t.Errorf("y = %v, want new height + margin = %v", s.Y, 80+cfg.Margin)
	}
	if s.X != 100 {
		t.Errorf("x = %v, want 0.5*200 = 100 from the new width", s.X)
	}
}

func TestParticleZeroDimensions(t *testing.T) {
	cfg := DefaultConfig()
	dims := &fixedDims{}
	p := NewParticle(dims, NewRand(3), cfg)

	for range 100 {
		p.Tick()
	}
	s := p.State()
	if math.IsNaN(s.X) || math.IsNaN(s.Y) || math.IsInf(s.X, 0) || math.IsInf(s.Y, 0) {
		t.Errorf("degenerate particle has non-finite position (%v, %v)", s.X, s.Y)
	}
}

func TestParticleRender(t *testing.T) {
	cfg := DefaultConfig()
	dims := &fixedDims{w: 40, h: 40}
	p := NewParticle(dims, NewRand(9), cfg)
	p.x, p.y, p.size, p.opacity = 20, 20, 2.5, 0.8

	dc := gg.NewContext(40, 40)
	p.Render(dc)

	center := dc.ResizeTarget().GetPixel(20, 20)
	if center.A == 0 {
		t.Error("particle center is transparent after Render")
	}
	corner := dc.ResizeTarget().GetPixel(0, 0)
	if corner.A != 0 {
		t.Errorf("pixel far from the particle has alpha %v, want 0", corner.A)
	}

	// Render must leave the transform as it found it.
	if m := dc.GetTransform(); m != gg.Identity() {
		t.Errorf("transform after Render = %+v, want identity", m)
	}
}

func BenchmarkParticleTick(b *testing.B) {
	dims := &fixedDims{w: 800, h: 300}
	p := NewParticle(dims, NewRand(1), DefaultConfig())
	b.ReportAllocs()
	for b.Loop() {
		p.Tick()
	}
}
