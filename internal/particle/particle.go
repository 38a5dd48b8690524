package particle

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/grimoire/internal/draw"
)

// Physics holds the integration constants. Velocities are in surface
// units per reference frame; times are in milliseconds.
type Physics struct {
	FrameMs     float64 `yaml:"frame_ms"`
	AntiGravity float64 `yaml:"anti_gravity"`
	Friction    float64 `yaml:"friction"`
}

var DefaultPhysics = Physics{
	FrameMs:     16.67,
	AntiGravity: 0.002,
	Friction:    0.998,
}

// MaxSpin bounds the per-frame rotation speed drawn at creation.
const MaxSpin = 0.03

const (
	saturation    = 0.9
	baseLightness = 50.0
	lightnessGain = 20.0
	swell         = 0.2
	haloScale     = 3.0
	coreOffset    = 0.15
	coreAlpha     = 0.95
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

type Particle struct {
	X, Y     float64
	VX, VY   float64
	Life     float64 // remaining, ms
	MaxLife  float64
	Size     float64
	Hue      float64
	Rotation float64
	Spin     float64
}

// New creates a particle with the given state. Rotation and spin are drawn
// from rng.
func New(x, y, vx, vy, lifeMs, size, hue float64, rng *rand.Rand) Particle {
	return Particle{
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       vy,
		Life:     lifeMs,
		MaxLife:  lifeMs,
		Size:     size,
		Hue:      hue,
		Rotation: rng.Float64() * 2 * math.Pi,
		Spin:     (rng.Float64()*2 - 1) * MaxSpin,
	}
}

// Advance integrates the particle by dt milliseconds with DefaultPhysics.
func (p *Particle) Advance(dt float64) { p.AdvanceWith(dt, DefaultPhysics) }

// AdvanceWith integrates the particle by dt milliseconds. Friction is
// applied once per call whatever dt is.
func (p *Particle) AdvanceWith(dt float64, ph Physics) {
	factor := dt / ph.FrameMs
	p.X += p.VX * factor
	p.Y += p.VY * factor
	p.VY -= ph.AntiGravity * dt
	p.VX *= ph.Friction
	p.VY *= ph.Friction
	p.Life -= dt
	p.Rotation += p.Spin * factor
}

func (p Particle) Alive() bool { return p.Life > 0 }

// Appearance is the fade state of a particle at its current age.
type Appearance struct {
	T         float64 // 0 at birth, 1 at expiry
	Alpha     float64
	DrawSize  float64
	Lightness float64 // percent
}

func (p Particle) Appearance() Appearance {
	t := 1.0
	if p.MaxLife > 0 {
		t = clamp01(1 - p.Life/p.MaxLife)
	}
	return Appearance{
		T:         t,
		Alpha:     1 - t,
		DrawSize:  p.Size * (1 + swell*math.Sin(t*math.Pi)),
		Lightness: baseLightness + lightnessGain*(1-t),
	}
}

// Sprite builds the draw call for the particle: a disc of the current draw
// size, rotated, filled with a glow that fades from a white core through
// the particle's hue to transparent at three times the draw size.
func (p Particle) Sprite() draw.Circle {
	a := p.Appearance()
	hue := colorful.Hsl(p.Hue, saturation, a.Lightness/100).Clamped()
	return draw.Circle{
		Center:   draw.Point{X: p.X, Y: p.Y},
		Radius:   a.DrawSize,
		Rotation: p.Rotation,
		Fill: draw.Radial{
			Radius: a.DrawSize * haloScale,
			Stops: []draw.Stop{
				{Offset: 0, Color: white, Alpha: a.Alpha},
				{Offset: coreOffset, Color: hue, Alpha: coreAlpha},
				{Offset: 1, Color: black, Alpha: 0},
			},
		},
	}
}

// Render draws the particle on s. It does not modify the particle.
func (p Particle) Render(s draw.Surface) { s.FillCircle(p.Sprite()) }

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
