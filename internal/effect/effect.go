package effect

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/particle"
)

// Inputs is what the host reports for one tick.
type Inputs struct {
	EmitterActive bool
	Origin        draw.Point
	HasOrigin     bool
	Surface       draw.Size
}

// ready reports whether the host layout has settled enough to emit.
func (in Inputs) ready() bool {
	return in.HasOrigin && in.Origin.IsValid() && !in.Surface.Empty()
}

// TickStats describes what one tick did.
type TickStats struct {
	Time       float64 `csv:"time_ms"`
	Dt         float64 `csv:"dt_ms"`
	Open       bool    `csv:"open"`
	Continuous int     `csv:"continuous"`
	Burst      int     `csv:"burst"`
	Pruned     int     `csv:"pruned"`
	Live       int     `csv:"live"`
}

// Effect is the particle simulation of one book widget. It owns its
// particles exclusively. It is not safe for concurrent use: Tick and
// SpawnBurst must be called from the same goroutine.
type Effect struct {
	cfg  Config
	rng  *rand.Rand
	glow colorful.Color

	particles []particle.Particle
	lastFrame float64
	accum     float64
	open      bool

	pendingBurst int
	last         TickStats
	frames       int
	rec          draw.Recorder
}

// New builds an effect. A nil rng is replaced by a randomly seeded one.
func New(cfg Config, rng *rand.Rand) (*Effect, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	glow, err := colorful.Hex(cfg.Glow.Color)
	if err != nil {
		return nil, ErrInvalidColor
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Effect{
		cfg:       cfg,
		rng:       rng,
		glow:      glow,
		particles: make([]particle.Particle, 0, 64),
	}, nil
}

func (e *Effect) Config() Config { return e.cfg }

// Sync sets the timestamp the next tick measures its delta from.
func (e *Effect) Sync(now float64) { e.lastFrame = now }

// Reset drops every particle and returns to the closed state.
func (e *Effect) Reset(now float64) {
	clear(e.particles)
	e.particles = e.particles[:0]
	e.accum = 0
	e.open = false
	e.pendingBurst = 0
	e.lastFrame = now
}

// Spawn emits one particle at origin with the default speed range.
func (e *Effect) Spawn(origin draw.Point) { e.SpawnOne(origin, e.cfg.Speed) }

// SpawnOne emits one particle at origin, launched inside the upward cone
// with a speed drawn from speed.
func (e *Effect) SpawnOne(origin draw.Point, speed Range) {
	angle := -math.Pi/2 + (e.rng.Float64()-0.5)*e.cfg.Cone + (e.rng.Float64()-0.5)*e.cfg.AngleJitter
	v := speed.Sample(e.rng)
	sin, cos := math.Sincos(angle)
	life := e.cfg.Life.Sample(e.rng)
	size := e.cfg.Size.Sample(e.rng)
	hue := e.cfg.Hues[e.rng.IntN(len(e.cfg.Hues))] + (e.rng.Float64()*2-1)*e.cfg.HueJitter

	e.particles = append(e.particles, particle.New(origin.X, origin.Y, cos*v, sin*v, life, size, hue, e.rng))
}

// SpawnBurst emits count fast particles scattered around origin. It may be
// called by the host between ticks, e.g. from an input handler.
func (e *Effect) SpawnBurst(count int, origin draw.Point) {
	if count <= 0 || !origin.IsValid() {
		return
	}
	for i := 0; i < count; i++ {
		e.SpawnOne(e.cfg.BurstJitter.Apply(origin, e.rng), e.cfg.BurstSpeed)
	}
	e.pendingBurst += count
}

// Tick advances the simulation to now (milliseconds) and returns the draw
// calls of the frame: a clear, every live particle, then the glow.
func (e *Effect) Tick(now float64, in Inputs) draw.Frame {
	dt := now - e.lastFrame
	if !(dt > 0) {
		dt = 0
	}
	dt = math.Min(dt, e.cfg.MaxDt)
	if !math.IsNaN(now) {
		e.lastFrame = now
	}

	st := TickStats{Time: now, Dt: dt}
	e.rec.Clear()

	ready := in.ready()
	if ready {
		if in.EmitterActive && !e.open {
			e.SpawnBurst(e.cfg.OpenBurst, in.Origin)
		}
		e.open = in.EmitterActive
	}
	active := ready && in.EmitterActive

	if active {
		e.accum += dt
		for e.accum >= e.cfg.EmitInterval {
			e.accum -= e.cfg.EmitInterval
			e.SpawnOne(e.cfg.ContinuousJitter.Apply(in.Origin, e.rng), e.cfg.ContinuousSpeed)
			st.Continuous++
		}
	}

	live := e.particles[:0]
	for _, p := range e.particles {
		p.AdvanceWith(dt, e.cfg.Physics)
		if !p.Alive() {
			st.Pruned++
			continue
		}
		p.Render(&e.rec)
		live = append(live, p)
	}
	clear(e.particles[len(live):])
	e.particles = live

	if active {
		e.rec.FillRect(e.glowRect(in))
	}

	st.Open = e.open
	st.Burst = e.pendingBurst
	st.Live = len(e.particles)
	e.pendingBurst = 0
	e.last = st
	e.frames++
	return e.rec.Take()
}

func (e *Effect) glowRect(in Inputs) draw.Rect {
	return draw.Rect{
		Size: in.Surface,
		Fill: draw.Radial{
			Center: in.Origin,
			Radius: in.Surface.Min() / 2,
			Stops: []draw.Stop{
				{Offset: 0, Color: e.glow, Alpha: e.cfg.Glow.Alpha},
				{Offset: 1, Alpha: 0},
			},
		},
	}
}

// Open reports the mirrored emitter state as of the last settled tick.
func (e *Effect) Open() bool { return e.open }

// Len is the number of live particles.
func (e *Effect) Len() int { return len(e.particles) }

// Particles returns a copy of the live particles in collection order.
func (e *Effect) Particles() []particle.Particle {
	out := make([]particle.Particle, len(e.particles))
	copy(out, e.particles)
	return out
}

// Accumulator is the unspent continuous-emission budget in milliseconds.
func (e *Effect) Accumulator() float64 { return e.accum }

// LastTick reports what the most recent Tick did.
func (e *Effect) LastTick() TickStats { return e.last }

// Frames is the number of ticks run so far.
func (e *Effect) Frames() int { return e.frames }
