package effect

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/particle"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Jitter holds half-widths of a uniform offset around a point.
type Jitter struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (j Jitter) Apply(p draw.Point, rng *rand.Rand) draw.Point {
	return draw.Point{
		X: p.X + (rng.Float64()*2-1)*j.X,
		Y: p.Y + (rng.Float64()*2-1)*j.Y,
	}
}

// Glow is the ambient wash drawn around the emission point while open.
type Glow struct {
	Color string  `yaml:"color"`
	Alpha float64 `yaml:"alpha"`
}

// Config holds every tunable of the effect. Times are milliseconds, speeds
// are surface units per reference frame, angles are radians.
type Config struct {
	Physics particle.Physics `yaml:"physics"`

	// MaxDt caps the frame delta so a long pause does not teleport particles.
	MaxDt float64 `yaml:"max_dt_ms"`
	// EmitInterval is the continuous emission period.
	EmitInterval float64 `yaml:"emit_interval_ms"`

	// Speed is the default speed range of SpawnOne.
	Speed           Range `yaml:"speed"`
	ContinuousSpeed Range `yaml:"continuous_speed"`
	BurstSpeed      Range `yaml:"burst_speed"`
	Life            Range `yaml:"life_ms"`
	Size            Range `yaml:"size"`

	// Hues are the base hues (degrees) of the colour families.
	Hues      []float64 `yaml:"hues"`
	HueJitter float64   `yaml:"hue_jitter"`

	// Cone is the launch arc centered straight up; AngleJitter is the total
	// width of the extra random deflection.
	Cone        float64 `yaml:"cone"`
	AngleJitter float64 `yaml:"angle_jitter"`

	ContinuousJitter Jitter `yaml:"continuous_jitter"`
	BurstJitter      Jitter `yaml:"burst_jitter"`

	// OpenBurst is spawned when the emitter turns on; ExtraBurst is the
	// suggested size of user-triggered bursts.
	OpenBurst  int `yaml:"open_burst"`
	ExtraBurst int `yaml:"extra_burst"`

	Glow Glow `yaml:"glow"`
}

func DefaultConfig() Config {
	return Config{
		Physics:          particle.DefaultPhysics,
		MaxDt:            40,
		EmitInterval:     50,
		Speed:            Range{Min: 0.4, Max: 2.4},
		ContinuousSpeed:  Range{Min: 0.6, Max: 2.6},
		BurstSpeed:       Range{Min: 1, Max: 4},
		Life:             Range{Min: 800, Max: 2000},
		Size:             Range{Min: 2, Max: 8},
		Hues:             []float64{45, 220, 270}, // gold, blue, violet
		HueJitter:        10,
		Cone:             math.Pi,
		AngleJitter:      0.8,
		ContinuousJitter: Jitter{X: 30, Y: 15},
		BurstJitter:      Jitter{X: 20, Y: 10},
		OpenBurst:        20,
		ExtraBurst:       30,
		Glow:             Glow{Color: "#ffd278", Alpha: 0.06},
	}
}

// HueRange is the interval every spawned hue falls in.
func (c Config) HueRange() Range {
	if len(c.Hues) == 0 {
		return Range{}
	}
	lo, hi := c.Hues[0], c.Hues[0]
	for _, h := range c.Hues[1:] {
		lo = math.Min(lo, h)
		hi = math.Max(hi, h)
	}
	return Range{Min: lo - c.HueJitter, Max: hi + c.HueJitter}
}

func (c Config) Validate() error {
	if !(c.Physics.FrameMs > 0) {
		return fmt.Errorf("physics.frame_ms must be positive, got %v: %w", c.Physics.FrameMs, ErrInvalidConfig)
	}
	if c.Physics.Friction < 0 || c.Physics.Friction > 1 {
		return fmt.Errorf("physics.friction must be in [0, 1], got %v: %w", c.Physics.Friction, ErrInvalidConfig)
	}
	if !(c.MaxDt > 0) {
		return fmt.Errorf("max_dt_ms must be positive, got %v: %w", c.MaxDt, ErrInvalidConfig)
	}
	if !(c.EmitInterval > 0) {
		return fmt.Errorf("emit_interval_ms must be positive, got %v: %w", c.EmitInterval, ErrInvalidConfig)
	}
	ranges := []struct {
		name string
		r    Range
		min  float64
	}{
		{"speed", c.Speed, 0},
		{"continuous_speed", c.ContinuousSpeed, 0},
		{"burst_speed", c.BurstSpeed, 0},
		{"life_ms", c.Life, math.SmallestNonzeroFloat64},
		{"size", c.Size, math.SmallestNonzeroFloat64},
	}
	for _, rr := range ranges {
		if rr.r.Min > rr.r.Max || rr.r.Min < rr.min {
			return fmt.Errorf("%s [%v, %v]: %w", rr.name, rr.r.Min, rr.r.Max, ErrInvalidRange)
		}
	}
	if len(c.Hues) == 0 {
		return fmt.Errorf("hues: at least one base hue is required: %w", ErrInvalidConfig)
	}
	if c.HueJitter < 0 || c.AngleJitter < 0 || c.Cone < 0 {
		return fmt.Errorf("jitters must not be negative: %w", ErrInvalidConfig)
	}
	if c.ContinuousJitter.X < 0 || c.ContinuousJitter.Y < 0 || c.BurstJitter.X < 0 || c.BurstJitter.Y < 0 {
		return fmt.Errorf("origin jitter must not be negative: %w", ErrInvalidConfig)
	}
	if c.OpenBurst < 0 || c.ExtraBurst < 0 {
		return fmt.Errorf("burst sizes must not be negative: %w", ErrInvalidConfig)
	}
	if _, err := colorful.Hex(c.Glow.Color); err != nil {
		return fmt.Errorf("glow.color %q: %w", c.Glow.Color, ErrInvalidColor)
	}
	if c.Glow.Alpha < 0 || c.Glow.Alpha > 1 {
		return fmt.Errorf("glow.alpha must be in [0, 1], got %v: %w", c.Glow.Alpha, ErrInvalidConfig)
	}
	return nil
}
