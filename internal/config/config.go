package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"github.com/san-kum/grimoire/internal/effect"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS      = 60
	DefaultWidth    = 320
	DefaultHeight   = 240
	DefaultDuration = 5000.0
	DefaultTheme    = "parchment"
	DefaultOpenAt   = 400.0
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrUnknownAction = errors.New("config: unknown script action")
)

// Script actions understood by scripted hosts.
const (
	ActionOpen   = "open"
	ActionClose  = "close"
	ActionToggle = "toggle"
	ActionBurst  = "burst"
)

var Actions = []string{ActionOpen, ActionClose, ActionToggle, ActionBurst}

// Step is a timed action applied to the book during a headless run.
type Step struct {
	At     float64 `yaml:"at_ms"`
	Action string  `yaml:"action"`
}

type Config struct {
	Effect     effect.Config `yaml:"effect"`
	Seed       uint64        `yaml:"seed"`
	FPS        int           `yaml:"fps"`
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	DurationMs float64       `yaml:"duration_ms"`
	Theme      string        `yaml:"theme"`
	Script     []Step        `yaml:"script"`
}

func DefaultConfig() *Config {
	return &Config{
		Effect:     effect.DefaultConfig(),
		FPS:        DefaultFPS,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		DurationMs: DefaultDuration,
		Theme:      DefaultTheme,
		Script:     []Step{{At: DefaultOpenAt, Action: ActionOpen}},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base; keys missing from the file keep the
// values of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Effect.Validate(); err != nil {
		return fmt.Errorf("effect: %w", err)
	}
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("fps must be in (0, 240], got %d: %w", c.FPS, ErrInvalidConfig)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("size %dx%d must be positive: %w", c.Width, c.Height, ErrInvalidConfig)
	}
	if !(c.DurationMs > 0) {
		return fmt.Errorf("duration_ms must be positive, got %v: %w", c.DurationMs, ErrInvalidConfig)
	}
	for i, s := range c.Script {
		if !slices.Contains(Actions, s.Action) {
			return fmt.Errorf("script[%d] %q: %w", i, s.Action, ErrUnknownAction)
		}
		if s.At < 0 {
			return fmt.Errorf("script[%d] at_ms must not be negative: %w", i, ErrInvalidConfig)
		}
	}
	return nil
}

// FrameInterval is the time between frames in milliseconds.
func (c *Config) FrameInterval() float64 {
	return 1000 / float64(c.FPS)
}

// Frames is the number of frames a headless run of DurationMs draws.
func (c *Config) Frames() int {
	return int(c.DurationMs * float64(c.FPS) / 1000)
}

// Rand returns the random source for a run. A zero seed draws one from the
// wall clock.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Effect.Hues = slices.Clone(c.Effect.Hues)
	out.Script = slices.Clone(c.Script)
	return &out
}
