package config

import (
	"maps"
	"slices"

	"github.com/san-kum/grimoire/internal/effect"
)

func preset(theme string, tune func(*effect.Config)) *Config {
	cfg := DefaultConfig()
	cfg.Theme = theme
	if tune != nil {
		tune(&cfg.Effect)
	}
	return cfg
}

var Presets = map[string]*Config{
	"default": preset(DefaultTheme, nil),
	"calm": preset("moonlight", func(e *effect.Config) {
		e.EmitInterval = 120
		e.ContinuousSpeed = effect.Range{Min: 0.3, Max: 1.2}
		e.Life = effect.Range{Min: 1500, Max: 3000}
		e.OpenBurst = 8
		e.Hues = []float64{200, 220, 240}
	}),
	"storm": preset("ember", func(e *effect.Config) {
		e.EmitInterval = 15
		e.BurstSpeed = effect.Range{Min: 2, Max: 6}
		e.ContinuousSpeed = effect.Range{Min: 1.5, Max: 4}
		e.Life = effect.Range{Min: 400, Max: 1200}
		e.OpenBurst = 60
		e.ExtraBurst = 80
		e.Glow.Alpha = 0.12
	}),
	"ember": preset("ember", func(e *effect.Config) {
		e.Hues = []float64{10, 25, 40}
		e.Physics.AntiGravity = 0.004
		e.Glow.Color = "#ff8a3d"
	}),
	"frost": preset("moonlight", func(e *effect.Config) {
		e.Hues = []float64{180, 195, 210}
		e.Size = effect.Range{Min: 1, Max: 4}
		e.Physics.Friction = 0.99
		e.Glow.Color = "#a8e6ff"
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	return slices.Sorted(maps.Keys(Presets))
}
