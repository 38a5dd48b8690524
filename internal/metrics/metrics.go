package metrics

import (
	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/effect"
)

// Metric folds per-frame tick statistics into a single value.
type Metric interface {
	Name() string
	Observe(st effect.TickStats)
	Value() float64
	Reset()
}

// Set feeds every frame of a loop to its metrics.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Set) OnFrame(st effect.TickStats, _ draw.Frame) {
	for _, m := range s.metrics {
		m.Observe(st)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Values maps metric names to their current values.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Default returns the metrics reported by the stats command.
func Default() *Set {
	return NewSet(
		NewMeanPopulation(),
		NewPeakPopulation(),
		NewSpawned(),
		NewEmissionRate(),
		NewCrowding(80),
	)
}
