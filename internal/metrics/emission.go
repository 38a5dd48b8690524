package metrics

import (
	"math"

	"github.com/san-kum/grimoire/internal/effect"
)

// Spawned counts every particle created, continuous and burst.
type Spawned struct {
	name  string
	count int
}

func NewSpawned() *Spawned {
	return &Spawned{name: "spawned"}
}

func (s *Spawned) Name() string { return s.name }

func (s *Spawned) Observe(st effect.TickStats) {
	s.count += st.Continuous + st.Burst
}

func (s *Spawned) Value() float64 { return float64(s.count) }

func (s *Spawned) Reset() { s.count = 0 }

// EmissionRate is the continuous emission rate in particles per second of
// open time.
type EmissionRate struct {
	name    string
	spawned int
	openMs  float64
}

func NewEmissionRate() *EmissionRate {
	return &EmissionRate{name: "emission_rate"}
}

func (e *EmissionRate) Name() string {
	return e.name
}

func (e *EmissionRate) Observe(st effect.TickStats) {
	if !st.Open {
		return
	}
	e.spawned += st.Continuous
	e.openMs += st.Dt
}

func (e *EmissionRate) Value() float64 {
	if e.openMs == 0 {
		return 0
	}
	return roundTo(float64(e.spawned)/e.openMs*1000, 3)
}

func (e *EmissionRate) Reset() {
	e.spawned = 0
	e.openMs = 0
}

// roundTo rounds v to places decimals.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
