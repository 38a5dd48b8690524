package metrics

import "github.com/san-kum/grimoire/internal/effect"

type MeanPopulation struct {
	name    string
	total   float64
	samples int
}

func NewMeanPopulation() *MeanPopulation {
	return &MeanPopulation{name: "mean_population"}
}

func (m *MeanPopulation) Name() string { return m.name }

func (m *MeanPopulation) Observe(st effect.TickStats) {
	m.total += float64(st.Live)
	m.samples++
}

func (m *MeanPopulation) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanPopulation) Reset() {
	m.total = 0
	m.samples = 0
}

type PeakPopulation struct {
	name string
	peak int
}

func NewPeakPopulation() *PeakPopulation {
	return &PeakPopulation{name: "peak_population"}
}

func (p *PeakPopulation) Name() string { return p.name }

func (p *PeakPopulation) Observe(st effect.TickStats) {
	p.peak = max(p.peak, st.Live)
}

func (p *PeakPopulation) Value() float64 { return float64(p.peak) }

func (p *PeakPopulation) Reset() { p.peak = 0 }

// Crowding is the fraction of frames whose population stayed at or below
// a threshold.
type Crowding struct {
	name       string
	threshold  int
	violations int
	samples    int
}

func NewCrowding(threshold int) *Crowding {
	return &Crowding{
		name:      "uncrowded_ratio",
		threshold: threshold,
	}
}

func (c *Crowding) Name() string {
	return c.name
}

func (c *Crowding) Observe(st effect.TickStats) {
	c.samples++
	if st.Live > c.threshold {
		c.violations++
	}
}

func (c *Crowding) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Crowding) Reset() {
	c.violations = 0
	c.samples = 0
}
