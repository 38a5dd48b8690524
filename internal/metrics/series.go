package metrics

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/effect"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is one row of the per-frame series.
type Sample struct {
	Frame      int     `csv:"frame" json:"frame"`
	TimeMs     float64 `csv:"time_ms" json:"time_ms"`
	DtMs       float64 `csv:"dt_ms" json:"dt_ms"`
	Open       bool    `csv:"open" json:"open"`
	Continuous int     `csv:"continuous" json:"continuous"`
	Burst      int     `csv:"burst" json:"burst"`
	Pruned     int     `csv:"pruned" json:"pruned"`
	Live       int     `csv:"live" json:"live"`
	Commands   int     `csv:"commands" json:"commands"`
}

// Series records every frame of a loop.
type Series struct {
	samples []Sample
}

func NewSeries(capacity int) *Series {
	return &Series{samples: make([]Sample, 0, max(capacity, 0))}
}

func (s *Series) OnFrame(st effect.TickStats, f draw.Frame) {
	s.samples = append(s.samples, Sample{
		Frame:      len(s.samples),
		TimeMs:     st.Time,
		DtMs:       st.Dt,
		Open:       st.Open,
		Continuous: st.Continuous,
		Burst:      st.Burst,
		Pruned:     st.Pruned,
		Live:       st.Live,
		Commands:   len(f),
	})
}

func (s *Series) Samples() []Sample { return s.samples }

func (s *Series) Len() int { return len(s.samples) }

// Live returns the population of every frame.
func (s *Series) Live() []float64 {
	out := make([]float64, len(s.samples))
	for i, smp := range s.samples {
		out[i] = float64(smp.Live)
	}
	return out
}

// Summary describes the population over a run.
type Summary struct {
	Frames     int     `json:"frames"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"stddev"`
	Peak       float64 `json:"peak"`
	Spawned    int     `json:"spawned"`
	Continuous int     `json:"continuous"`
	Burst      int     `json:"burst"`
}

func (s *Series) Summary() Summary {
	sum := Summary{Frames: len(s.samples)}
	for _, smp := range s.samples {
		sum.Continuous += smp.Continuous
		sum.Burst += smp.Burst
	}
	sum.Spawned = sum.Continuous + sum.Burst
	if len(s.samples) == 0 {
		return sum
	}
	live := s.Live()
	sum.Peak = floats.Max(live)
	if len(live) > 1 {
		sum.Mean, sum.StdDev = stat.MeanStdDev(live, nil)
	} else {
		sum.Mean = live[0]
	}
	return sum
}

// WriteCSV writes the series with a header row.
func (s *Series) WriteCSV(w io.Writer) error {
	return gocsv.Marshal(s.samples, w)
}
