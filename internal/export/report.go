package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/grimoire/internal/experiment"
	"github.com/san-kum/grimoire/internal/metrics"
)

// Report is the JSON form of a headless run.
type Report struct {
	Preset     string             `json:"preset,omitempty"`
	Seed       uint64             `json:"seed"`
	FPS        int                `json:"fps"`
	DurationMs float64            `json:"duration_ms"`
	Frames     int                `json:"frames"`
	Live       int                `json:"live"`
	Summary    metrics.Summary    `json:"summary"`
	Metrics    map[string]float64 `json:"metrics"`
	Samples    []metrics.Sample   `json:"samples,omitempty"`
}

// NewReport describes res. Per-frame samples are included when withSamples
// is set.
func NewReport(preset string, seed uint64, fps int, durationMs float64, res *experiment.Result, withSamples bool) Report {
	r := Report{
		Preset:     preset,
		Seed:       seed,
		FPS:        fps,
		DurationMs: durationMs,
		Frames:     res.Frames,
		Live:       res.Live,
		Summary:    res.Summary,
		Metrics:    res.Metrics,
	}
	if withSamples && res.Series != nil {
		r.Samples = res.Series.Samples()
	}
	return r
}

func WriteJSON(w io.Writer, r Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}
