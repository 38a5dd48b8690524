// Package automation runs batches of headless experiments: seed ensembles
// and parameter sweeps over the effect configuration.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"sync"

	"github.com/san-kum/grimoire/internal/config"
	"github.com/san-kum/grimoire/internal/experiment"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrUnknownParam = errors.New("automation: unknown parameter")
	ErrInvalidSweep = errors.New("automation: invalid sweep")
)

// params maps sweepable names to setters.
var params = map[string]func(c *config.Config, v float64){
	"emit_interval_ms": func(c *config.Config, v float64) { c.Effect.EmitInterval = v },
	"max_dt_ms":        func(c *config.Config, v float64) { c.Effect.MaxDt = v },
	"open_burst":       func(c *config.Config, v float64) { c.Effect.OpenBurst = int(math.Round(v)) },
	"extra_burst":      func(c *config.Config, v float64) { c.Effect.ExtraBurst = int(math.Round(v)) },
	"anti_gravity":     func(c *config.Config, v float64) { c.Effect.Physics.AntiGravity = v },
	"friction":         func(c *config.Config, v float64) { c.Effect.Physics.Friction = v },
	"glow_alpha":       func(c *config.Config, v float64) { c.Effect.Glow.Alpha = v },
	"fps":              func(c *config.Config, v float64) { c.FPS = int(math.Round(v)) },
}

func ParamNames() []string {
	return slices.Sorted(maps.Keys(params))
}

// Set returns a copy of base with the named parameter set to v.
func Set(base *config.Config, name string, v float64) (*config.Config, error) {
	set, ok := params[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownParam)
	}
	cfg := base.Clone()
	set(cfg, v)
	return cfg, nil
}

// Ensemble runs one configuration under consecutive seeds concurrently.
type Ensemble struct {
	Base      *config.Config
	Runs      int
	SeedStart uint64
}

func (e *Ensemble) Run(ctx context.Context) ([]*experiment.Result, error) {
	results := make([]*experiment.Result, e.Runs)
	errs := make([]error, e.Runs)

	var wg sync.WaitGroup
	for i := 0; i < e.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.Base.Clone()
			cfg.Seed = e.SeedStart + uint64(idx)

			exp, err := experiment.New(cfg)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Sweep varies one parameter linearly from Min to Max in Steps points and
// runs an ensemble of Runs seeds at each.
type Sweep struct {
	Base  *config.Config
	Param string
	Min   float64
	Max   float64
	Steps int
	Runs  int
}

// SweepResult aggregates the ensemble of one sweep point.
type SweepResult struct {
	Value          float64
	MeanPopulation float64
	StdDev         float64
	PeakPopulation float64
	Spawned        float64
}

func (s *Sweep) validate() error {
	if _, ok := params[s.Param]; !ok {
		return fmt.Errorf("%q: %w", s.Param, ErrUnknownParam)
	}
	if s.Steps < 2 {
		return fmt.Errorf("steps must be at least 2, got %d: %w", s.Steps, ErrInvalidSweep)
	}
	if s.Runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d: %w", s.Runs, ErrInvalidSweep)
	}
	if s.Min > s.Max {
		return fmt.Errorf("range [%v, %v]: %w", s.Min, s.Max, ErrInvalidSweep)
	}
	return nil
}

func RunSweep(ctx context.Context, sweep *Sweep) ([]SweepResult, error) {
	if err := sweep.validate(); err != nil {
		return nil, err
	}
	seed := sweep.Base.Seed
	if seed == 0 {
		seed = 1
	}

	results := make([]SweepResult, 0, sweep.Steps)
	paramStep := (sweep.Max - sweep.Min) / float64(sweep.Steps-1)

	for i := 0; i < sweep.Steps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep
		cfg, err := Set(sweep.Base, sweep.Param, paramVal)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%v: %w", sweep.Param, paramVal, err)
		}

		ens := &Ensemble{Base: cfg, Runs: sweep.Runs, SeedStart: seed}
		runs, err := ens.Run(ctx)
		if err != nil {
			return nil, err
		}

		means := make([]float64, len(runs))
		spawned := make([]float64, len(runs))
		res := SweepResult{Value: paramVal}
		for j, r := range runs {
			means[j] = r.Summary.Mean
			spawned[j] = float64(r.Summary.Spawned)
			res.PeakPopulation = max(res.PeakPopulation, r.Summary.Peak)
		}
		res.MeanPopulation, res.StdDev = stat.MeanStdDev(means, nil)
		if len(runs) < 2 {
			res.StdDev = 0
		}
		res.Spawned = stat.Mean(spawned, nil)
		results = append(results, res)

		slog.Debug("sweep point", "component", "automation", "param", sweep.Param, "value", paramVal, "mean", res.MeanPopulation)
	}

	return results, nil
}
