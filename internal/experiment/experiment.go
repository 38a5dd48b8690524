// Package experiment runs the effect headlessly against a scripted book on a
// virtual clock.
package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/grimoire/internal/config"
	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/effect"
	"github.com/san-kum/grimoire/internal/metrics"
	"github.com/san-kum/grimoire/internal/raster"
)

type Result struct {
	Frames  int
	Live    int
	Summary metrics.Summary
	Metrics map[string]float64
	Series  *metrics.Series
	// Last is the draw list of the final frame.
	Last draw.Frame
}

type Experiment struct {
	cfg     *config.Config
	host    *ScriptedHost
	surface *raster.Surface
	loop    *effect.Loop
	metrics *metrics.Set
	series  *metrics.Series
	last    draw.Frame
	log     *slog.Logger
}

func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fx, err := effect.New(cfg.Effect, cfg.Rand())
	if err != nil {
		return nil, err
	}

	e := &Experiment{
		cfg:     cfg,
		host:    NewScriptedHost(draw.Size{W: float64(cfg.Width), H: float64(cfg.Height)}, cfg.Script),
		surface: raster.New(cfg.Width, cfg.Height),
		metrics: metrics.Default(),
		series:  metrics.NewSeries(cfg.Frames()),
		log:     slog.Default().With("component", "experiment"),
	}
	e.loop = effect.NewLoop(fx, e.host, e.surface)
	e.loop.AddObserver(e.metrics)
	e.loop.AddObserver(e.series)
	e.loop.AddObserver(effect.ObserverFunc(func(_ effect.TickStats, f draw.Frame) { e.last = f }))
	return e, nil
}

// AddObserver registers o after the built-in metrics. Observers see frames
// before the script advances to the next one.
func (e *Experiment) AddObserver(o effect.Observer) { e.loop.AddObserver(o) }

func (e *Experiment) Surface() *raster.Surface { return e.surface }

func (e *Experiment) Host() *ScriptedHost { return e.host }

func (e *Experiment) Loop() *effect.Loop { return e.loop }

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.loop.Stopped() {
		return nil, fmt.Errorf("experiment already run")
	}
	interval := e.cfg.FrameInterval()
	frames := e.cfg.Frames()

	e.loop.Effect().Sync(0)
	e.host.Advance(interval, e.loop)
	e.loop.AddObserver(effect.ObserverFunc(func(st effect.TickStats, _ draw.Frame) {
		e.host.Advance(st.Time+interval, e.loop)
	}))

	e.log.Debug("run started", "frames", frames, "interval_ms", interval, "seed", e.cfg.Seed)
	if err := e.loop.Run(ctx, effect.FixedClock(0, interval, frames)); err != nil {
		return nil, err
	}
	e.loop.Stop()

	res := &Result{
		Frames:  e.series.Len(),
		Live:    e.loop.Effect().Len(),
		Summary: e.series.Summary(),
		Metrics: e.metrics.Values(),
		Series:  e.series,
		Last:    e.last,
	}
	e.log.Info("run complete", "frames", res.Frames, "spawned", res.Summary.Spawned, "live", res.Live)
	return res, nil
}
