package effect

import (
	"context"
	"log/slog"

	"github.com/san-kum/grimoire/internal/draw"
)

// Host is the widget the effect is layered over. It is queried once per
// frame.
type Host interface {
	EmitterActive() bool
	// EmissionOrigin returns false until the host layout is known.
	EmissionOrigin() (draw.Point, bool)
	SurfaceSize() draw.Size
}

// Observer is notified after every frame has been drawn.
type Observer interface {
	OnFrame(st TickStats, f draw.Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(st TickStats, f draw.Frame)

func (fn ObserverFunc) OnFrame(st TickStats, f draw.Frame) { fn(st, f) }

// Loop drives an Effect from a frame clock, replaying each frame on a
// surface. Stop ends scheduling; the loop cannot be restarted.
type Loop struct {
	effect    *Effect
	host      Host
	surface   draw.Surface
	observers []Observer
	stopped   bool
	log       *slog.Logger
}

// NewLoop wires an effect to its host. surface may be nil when only the
// returned frames are of interest.
func NewLoop(e *Effect, host Host, surface draw.Surface) *Loop {
	return &Loop{
		effect:    e,
		host:      host,
		surface:   surface,
		observers: make([]Observer, 0),
		log:       slog.Default().With("component", "effect"),
	}
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) Effect() *Effect { return l.effect }

// Inputs samples the host.
func (l *Loop) Inputs() Inputs {
	origin, ok := l.host.EmissionOrigin()
	return Inputs{
		EmitterActive: l.host.EmitterActive(),
		Origin:        origin,
		HasOrigin:     ok,
		Surface:       l.host.SurfaceSize(),
	}
}

// Frame runs one tick at now and draws it. It reports false once the loop
// has been stopped, in which case nothing is drawn and the caller must not
// schedule another frame.
func (l *Loop) Frame(now float64) (draw.Frame, bool) {
	if l.stopped {
		return nil, false
	}
	f := l.effect.Tick(now, l.Inputs())
	if l.surface != nil {
		f.Replay(l.surface)
	}
	st := l.effect.LastTick()
	for _, o := range l.observers {
		o.OnFrame(st, f)
	}
	return f, true
}

// Burst spawns the configured extra burst at the current origin.
func (l *Loop) Burst() {
	origin, ok := l.host.EmissionOrigin()
	if !ok || l.host.SurfaceSize().Empty() {
		return
	}
	l.effect.SpawnBurst(l.effect.Config().ExtraBurst, origin)
}

func (l *Loop) Stop() {
	if l.stopped {
		return
	}
	l.stopped = true
	l.log.Debug("loop stopped", "frames", l.effect.Frames(), "live", l.effect.Len())
}

func (l *Loop) Stopped() bool { return l.stopped }

// Run draws one frame per timestamp received from clock until the clock is
// closed, the loop is stopped or ctx is done.
func (l *Loop) Run(ctx context.Context, clock <-chan float64) error {
	l.log.Debug("loop started")
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case now, ok := <-clock:
			if !ok {
				return nil
			}
			if _, more := l.Frame(now); !more {
				return nil
			}
		}
	}
}

// FixedClock returns a closed, pre-filled channel of n timestamps spaced
// interval milliseconds apart, the first one at start+interval.
func FixedClock(start, interval float64, n int) <-chan float64 {
	if n < 0 {
		n = 0
	}
	ch := make(chan float64, n)
	for i := 1; i <= n; i++ {
		ch <- start + float64(i)*interval
	}
	close(ch)
	return ch
}
