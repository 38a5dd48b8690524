// Package effect implements the magic book particle effect.
//
// An [Effect] owns the particles of one widget and the emission policy:
//
//   - opening the book (emitter turning on) spawns a burst
//   - while open, one particle is emitted every EmitInterval milliseconds
//   - each tick advances, prunes and draws every particle, then an ambient
//     glow around the emission point
//
// [Effect.Tick] does not draw anywhere itself; it returns a [draw.Frame].
// A [Loop] samples a [Host] once per frame, ticks the effect and replays the
// frame on a surface.
//
// # Example
//
//	eff, _ := effect.New(effect.DefaultConfig(), nil)
//	loop := effect.NewLoop(eff, host, raster.New(w, h))
//	err := loop.Run(ctx, effect.FixedClock(0, 1000.0/60, 600))
//
// # Thread Safety
//
// Effects and loops are NOT thread-safe. The host must call Tick, Frame and
// SpawnBurst from a single goroutine, as an event loop naturally does.
package effect
