package experiment

import (
	"cmp"
	"slices"

	"github.com/san-kum/grimoire/internal/config"
	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/effect"
)

// OriginHeight is where the emission point sits, as a fraction of the
// surface height.
const OriginHeight = 0.45

// ScriptedHost is a book with no user: its open state follows a timeline.
type ScriptedHost struct {
	size  draw.Size
	open  bool
	steps []config.Step
	next  int
}

func NewScriptedHost(size draw.Size, steps []config.Step) *ScriptedHost {
	sorted := slices.Clone(steps)
	slices.SortStableFunc(sorted, func(a, b config.Step) int { return cmp.Compare(a.At, b.At) })
	return &ScriptedHost{size: size, steps: sorted}
}

func (h *ScriptedHost) EmitterActive() bool { return h.open }

func (h *ScriptedHost) EmissionOrigin() (draw.Point, bool) {
	if h.size.Empty() {
		return draw.Point{}, false
	}
	return draw.Point{X: h.size.W / 2, Y: h.size.H * OriginHeight}, true
}

func (h *ScriptedHost) SurfaceSize() draw.Size { return h.size }

func (h *ScriptedHost) SetOpen(open bool) { h.open = open }

func (h *ScriptedHost) Toggle() { h.open = !h.open }

func (h *ScriptedHost) Resize(size draw.Size) { h.size = size }

// Advance applies every step due at or before now. Unknown actions are
// skipped; config validation rejects them earlier.
func (h *ScriptedHost) Advance(now float64, loop *effect.Loop) int {
	applied := 0
	for h.next < len(h.steps) && h.steps[h.next].At <= now {
		if act, err := LookupAction(h.steps[h.next].Action); err == nil {
			act(h, loop)
			applied++
		}
		h.next++
	}
	return applied
}

// Pending is the number of steps not applied yet.
func (h *ScriptedHost) Pending() int { return len(h.steps) - h.next }
