package effect_test

import (
	"context"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/effect"
)

type fakeHost struct {
	open   bool
	origin draw.Point
	placed bool
	size   draw.Size
}

func (h *fakeHost) EmitterActive() bool                { return h.open }
func (h *fakeHost) EmissionOrigin() (draw.Point, bool) { return h.origin, h.placed }
func (h *fakeHost) SurfaceSize() draw.Size             { return h.size }

type frameLog struct {
	stats []effect.TickStats
}

func (f *frameLog) OnFrame(st effect.TickStats, _ draw.Frame) { f.stats = append(f.stats, st) }

var _ = Describe("Loop", func() {
	var (
		host    *fakeHost
		surface *draw.Recorder
		eff     *effect.Effect
		loop    *effect.Loop
	)

	BeforeEach(func() {
		host = &fakeHost{
			origin: draw.Point{X: 200, Y: 150},
			placed: true,
			size:   draw.Size{W: 400, H: 300},
		}
		surface = &draw.Recorder{}
		var err error
		eff, err = effect.New(effect.DefaultConfig(), rand.New(rand.NewPCG(3, 4)))
		Expect(err).NotTo(HaveOccurred())
		loop = effect.NewLoop(eff, host, surface)
	})

	It("replays every frame onto the surface", func() {
		host.open = true
		f, ok := loop.Frame(16)
		Expect(ok).To(BeTrue())
		Expect(surface.Take()).To(HaveLen(len(f)))
		Expect(f.Rects()).To(HaveLen(1))
	})

	It("samples the host each frame", func() {
		Expect(loop.Inputs()).To(Equal(effect.Inputs{
			Origin:    host.origin,
			HasOrigin: true,
			Surface:   host.size,
		}))

		host.open = true
		loop.Frame(16)
		Expect(eff.Open()).To(BeTrue())

		host.open = false
		loop.Frame(32)
		Expect(eff.Open()).To(BeFalse())
	})

	It("notifies observers after each frame", func() {
		log := &frameLog{}
		loop.AddObserver(log)
		host.open = true

		Expect(loop.Run(context.Background(), effect.FixedClock(0, 10, 10))).To(Succeed())

		Expect(log.stats).To(HaveLen(10))
		Expect(log.stats[0].Burst).To(Equal(20))
		total := 0
		for _, st := range log.stats {
			total += st.Continuous
		}
		Expect(total).To(Equal(2))
	})

	It("spawns the extra burst at the current origin", func() {
		loop.Burst()
		Expect(eff.Len()).To(Equal(30))
		for _, p := range eff.Particles() {
			Expect(p.X).To(BeNumerically("~", 200, 20))
			Expect(p.Y).To(BeNumerically("~", 150, 10))
		}
	})

	It("ignores bursts before the host is laid out", func() {
		host.placed = false
		loop.Burst()
		host.placed = true
		host.size = draw.Size{}
		loop.Burst()
		Expect(eff.Len()).To(BeZero())
	})

	Context("when stopped", func() {
		It("draws nothing more", func() {
			loop.Stop()
			f, ok := loop.Frame(16)
			Expect(ok).To(BeFalse())
			Expect(f).To(BeNil())
			Expect(surface.Len()).To(BeZero())
			Expect(loop.Stopped()).To(BeTrue())
		})

		It("ends Run without draining the clock", func() {
			log := &frameLog{}
			loop.AddObserver(log)
			loop.Stop()
			Expect(loop.Run(context.Background(), effect.FixedClock(0, 16, 5))).To(Succeed())
			Expect(log.stats).To(BeEmpty())
		})
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		clock := make(chan float64)

		err := loop.Run(ctx, clock)
		Expect(err).To(MatchError(context.Canceled))
		Expect(loop.Stopped()).To(BeTrue())
	})
})

var _ = Describe("FixedClock", func() {
	It("yields evenly spaced timestamps then closes", func() {
		var got []float64
		for now := range effect.FixedClock(100, 20, 3) {
			got = append(got, now)
		}
		Expect(got).To(Equal([]float64{120, 140, 160}))
	})

	It("is empty for a non-positive count", func() {
		_, ok := <-effect.FixedClock(0, 16, -1)
		Expect(ok).To(BeFalse())
	})
})
