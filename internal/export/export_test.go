package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"image/gif"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/grimoire/internal/config"
	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/effect"
	"github.com/san-kum/grimoire/internal/experiment"
	"github.com/san-kum/grimoire/internal/raster"
)

func TestFrameToSVG(t *testing.T) {
	stops := []draw.Stop{
		{Offset: 0, Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 1},
		{Offset: 1, Alpha: 0},
	}
	f := draw.Frame{
		draw.ClearCmd{},
		draw.Circle{Center: draw.Point{X: 10, Y: 20}, Radius: 3, Rotation: math.Pi / 2, Fill: draw.Radial{Radius: 9, Stops: stops}},
		draw.Rect{Size: draw.Size{W: 100, H: 50}, Fill: draw.Radial{Center: draw.Point{X: 50, Y: 25}, Radius: 25, Stops: stops}},
	}

	svg := FrameToSVG(f, draw.Size{W: 100, H: 50}, "#0a0a0a")

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("svg is not a complete document")
	}
	if n := strings.Count(svg, "<radialGradient"); n != 2 {
		t.Errorf("expected 2 gradients, got %d", n)
	}
	for _, want := range []string{
		`transform="translate(10.00 20.00) rotate(90.00)"`,
		`<rect x="0.00" y="0.00" width="100.00" height="50.00"`,
		`cx="50.00" cy="25.00" r="25.00"`,
		`stop-color="#ffffff" stop-opacity="1.000"`,
		`fill="#0a0a0a"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}
}

func TestSVG_ClearDropsEarlierDraws(t *testing.T) {
	s := NewSVG(draw.Size{W: 10, H: 10}, "")
	s.FillCircle(draw.Circle{Radius: 1})
	s.Clear()
	s.FillCircle(draw.Circle{Radius: 2})

	out := s.String()
	if n := strings.Count(out, "<circle"); n != 1 {
		t.Errorf("expected 1 circle after clear, got %d", n)
	}
	if strings.Contains(out, `fill="#`) {
		t.Error("transparent document should not paint a background")
	}
}

type staticHost struct{}

func (staticHost) EmitterActive() bool                { return true }
func (staticHost) EmissionOrigin() (draw.Point, bool) { return draw.Point{X: 32, Y: 40}, true }
func (staticHost) SurfaceSize() draw.Size             { return draw.Size{W: 64, H: 48} }

func TestGIF(t *testing.T) {
	eff, err := effect.New(effect.DefaultConfig(), rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatalf("new effect: %v", err)
	}
	surface := raster.New(64, 48)
	loop := effect.NewLoop(eff, staticHost{}, surface)
	rec := NewGIF(surface, color.RGBA{A: 255}, 2, 3)
	loop.AddObserver(rec)

	if err := loop.Run(context.Background(), effect.FixedClock(0, 16, 10)); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if rec.Len() != 5 {
		t.Fatalf("captured %d frames, want 5", rec.Len())
	}

	var buf bytes.Buffer
	if err := rec.Encode(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(anim.Image) != 5 {
		t.Errorf("decoded %d frames, want 5", len(anim.Image))
	}
	if anim.Delay[0] != 3 {
		t.Errorf("delay = %d, want 3", anim.Delay[0])
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("frame bounds = %v", b)
	}
}

func TestGIF_Empty(t *testing.T) {
	rec := NewGIF(raster.New(4, 4), color.Black, 0, 0)
	if err := rec.Encode(&bytes.Buffer{}); !errors.Is(err, ErrNoFrames) {
		t.Errorf("Encode() = %v, want ErrNoFrames", err)
	}
}

func TestWriteJSON(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 5
	cfg.Width, cfg.Height = 32, 24
	cfg.DurationMs = 600
	exp, err := experiment.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewReport("default", cfg.Seed, cfg.FPS, cfg.DurationMs, res, true)); err != nil {
		t.Fatalf("write json: %v", err)
	}

	var got struct {
		Seed    uint64 `json:"seed"`
		Frames  int    `json:"frames"`
		Summary struct {
			Burst int `json:"burst"`
		} `json:"summary"`
		Samples []json.RawMessage `json:"samples"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Seed != 5 || got.Frames != 36 || len(got.Samples) != 36 {
		t.Errorf("unexpected report header: %+v", got)
	}
	if got.Summary.Burst != cfg.Effect.OpenBurst {
		t.Errorf("expected open burst %d in summary, got %d", cfg.Effect.OpenBurst, got.Summary.Burst)
	}
}
