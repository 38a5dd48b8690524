package draw

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

func TestRadial_Sample(t *testing.T) {
	g := Radial{
		Radius: 10,
		Stops: []Stop{
			{Offset: 0, Color: white, Alpha: 1},
			{Offset: 0.5, Color: black, Alpha: 0.5},
			{Offset: 1, Color: black, Alpha: 0},
		},
	}

	tests := []struct {
		name   string
		offset float64
		alpha  float64
	}{
		{"before first", -1, 1},
		{"first", 0, 1},
		{"between", 0.25, 0.75},
		{"middle stop", 0.5, 0.5},
		{"outer", 1, 0},
		{"past last", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, a := g.Sample(tt.offset)
			if math.Abs(a-tt.alpha) > 1e-9 {
				t.Errorf("Sample(%v) alpha = %v, want %v", tt.offset, a, tt.alpha)
			}
		})
	}

	c, _ := g.Sample(0.25)
	if math.Abs(c.R-0.5) > 1e-9 {
		t.Errorf("expected halfway colour, got %v", c)
	}
}

func TestRadial_At(t *testing.T) {
	g := Radial{
		Center: Point{X: 5, Y: 5},
		Radius: 10,
		Stops:  []Stop{{Offset: 0, Alpha: 1}, {Offset: 1, Alpha: 0}},
	}
	if _, a := g.At(Point{X: 5, Y: 10}); math.Abs(a-0.5) > 1e-9 {
		t.Errorf("expected alpha 0.5 at half radius, got %v", a)
	}

	empty := Radial{}
	if _, a := empty.At(Point{}); a != 0 {
		t.Errorf("zero gradient should be transparent, got %v", a)
	}
}

func TestCircle_Local(t *testing.T) {
	c := Circle{Center: Point{X: 10, Y: 10}, Rotation: math.Pi / 2}
	p := c.Local(Point{X: 10, Y: 12})
	if math.Abs(p.X-2) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Errorf("Local = %v, want {2 0}", p)
	}
}

func TestSize_Empty(t *testing.T) {
	tests := []struct {
		size  Size
		empty bool
	}{
		{Size{}, true},
		{Size{W: 10}, true},
		{Size{H: 10}, true},
		{Size{W: -1, H: 5}, true},
		{Size{W: 10, H: 5}, false},
	}
	for _, tt := range tests {
		if got := tt.size.Empty(); got != tt.empty {
			t.Errorf("%v.Empty() = %v, want %v", tt.size, got, tt.empty)
		}
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Clear()
	r.FillCircle(Circle{Radius: 1})
	r.FillRect(Rect{Size: Size{W: 1, H: 1}})

	f := r.Take()
	if len(f) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(f))
	}
	if _, ok := f[0].(ClearCmd); !ok {
		t.Errorf("first command should be clear, got %T", f[0])
	}
	if len(f.Circles()) != 1 || len(f.Rects()) != 1 {
		t.Errorf("unexpected command mix: %d circles, %d rects", len(f.Circles()), len(f.Rects()))
	}
	if r.Len() != 0 {
		t.Errorf("Take should reset the recorder, %d left", r.Len())
	}

	var replay Recorder
	f.Replay(&replay)
	if replay.Len() != 3 {
		t.Errorf("replay recorded %d commands, want 3", replay.Len())
	}
}
