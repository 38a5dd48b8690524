package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/grimoire/internal/config"
	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/raster"
)

func newModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 11
	m, err := NewModel(cfg)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func at(m Model, ms int) TickMsg {
	return TickMsg(m.start.Add(time.Duration(ms) * time.Millisecond))
}

func TestModel_WaitsForLayout(t *testing.T) {
	m := newModel(t)
	m, _ = update(t, m, stepMsg{action: config.ActionOpen})
	m, cmd := update(t, m, at(m, 20))

	if cmd == nil {
		t.Fatal("expected next frame to be scheduled")
	}
	if n := m.loop.Effect().Len(); n != 0 {
		t.Errorf("no particles before the first resize, got %d", n)
	}
	if !strings.Contains(m.View(), "opening") {
		t.Error("expected placeholder view before layout")
	}
}

func TestModel_Resize(t *testing.T) {
	m := newModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})

	if m.canvas.Width != 40 || m.canvas.Height != 18 {
		t.Errorf("expected 40x18 canvas, got %dx%d", m.canvas.Width, m.canvas.Height)
	}
	if got := m.book.SurfaceSize(); got != (draw.Size{W: 160, H: 144}) {
		t.Errorf("expected 160x144 surface, got %v", got)
	}
	if got := m.surface.Size(); got != (draw.Size{W: 160, H: 144}) {
		t.Errorf("raster not resized: %v", got)
	}
}

func TestModel_OpenAndBurst(t *testing.T) {
	m := newModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	m, _ = update(t, m, stepMsg{action: config.ActionOpen})
	m, _ = update(t, m, at(m, 20))

	fx := m.loop.Effect()
	if fx.Len() != 20 {
		t.Fatalf("expected the open burst of 20, got %d", fx.Len())
	}

	m, _ = update(t, m, key("b"))
	m, _ = update(t, m, at(m, 40))
	if fx.LastTick().Burst != 30 {
		t.Errorf("expected extra burst of 30, got %d", fx.LastTick().Burst)
	}

	if !strings.Contains(m.View(), "open") {
		t.Error("status should report the open book")
	}

	m, _ = update(t, m, key(" "))
	if m.book.EmitterActive() {
		t.Error("space should close the book")
	}
}

func TestModel_Pause(t *testing.T) {
	m := newModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	m, _ = update(t, m, at(m, 20))
	frames := m.loop.Effect().Frames()

	m, _ = update(t, m, key("p"))
	m, cmd := update(t, m, at(m, 40))
	if cmd == nil {
		t.Error("paused model must keep its clock running")
	}
	if m.loop.Effect().Frames() != frames {
		t.Error("paused model must not tick the effect")
	}

	m, _ = update(t, m, key("p"))
	m, _ = update(t, m, at(m, 60))
	if got := m.loop.Effect().LastTick().Dt; got != 20 {
		t.Errorf("expected a 20ms delta after resume, got %v", got)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t)
	m, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !m.loop.Stopped() {
		t.Error("quit must stop the loop")
	}
	if _, cmd = update(t, m, at(m, 20)); cmd != nil {
		t.Error("a stopped loop must not schedule frames")
	}
}

func TestModel_ThemeCycle(t *testing.T) {
	m := newModel(t)
	first := m.theme.Name
	for range Themes {
		m, _ = update(t, m, key("t"))
	}
	if m.theme.Name != first {
		t.Errorf("cycling every theme should wrap to %s, got %s", first, m.theme.Name)
	}
}

func TestModel_Reset(t *testing.T) {
	m := newModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	m, _ = update(t, m, stepMsg{action: config.ActionOpen})
	m, _ = update(t, m, at(m, 20))
	m, _ = update(t, m, key("r"))

	if m.book.EmitterActive() || m.loop.Effect().Len() != 0 {
		t.Error("reset should close the book and drop particles")
	}
}

func TestCanvas_Sample(t *testing.T) {
	c := NewCanvas(2, 1)
	w, h := c.PixelSize()
	s := raster.New(w, h)
	red := colorful.Color{R: 1}
	s.FillRect(draw.Rect{
		Size: draw.Size{W: CellW, H: CellH / 2},
		Fill: draw.Radial{Radius: 100, Stops: []draw.Stop{{Color: red, Alpha: 1}}},
	})

	bg := colorful.Color{B: 1}
	c.Sample(s, bg)

	if got := c.Grid[0][0].Top.Hex(); got != "#ff0000" {
		t.Errorf("painted half = %s, want #ff0000", got)
	}
	if got := c.Grid[0][0].Bottom.Hex(); got != "#0000ff" {
		t.Errorf("empty half = %s, want background", got)
	}
	if got := c.Grid[0][1].Top.Hex(); got != "#0000ff" {
		t.Errorf("untouched cell = %s, want background", got)
	}
}

func TestCanvas_Text(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Text(2, 1, "abc", colorful.Color{R: 1, G: 1, B: 1})
	c.Text(0, 5, "zz", colorful.Color{})

	if c.Grid[1][2].Glyph != 'a' || c.Grid[1][3].Glyph != 'b' {
		t.Error("text not written")
	}
	if c.Grid[0][0].Glyph != 0 {
		t.Error("out of range row must be ignored")
	}
	if strings.Count(c.Render(), "\n") != 1 {
		t.Error("expected two rendered rows")
	}
}

func TestBook(t *testing.T) {
	b := &Book{}
	if _, ok := b.EmissionOrigin(); ok {
		t.Error("unsized book has no origin")
	}
	b.Resize(draw.Size{W: 100, H: 200})
	if p, _ := b.EmissionOrigin(); p.X != 50 || p.Y != 90 {
		t.Errorf("origin = %v, want (50, 90)", p)
	}
	if b.Glyph() != bookClosed {
		t.Error("closed glyph expected")
	}
	b.Toggle()
	if b.Glyph() != bookOpen {
		t.Error("open glyph expected")
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 0, ThemeMinimal); got != "" {
		t.Errorf("zero width should render nothing, got %q", got)
	}
	out := SparklineChart([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8}, 4, ThemeMinimal)
	if !strings.Contains(out, "▁▃▅█") {
		t.Errorf("expected the last four values scaled, got %q", out)
	}
}
