package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/grimoire/internal/config"
	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/effect"
	"github.com/san-kum/grimoire/internal/experiment"
	"github.com/san-kum/grimoire/internal/metrics"
	"github.com/san-kum/grimoire/internal/raster"
)

const (
	statusRows      = 2
	historyCapacity = 240
	sparkWidth      = 24
)

type TickMsg time.Time

// stepMsg carries a scripted action that has come due.
type stepMsg struct{ action string }

// population keeps the recent live counts for the sparkline.
type population struct {
	values []float64
}

func (p *population) OnFrame(st effect.TickStats, _ draw.Frame) {
	p.values = append(p.values, float64(st.Live))
	if len(p.values) > historyCapacity {
		p.values = p.values[1:]
	}
}

// Model is the terminal book: it owns the effect loop, samples the surface
// onto a cell canvas every frame and handles input.
type Model struct {
	cfg      *config.Config
	book     *Book
	loop     *effect.Loop
	surface  *raster.Surface
	canvas   *Canvas
	pop      *population
	stats    *metrics.Set
	theme    Theme
	interval time.Duration
	start    time.Time
	now      float64
	cols     int
	rows     int
	paused   bool
	showHelp bool
	log      *slog.Logger
}

func NewModel(cfg *config.Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	fx, err := effect.New(cfg.Effect, cfg.Rand())
	if err != nil {
		return Model{}, err
	}

	book := &Book{}
	surface := raster.New(0, 0)
	loop := effect.NewLoop(fx, book, surface)
	pop := &population{values: make([]float64, 0, historyCapacity)}
	stats := metrics.NewSet(metrics.NewPeakPopulation(), metrics.NewEmissionRate())
	loop.AddObserver(pop)
	loop.AddObserver(stats)

	return Model{
		cfg:      cfg,
		book:     book,
		loop:     loop,
		surface:  surface,
		canvas:   NewCanvas(0, 0),
		pop:      pop,
		stats:    stats,
		theme:    GetTheme(cfg.Theme),
		interval: time.Second / time.Duration(cfg.FPS),
		start:    time.Now(),
		log:      slog.Default().With("component", "viz"),
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Init starts the frame clock and schedules the configured script, which
// by default opens the book after 400ms.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	for _, s := range m.cfg.Script {
		action := s.Action
		delay := time.Duration(s.At * float64(time.Millisecond))
		cmds = append(cmds, tea.Tick(delay, func(time.Time) tea.Msg { return stepMsg{action: action} }))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.loop.Stop()
			return m, tea.Quit
		case " ", "enter":
			m.book.Toggle()
			m.log.Debug("book toggled", "open", m.book.open)
		case "b":
			m.loop.Burst()
		case "t":
			m.theme = m.theme.Next()
		case "p":
			m.paused = !m.paused
			if !m.paused {
				m.loop.Effect().Sync(m.now)
			}
		case "r":
			m.book.SetOpen(false)
			m.loop.Effect().Reset(m.now)
			m.stats.Reset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height-statusRows)
	case stepMsg:
		act, err := experiment.LookupAction(msg.action)
		if err != nil {
			m.log.Warn("skipping script step", "err", err)
			break
		}
		act(m.book, m.loop)
	case TickMsg:
		m.now = float64(time.Time(msg).Sub(m.start)) / float64(time.Millisecond)
		if m.paused {
			return m, m.tick()
		}
		if _, ok := m.loop.Frame(m.now); !ok {
			return m, nil
		}
		m.paint()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(cols, rows int) {
	m.cols, m.rows = max(cols, 0), max(rows, 0)
	m.canvas = NewCanvas(m.cols, m.rows)
	w, h := m.canvas.PixelSize()
	m.surface.Resize(w, h)
	m.book.Resize(draw.Size{W: float64(w), H: float64(h)})
	m.log.Debug("resized", "cols", m.cols, "rows", m.rows)
}

// paint samples the surface and prints the book under the emission point.
func (m *Model) paint() {
	m.canvas.Sample(m.surface, rgb(m.theme.Background))
	origin, ok := m.book.EmissionOrigin()
	if !ok {
		return
	}
	glyph := m.book.Glyph()
	col := int(origin.X)/CellW - len([]rune(glyph))/2
	row := int(origin.Y)/CellH + 1
	m.canvas.Text(col, row, glyph, rgb(m.theme.Book))
}

func (m Model) View() string {
	if m.canvas.Width == 0 || m.canvas.Height == 0 {
		return "opening the grimoire…"
	}
	st := m.theme.Styles()

	var s strings.Builder
	s.WriteString(m.canvas.Render())
	s.WriteByte('\n')

	state := st.State.Render("closed")
	if m.book.open {
		state = st.State.Render("open")
	}
	if m.paused {
		state = st.Paused.Render("paused")
	}
	vals := m.stats.Values()
	s.WriteString(fmt.Sprintf("%s  %s  %s %s  %s %s  %s %s  %s\n",
		GradientText("grimoire", m.theme.Accent, m.theme.Book),
		state,
		st.Label.Render("particles"), st.Value.Render(fmt.Sprint(m.loop.Effect().Len())),
		st.Label.Render("peak"), st.Value.Render(fmt.Sprint(vals["peak_population"])),
		st.Label.Render("rate"), st.Value.Render(fmt.Sprintf("%.1f/s", vals["emission_rate"])),
		SparklineChart(m.pop.values, sparkWidth, m.theme),
	))
	if m.showHelp {
		s.WriteString(st.Help.Render("space/enter toggle · b burst · t theme (" + m.theme.Name + ") · p pause · r reset · q quit"))
	} else {
		s.WriteString(st.KeyHint.Render("? help"))
	}
	return s.String()
}

// Run shows the book until the user quits.
func Run(cfg *config.Config, opts ...tea.ProgramOption) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err = tea.NewProgram(m, opts...).Run()
	return err
}
