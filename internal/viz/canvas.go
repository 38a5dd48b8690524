package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/grimoire/internal/raster"
)

// Each terminal cell shows CellW x CellH surface pixels as two stacked
// half-block pixels.
const (
	CellW = 4
	CellH = 8
)

const upperHalf = '▀'

// Cell is one terminal cell. A non-zero Glyph is printed in Ink over the
// mean of both halves.
type Cell struct {
	Top, Bottom colorful.Color
	Glyph       rune
	Ink         colorful.Color
}

type Canvas struct {
	Width, Height int
	Grid          [][]Cell
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]Cell, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]Cell, w)
	}
	return c
}

// PixelSize is the surface size the canvas covers.
func (c *Canvas) PixelSize() (int, int) { return c.Width * CellW, c.Height * CellH }

// Sample downsamples s onto the grid over an opaque background, dropping
// any glyphs.
func (c *Canvas) Sample(s *raster.Surface, bg colorful.Color) {
	const half = CellH / 2
	for row := range c.Grid {
		for col := range c.Grid[row] {
			x, y := col*CellW, row*CellH
			top := s.Average(image.Rect(x, y, x+CellW, y+half))
			bottom := s.Average(image.Rect(x, y+half, x+CellW, y+CellH))
			c.Grid[row][col] = Cell{Top: over(top, bg), Bottom: over(bottom, bg)}
		}
	}
}

// over composites a premultiplied colour onto bg.
func over(c color.RGBA, bg colorful.Color) colorful.Color {
	inv := 1 - float64(c.A)/255
	return colorful.Color{
		R: float64(c.R)/255 + bg.R*inv,
		G: float64(c.G)/255 + bg.G*inv,
		B: float64(c.B)/255 + bg.B*inv,
	}.Clamped()
}

// Text writes s from (col, row) rightwards, clipped to the grid.
func (c *Canvas) Text(col, row int, s string, ink colorful.Color) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		if col >= 0 && col < c.Width {
			c.Grid[row][col].Glyph = r
			c.Grid[row][col].Ink = ink
		}
		col++
	}
}

func (cell Cell) paint() (fg, bg string, r rune) {
	if cell.Glyph != 0 {
		return cell.Ink.Hex(), cell.Top.BlendRgb(cell.Bottom, 0.5).Hex(), cell.Glyph
	}
	return cell.Top.Hex(), cell.Bottom.Hex(), upperHalf
}

// Render prints the grid, one styled run per stretch of equal colours.
func (c *Canvas) Render() string {
	var b strings.Builder
	var run strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		var fg, bg string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg))
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for _, cell := range row {
			f, g, r := cell.paint()
			if f != fg || g != bg {
				flush()
				fg, bg = f, g
			}
			run.WriteRune(r)
		}
		flush()
	}
	return b.String()
}
