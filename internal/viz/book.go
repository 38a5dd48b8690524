package viz

import (
	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/experiment"
)

const (
	bookOpen   = "╲▁▁┃▁▁╱"
	bookClosed = "▕▇▇▇▇▇▏"
)

// Book is the widget the particles rise from. It is the effect's host.
type Book struct {
	open bool
	size draw.Size
}

func (b *Book) EmitterActive() bool { return b.open }

func (b *Book) EmissionOrigin() (draw.Point, bool) {
	if b.size.Empty() {
		return draw.Point{}, false
	}
	return draw.Point{X: b.size.W / 2, Y: b.size.H * experiment.OriginHeight}, true
}

func (b *Book) SurfaceSize() draw.Size { return b.size }

func (b *Book) SetOpen(open bool) { b.open = open }

func (b *Book) Toggle() { b.open = !b.open }

func (b *Book) Resize(size draw.Size) { b.size = size }

// Glyph is the book as it is printed under the emission point.
func (b *Book) Glyph() string {
	if b.open {
		return bookOpen
	}
	return bookClosed
}
