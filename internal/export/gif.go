package export

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	imagedraw "image/draw"
	"image/gif"
	"io"

	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/effect"
	"github.com/san-kum/grimoire/internal/raster"
)

var ErrNoFrames = errors.New("export: no frames captured")

// GIF captures the raster surface of a loop as an animated GIF. It is an
// effect.Observer and must be registered on the loop drawing to surface.
type GIF struct {
	surface    *raster.Surface
	background color.Color
	every      int
	delay      int

	seen   int
	frames []*image.Paletted
}

// NewGIF records every n-th frame of surface, shown for delay hundredths of
// a second each.
func NewGIF(surface *raster.Surface, background color.Color, every, delay int) *GIF {
	if every < 1 {
		every = 1
	}
	if delay < 1 {
		delay = 1
	}
	return &GIF{surface: surface, background: background, every: every, delay: delay}
}

func (g *GIF) OnFrame(_ effect.TickStats, _ draw.Frame) {
	g.seen++
	if (g.seen-1)%g.every != 0 {
		return
	}
	flat := g.surface.Flatten(g.background)
	img := image.NewPaletted(flat.Bounds(), palette.Plan9)
	imagedraw.FloydSteinberg.Draw(img, flat.Bounds(), flat, flat.Bounds().Min)
	g.frames = append(g.frames, img)
}

func (g *GIF) Len() int { return len(g.frames) }

func (g *GIF) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}
	return gif.EncodeAll(w, &anim)
}
