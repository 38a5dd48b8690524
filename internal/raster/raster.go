package raster

import (
	"image"
	"image/color"
	imagedraw "image/draw"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/grimoire/internal/draw"
)

// Surface is a software draw.Surface backed by a premultiplied RGBA image.
// Pixel (x, y) covers the surface square [x, x+1) x [y, y+1) and is sampled
// at its centre.
type Surface struct {
	img *image.RGBA
}

func New(w, h int) *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))}
}

// Resize reallocates the backing image; the content is cleared.
func (s *Surface) Resize(w, h int) {
	b := s.img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		s.Clear()
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
}

func (s *Surface) Size() draw.Size {
	b := s.img.Bounds()
	return draw.Size{W: float64(b.Dx()), H: float64(b.Dy())}
}

// Image exposes the backing image. It is overwritten by later draws.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Clear() { clear(s.img.Pix) }

func (s *Surface) FillCircle(c draw.Circle) {
	if !(c.Radius > 0) {
		return
	}
	r2 := c.Radius * c.Radius
	x0, y0, x1, y1 := s.clip(c.Center.X-c.Radius, c.Center.Y-c.Radius, c.Center.X+c.Radius, c.Center.Y+c.Radius)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := draw.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			d := p.Sub(c.Center)
			if d.X*d.X+d.Y*d.Y > r2 {
				continue
			}
			col, a := c.Fill.At(c.Local(p))
			s.blend(x, y, col, a)
		}
	}
}

func (s *Surface) FillRect(r draw.Rect) {
	x0, y0, x1, y1 := s.clip(r.Min.X, r.Min.Y, r.Min.X+r.Size.W, r.Min.Y+r.Size.H)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			col, a := r.Fill.At(draw.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			s.blend(x, y, col, a)
		}
	}
}

// clip converts a surface-space box to pixel bounds inside the image.
func (s *Surface) clip(minX, minY, maxX, maxY float64) (x0, y0, x1, y1 int) {
	b := s.img.Bounds()
	x0 = max(b.Min.X, int(math.Floor(minX)))
	y0 = max(b.Min.Y, int(math.Floor(minY)))
	x1 = min(b.Max.X, int(math.Ceil(maxX)))
	y1 = min(b.Max.Y, int(math.Ceil(maxY)))
	return
}

// blend composites a straight-alpha colour source-over onto pixel (x, y).
func (s *Surface) blend(x, y int, col colorful.Color, a float64) {
	if !(a > 0) {
		return
	}
	a = math.Min(a, 1)
	col = col.Clamped()
	i := s.img.PixOffset(x, y)
	pix := s.img.Pix[i : i+4 : i+4]
	inv := 1 - a
	pix[0] = to8(col.R*a*255 + float64(pix[0])*inv)
	pix[1] = to8(col.G*a*255 + float64(pix[1])*inv)
	pix[2] = to8(col.B*a*255 + float64(pix[2])*inv)
	pix[3] = to8(a*255 + float64(pix[3])*inv)
}

func to8(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// Flatten composites the surface over an opaque background.
func (s *Surface) Flatten(bg color.Color) *image.RGBA {
	b := s.img.Bounds()
	dst := image.NewRGBA(b)
	imagedraw.Draw(dst, b, image.NewUniform(bg), image.Point{}, imagedraw.Src)
	imagedraw.Draw(dst, b, s.img, b.Min, imagedraw.Over)
	return dst
}

// Average returns the mean colour of the pixels of r, clipped to the
// surface. It is used to downsample the surface onto coarse grids.
func (s *Surface) Average(r image.Rectangle) color.RGBA {
	r = r.Intersect(s.img.Bounds())
	n := r.Dx() * r.Dy()
	if n == 0 {
		return color.RGBA{}
	}
	var sr, sg, sb, sa int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := s.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			sr += int(s.img.Pix[i])
			sg += int(s.img.Pix[i+1])
			sb += int(s.img.Pix[i+2])
			sa += int(s.img.Pix[i+3])
			i += 4
		}
	}
	return color.RGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: uint8(sa / n)}
}
