package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/grimoire/internal/draw"
)

// SVG is a draw.Surface that builds an SVG document. Every fill becomes a
// userSpaceOnUse radial gradient; a clear drops everything drawn so far.
type SVG struct {
	size       draw.Size
	background string
	defs       []string
	body       []string
	next       int
}

// NewSVG creates an SVG surface. background is a CSS colour, or empty for a
// transparent document.
func NewSVG(size draw.Size, background string) *SVG {
	return &SVG{size: size, background: background}
}

func (s *SVG) Clear() {
	s.defs = s.defs[:0]
	s.body = s.body[:0]
}

func (s *SVG) FillCircle(c draw.Circle) {
	id := s.gradient(c.Fill)
	s.body = append(s.body, fmt.Sprintf(
		`<circle r="%.2f" fill="url(#%s)" transform="translate(%.2f %.2f) rotate(%.2f)"/>`,
		c.Radius, id, c.Center.X, c.Center.Y, c.Rotation*180/math.Pi))
}

func (s *SVG) FillRect(r draw.Rect) {
	id := s.gradient(r.Fill)
	s.body = append(s.body, fmt.Sprintf(
		`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="url(#%s)"/>`,
		r.Min.X, r.Min.Y, r.Size.W, r.Size.H, id))
}

func (s *SVG) gradient(g draw.Radial) string {
	id := fmt.Sprintf("g%d", s.next)
	s.next++

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.2f" cy="%.2f" r="%.2f">`,
		id, g.Center.X, g.Center.Y, g.Radius))
	for _, st := range g.Stops {
		sb.WriteString(fmt.Sprintf(`<stop offset="%.3f" stop-color="%s" stop-opacity="%.3f"/>`,
			st.Offset, hex(st.Color), st.Alpha))
	}
	sb.WriteString("</radialGradient>")
	s.defs = append(s.defs, sb.String())
	return id
}

func hex(c colorful.Color) string { return c.Clamped().Hex() }

// String renders the document.
func (s *SVG) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, s.size.W, s.size.H, s.size.W, s.size.H))

	if len(s.defs) > 0 {
		sb.WriteString("<defs>\n")
		for _, d := range s.defs {
			sb.WriteString(d + "\n")
		}
		sb.WriteString("</defs>\n")
	}
	if s.background != "" {
		sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>
`, s.background))
	}
	for _, el := range s.body {
		sb.WriteString(el + "\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// FrameToSVG renders a single frame.
func FrameToSVG(f draw.Frame, size draw.Size, background string) string {
	s := NewSVG(size, background)
	f.Replay(s)
	return s.String()
}
