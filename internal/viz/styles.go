package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the status bar styles of a theme.
type Styles struct {
	State   lipgloss.Style
	Paused  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	KeyHint lipgloss.Style
	Help    lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		State:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Muted),
		Label:   lipgloss.NewStyle().Foreground(t.Muted),
		Value:   lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		KeyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Help:    lipgloss.NewStyle().Foreground(t.Text),
	}
}

// GradientText colours each rune of text along a blend from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from, to := rgb(start), rgb(end)

	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		col := lipgloss.Color(from.BlendLab(to, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(col).Render(string(r)))
	}
	return result.String()
}

// SparklineChart renders the most recent values that fit in width.
func SparklineChart(values []float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return lipgloss.NewStyle().Foreground(t.Muted).Render(strings.Repeat("─", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(chars)-1))
		b.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return lipgloss.NewStyle().Foreground(t.Accent).Render(b.String())
}
