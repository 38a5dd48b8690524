package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines the colour scheme of the book and its status bar.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Book       lipgloss.Color
}

var (
	ThemeParchment = Theme{
		Name:       "parchment",
		Background: lipgloss.Color("#1b1410"),
		Text:       lipgloss.Color("#f3e3c3"),
		Muted:      lipgloss.Color("#8a7356"),
		Accent:     lipgloss.Color("#ffd278"), // candle gold
		Book:       lipgloss.Color("#b5651d"),
	}

	ThemeMoonlight = Theme{
		Name:       "moonlight",
		Background: lipgloss.Color("#0b1020"),
		Text:       lipgloss.Color("#dde6ff"),
		Muted:      lipgloss.Color("#5a6788"),
		Accent:     lipgloss.Color("#a8c8ff"),
		Book:       lipgloss.Color("#6b7fd7"),
	}

	ThemeEmber = Theme{
		Name:       "ember",
		Background: lipgloss.Color("#140806"),
		Text:       lipgloss.Color("#ffe0cc"),
		Muted:      lipgloss.Color("#7a4a3a"),
		Accent:     lipgloss.Color("#ff8a3d"),
		Book:       lipgloss.Color("#a0302a"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Accent:     lipgloss.Color("#0088ff"),
		Book:       lipgloss.Color("#cccccc"),
	}

	Themes = []Theme{
		ThemeParchment,
		ThemeMoonlight,
		ThemeEmber,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to parchment.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeParchment
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Next returns the theme after t in Themes, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// rgb parses a theme colour. Unparseable colours read as black.
func rgb(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}
	}
	return col
}
