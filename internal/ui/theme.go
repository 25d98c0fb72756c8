package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/jterm/internal/engine"
)

const defaultTheme = "flexoki_light"

type palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Red        lipgloss.Color
	Yellow     lipgloss.Color
	Green      lipgloss.Color
	Blue       lipgloss.Color
	Purple     lipgloss.Color
	BarEmpty   lipgloss.Color
	// Glamour standard style matching the palette.
	Glamour string
}

var palettes = map[string]palette{
	"flexoki_light": {
		Background: lipgloss.Color("#fcf9f3"),
		Surface:    lipgloss.Color("#f2ede2"),
		Text:       lipgloss.Color("#100f0d"),
		Muted:      lipgloss.Color("#57524a"),
		Accent:     lipgloss.Color("#248b8e"),
		Border:     lipgloss.Color("#bcae93"),
		Red:        lipgloss.Color("#af4b4a"),
		Yellow:     lipgloss.Color("#ad871d"),
		Green:      lipgloss.Color("#42823e"),
		Blue:       lipgloss.Color("#486ca6"),
		Purple:     lipgloss.Color("#8959a8"),
		BarEmpty:   lipgloss.Color("#d7ccb7"),
		Glamour:    "light",
	},
	"catppuccin": {
		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Text:       lipgloss.Color("#cdd6f4"),
		Muted:      lipgloss.Color("#a6adc8"),
		Accent:     lipgloss.Color("#cba6f7"),
		Border:     lipgloss.Color("#585b70"),
		Red:        lipgloss.Color("#f38ba8"),
		Yellow:     lipgloss.Color("#f9e2af"),
		Green:      lipgloss.Color("#a6e3a1"),
		Blue:       lipgloss.Color("#89b4fa"),
		Purple:     lipgloss.Color("#cba6f7"),
		BarEmpty:   lipgloss.Color("#45475a"),
		Glamour:    "dark",
	},
	"dracula": {
		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#343746"),
		Text:       lipgloss.Color("#f8f8f2"),
		Muted:      lipgloss.Color("#6272a4"),
		Accent:     lipgloss.Color("#ff79c6"),
		Border:     lipgloss.Color("#44475a"),
		Red:        lipgloss.Color("#ff5555"),
		Yellow:     lipgloss.Color("#f1fa8c"),
		Green:      lipgloss.Color("#50fa7b"),
		Blue:       lipgloss.Color("#8be9fd"),
		Purple:     lipgloss.Color("#bd93f9"),
		BarEmpty:   lipgloss.Color("#44475a"),
		Glamour:    "dracula",
	},
	"gruvbox": {
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Text:       lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#a89984"),
		Accent:     lipgloss.Color("#fabd2f"),
		Border:     lipgloss.Color("#665c54"),
		Red:        lipgloss.Color("#fb4934"),
		Yellow:     lipgloss.Color("#fabd2f"),
		Green:      lipgloss.Color("#b8bb26"),
		Blue:       lipgloss.Color("#83a598"),
		Purple:     lipgloss.Color("#d3869b"),
		BarEmpty:   lipgloss.Color("#504945"),
		Glamour:    "dark",
	},
}

// LevelColor maps a level to its display color.
func (p palette) LevelColor(l engine.Level) lipgloss.Color {
	switch l {
	case engine.LevelPassed:
		return p.Red
	case engine.LevelAlighted:
		return p.Yellow
	case engine.LevelVisited:
		return p.Green
	case engine.LevelStayed:
		return p.Purple
	case engine.LevelLived:
		return p.Blue
	default:
		return p.Muted
	}
}

// CompletionColor picks the overall bar color by threshold.
func (p palette) CompletionColor(pct int) lipgloss.Color {
	switch {
	case pct < 20:
		return p.Red
	case pct < 50:
		return p.Yellow
	case pct < 75:
		return p.Blue
	default:
		return p.Green
	}
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[defaultTheme]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}
