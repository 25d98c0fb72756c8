package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/jterm/internal/engine"
)

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Map        key.Binding
	Stats      key.Binding
	AltMap     key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Detail     key.Binding
	Close      key.Binding
	Level      [engine.LevelCount]key.Binding
	ExportJSON key.Binding
	ExportCSV  key.Binding
	Report     key.Binding
	Theme      key.Binding
}

func defaultKeyMap() keyMap {
	km := keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:       key.NewBinding(key.WithKeys("h", "f1", "?"), key.WithHelp("h", "help")),
		Map:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "map")),
		Stats:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
		AltMap:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "overview")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		Detail:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		ExportJSON: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export json")),
		ExportCSV:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export csv")),
		Report:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "report")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	}
	digits := [engine.LevelCount]string{"0", "1", "2", "3", "4", "5"}
	for i, d := range digits {
		km.Level[i] = key.NewBinding(key.WithKeys(d), key.WithHelp(d, engine.Level(i).String()))
	}
	return km
}

// Decode maps a key press to a command. Unbound keys decode to CommandNone.
func (k keyMap) Decode(msg tea.KeyMsg) engine.Command {
	switch {
	case key.Matches(msg, k.Quit):
		return engine.CommandQuit
	case key.Matches(msg, k.Help):
		return engine.CommandToggleHelp
	case key.Matches(msg, k.Map):
		return engine.CommandToggleMap
	case key.Matches(msg, k.Stats):
		return engine.CommandToggleStats
	case key.Matches(msg, k.AltMap):
		return engine.CommandToggleAltMap
	case key.Matches(msg, k.Up):
		return engine.CommandUp
	case key.Matches(msg, k.Down):
		return engine.CommandDown
	case key.Matches(msg, k.Left):
		return engine.CommandLeft
	case key.Matches(msg, k.Right):
		return engine.CommandRight
	case key.Matches(msg, k.Detail):
		return engine.CommandToggleDetail
	case key.Matches(msg, k.Close):
		return engine.CommandCloseDetail
	case key.Matches(msg, k.ExportJSON):
		return engine.CommandExportJSON
	case key.Matches(msg, k.ExportCSV):
		return engine.CommandExportCSV
	case key.Matches(msg, k.Report):
		return engine.CommandExportReport
	case key.Matches(msg, k.Theme):
		return engine.CommandCycleTheme
	}
	for i, b := range k.Level {
		if key.Matches(msg, b) {
			return engine.SetLevelCommand(engine.Level(i))
		}
	}
	return engine.CommandNone
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Detail, k.Map, k.Stats, k.AltMap, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Detail, k.Close, k.Map, k.Stats, k.AltMap},
		k.Level[:],
		{k.ExportJSON, k.ExportCSV, k.Report, k.Theme, k.Help, k.Quit},
	}
}
