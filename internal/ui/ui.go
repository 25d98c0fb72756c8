package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/DaanHessen/jterm/internal/engine"
	"github.com/DaanHessen/jterm/internal/text"
)

const (
	defaultWidth  = 100
	defaultHeight = 32
	detailWidth   = 60
	detailHeight  = 20
	helpWidth     = 60
)

// Options configure a model beyond its session.
type Options struct {
	Theme    string
	MapImage string
	Logger   *log.Logger
}

type model struct {
	ctx      context.Context
	session  *engine.Session
	layout   engine.MapLayout
	keys     keyMap
	help     help.Model
	theme    string
	pal      palette
	renderer text.Renderer
	// rendered help markdown per mode, reset on theme change
	helpCache map[engine.Mode]string
	overview  *overview
	logger    *log.Logger
	width     int
	height    int
}

func newModel(ctx context.Context, s *engine.Session, opts Options) model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	theme := opts.Theme
	if _, ok := palettes[theme]; !ok {
		theme = defaultTheme
	}
	m := model{
		ctx:      ctx,
		session:  s,
		layout:   engine.NewMapLayout(s.Catalog()),
		keys:     defaultKeyMap(),
		help:     help.New(),
		logger:   logger,
		overview: loadOverview(opts.MapImage),
	}
	if m.overview.err != nil {
		logger.Info("overview image unavailable, using grid", "err", m.overview.err)
	}
	m.applyTheme(theme)
	return m
}

func (m *model) applyTheme(name string) {
	m.theme = name
	m.pal = paletteFor(name)
	m.helpCache = map[engine.Mode]string{}
	glam, err := text.NewGlamour(m.pal.Glamour, helpWidth-4)
	if err != nil {
		m.logger.Warn("glamour unavailable", "err", err)
	}
	if glam == nil {
		m.renderer = text.NewPlain()
		return
	}
	m.renderer = text.WithFallback(glam, text.NewPlain())
}

// tea.Model implementation ---------------------------------------------------
func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		cmd := m.keys.Decode(msg)
		if cmd == engine.CommandNone {
			return m, nil
		}
		switch m.session.Handle(m.ctx, cmd) {
		case engine.EffectQuit:
			return m, tea.Quit
		case engine.EffectCycleTheme:
			m.applyTheme(nextThemeName(m.theme, 1))
			m.session.SetStatus("theme: " + m.theme)
		}
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	w, h := m.size()
	st := m.session.State()
	top := m.renderTopBar(w)
	bottom := m.renderBottomBar(w)
	bodyHeight := h - lipgloss.Height(top) - lipgloss.Height(bottom)
	var body string
	switch st.Mode {
	case engine.ModeMap:
		body = m.renderMap(w, bodyHeight)
	case engine.ModeStats:
		body = m.renderStats(w, bodyHeight)
	case engine.ModeAltMap:
		body = m.renderAltMap(w, bodyHeight)
	default:
		body = m.renderList(w, bodyHeight)
	}
	body = lipgloss.NewStyle().Width(w).Height(bodyHeight).MaxHeight(bodyHeight).Render(body)
	screen := lipgloss.JoinVertical(lipgloss.Left, top, body, bottom)
	if st.Detail {
		screen = composeOverlay(screen, m.renderDetail(), w, h)
	}
	if st.Help {
		screen = composeOverlay(screen, m.renderHelp(st.Mode), w, h)
	}
	return screen
}

func (m model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// Layout rendering -----------------------------------------------------------
func (m model) renderTopBar(w int) string {
	s := m.session.Stats()
	left := fmt.Sprintf("JTERM • %s", strings.ToUpper(m.session.State().Mode.String()))
	right := fmt.Sprintf("%d/%d visited • score %d/%d", s.Visited(), s.Total, s.Score, s.MaxScore())
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Bold(true).Foreground(m.pal.Accent).Render(left + strings.Repeat(" ", gap) + right)
}

func (m model) renderBottomBar(w int) string {
	hints := m.help.View(m.keys)
	status := m.session.Status()
	if status == "" {
		return hints
	}
	line := ansi.Truncate(status, w, "…")
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(m.pal.Muted).Render(line),
		hints,
	)
}

func (m model) panel(w, h int) lipgloss.Style {
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.pal.Border).
		Foreground(m.pal.Text).
		Padding(0, 1).
		Width(max(1, w-2))
	if h > 2 {
		st = st.Height(h - 2)
	}
	return st
}

func (m model) title(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(m.pal.Accent).Render(s)
}

func (m model) square(l engine.Level) string {
	return lipgloss.NewStyle().Foreground(m.pal.LevelColor(l)).Render("■")
}

// overlays -------------------------------------------------------------------

// composeOverlay draws popup centered on top of base, replacing the cells it
// covers.
func composeOverlay(base, popup string, w, h int) string {
	lines := strings.Split(base, "\n")
	for len(lines) < h {
		lines = append(lines, "")
	}
	pl := strings.Split(popup, "\n")
	pw := lipgloss.Width(popup)
	x := max(0, (w-pw)/2)
	y := max(0, (h-len(pl))/2)
	for i, p := range pl {
		row := y + i
		if row >= len(lines) {
			break
		}
		bl := lines[row]
		left := ansi.Truncate(bl, x, "")
		if lw := ansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}
		right := ""
		if ansi.StringWidth(bl) > x+pw {
			right = ansi.TruncateLeft(bl, x+pw, "")
		}
		lines[row] = left + p + right
	}
	return strings.Join(lines, "\n")
}

func (m model) renderHelp(mode engine.Mode) string {
	body, ok := m.helpCache[mode]
	if !ok {
		out, err := m.renderer.Render(text.HelpMarkdown(mode))
		if err != nil {
			out = text.HelpMarkdown(mode)
		}
		body = strings.Trim(out, "\n")
		m.helpCache[mode] = body
	}
	return m.panel(helpWidth, 0).
		Background(m.pal.Background).
		BorderForeground(m.pal.Accent).
		Render(body)
}
