package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/DaanHessen/jterm/internal/engine"
)

const (
	mapBlockWidth     = 52
	nameColumn        = 10
	statsBarWidth     = 20
	zoneBarWidth      = 12
	sidebarWidth      = 24
	listPanelMinWidth = 40
)

// List view --------------------------------------------------------------------

func (m model) renderList(w, h int) string {
	c := m.session.Catalog()
	p := m.session.Progress()
	st := m.session.State()

	leftW := max(listPanelMinWidth, w/2)
	inner := max(1, h-2)
	start := max(0, st.ListIndex-inner+1)
	end := min(c.Len(), start+inner)

	var b strings.Builder
	for i := start; i < end; i++ {
		r := c.At(i)
		lvl := p.Get(r.ID)
		line := fmt.Sprintf("%s %s %s %d", m.square(lvl), runewidth.FillRight(r.ID, nameColumn+2), runewidth.FillRight(r.NameJP, 10), int(lvl))
		if i == st.ListIndex {
			line = lipgloss.NewStyle().Bold(true).Foreground(m.pal.Accent).Render("▶ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	left := m.panel(leftW, h).Render(b.String())
	right := m.panel(w-leftW, h).Render(m.summary())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m model) summary() string {
	s := m.session.Stats()
	r := m.session.Selected()
	lvl := m.session.Progress().Get(r.ID)
	var b strings.Builder
	b.WriteString(m.title(fmt.Sprintf("%s %s", r.ID, r.NameJP)) + "\n")
	fmt.Fprintf(&b, "%s  %s\n", m.square(lvl), lvl)
	fmt.Fprintf(&b, "%s • capital %s\n\n", r.Zone, r.Capital)
	b.WriteString(m.title("Progress") + "\n")
	fmt.Fprintf(&b, "%s %d%%\n", m.completionBar(s.Completion()), s.Completion())
	fmt.Fprintf(&b, "visited %d of %d, score %d\n\n", s.Visited(), s.Total, s.Score)
	for _, l := range engine.AllLevels {
		fmt.Fprintf(&b, "%s %d %-16s %2d\n", m.square(l), int(l), l, s.LevelCounts[l])
	}
	return b.String()
}

// Map view ---------------------------------------------------------------------

// mapLines renders every zone block of the annotated map. Line positions
// match engine.MapLayout.
func (m model) mapLines() []string {
	c := m.session.Catalog()
	p := m.session.Progress()
	s := m.session.Stats()
	sel := m.session.State().MapIndex
	blocks := c.Blocks()

	lines := make([]string, 0, m.layout.TotalLines())
	idx := 0
	for bi, blk := range blocks {
		lines = append(lines, boxRule("╭", strings.ToUpper(string(blk.Zone))+" REGION", "╮"))
		for j := 0; j < blk.Count; j++ {
			r := c.At(idx)
			lvl := p.Get(r.ID)
			marker := " "
			if idx == sel {
				marker = lipgloss.NewStyle().Foreground(m.pal.Accent).Render("►")
			}
			lines = append(lines, fmt.Sprintf(" %s %s %s (%s) - Level %d", marker, m.square(lvl), runewidth.FillRight(r.ID, nameColumn), r.NameJP, int(lvl)))
			idx++
		}
		zs, _ := s.Zone(blk.Zone)
		lines = append(lines, boxRule("╰", fmt.Sprintf("%d/%d visited", zs.Visited, zs.Total), "╯"))
		if bi < len(blocks)-1 {
			lines = append(lines, "")
		}
	}
	return lines
}

// boxRule draws a rounded rule with a centered label.
func boxRule(left, label, right string) string {
	label = " " + label + " "
	fill := mapBlockWidth - 2 - runewidth.StringWidth(label)
	if fill < 2 {
		fill = 2
	}
	lead := fill / 2
	return left + strings.Repeat("─", lead) + label + strings.Repeat("─", fill-lead) + right
}

func (m model) renderMap(w, h int) string {
	lines := m.mapLines()
	top := m.session.State().MapScroll
	end := min(len(lines), top+engine.MapViewportHeight)
	if top > end {
		top = end
	}
	view := strings.Join(lines[top:end], "\n")
	mapW := min(w, mapBlockWidth+6)
	left := m.panel(mapW, h).Render(view)
	if w-mapW < 24 {
		return left
	}
	right := m.panel(w-mapW, h).Render(m.summary())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// Stats view -------------------------------------------------------------------

func (m model) completionBar(pct int) string {
	filled := min(statsBarWidth, pct/5)
	on := lipgloss.NewStyle().Foreground(m.pal.CompletionColor(pct)).Render(strings.Repeat("■", filled))
	off := lipgloss.NewStyle().Foreground(m.pal.BarEmpty).Render(strings.Repeat("■", statsBarWidth-filled))
	return on + off
}

func (m model) zoneLines() []string {
	s := m.session.Stats()
	lines := make([]string, 0, len(s.Zones)*2)
	for _, z := range s.Zones {
		pct := z.Percent()
		filled := min(zoneBarWidth, pct/8)
		bar := lipgloss.NewStyle().Foreground(m.pal.CompletionColor(pct)).Render(strings.Repeat("█", filled)) +
			lipgloss.NewStyle().Foreground(m.pal.BarEmpty).Render(strings.Repeat("░", zoneBarWidth-filled))
		lines = append(lines,
			fmt.Sprintf("%-9s %d/%d", z.Zone, z.Visited, z.Total),
			fmt.Sprintf("  %s %3d%%", bar, pct),
		)
	}
	return lines
}

func (m model) renderStats(w, h int) string {
	s := m.session.Stats()
	topH := min(h/2, 12)
	half := w / 2

	var overall strings.Builder
	overall.WriteString(m.title("Overall progress") + "\n\n")
	fmt.Fprintf(&overall, "Total prefectures: %d\n", s.Total)
	fmt.Fprintf(&overall, "Visited: %d / %d (%d%%)\n", s.Visited(), s.Total, s.Completion())
	fmt.Fprintf(&overall, "Total score: %d\nMax possible: %d\n\n", s.Score, s.MaxScore())
	fmt.Fprintf(&overall, "%s  %d%%", m.completionBar(s.Completion()), s.Completion())

	var levels strings.Builder
	levels.WriteString(m.title("Level breakdown") + "\n\n")
	for i := engine.LevelCount - 1; i >= 0; i-- {
		l := engine.Level(i)
		fmt.Fprintf(&levels, "%s %-16s (%d): %d\n", m.square(l), l, i, s.LevelCounts[i])
	}
	fmt.Fprintf(&levels, "\nMost common: Level %d", int(s.MostCommonLevel()))

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel(half, topH).Render(overall.String()),
		m.panel(w-half, topH).Render(levels.String()),
	)

	zh := max(3, h-topH)
	zl := m.zoneLines()
	scroll := min(m.session.State().StatsScroll, max(0, len(zl)-1))
	visible := zl[scroll:]
	if room := zh - 3; room > 0 && len(visible) > room {
		visible = visible[:room]
	}
	zones := m.title("Regional progress") + "\n" + strings.Join(visible, "\n")
	return lipgloss.JoinVertical(lipgloss.Left, topRow, m.panel(w, zh).Render(zones))
}

// Overview -------------------------------------------------------------------

func (m model) sidebarLines() []string {
	c := m.session.Catalog()
	p := m.session.Progress()
	lines := make([]string, 0, c.Len())
	for _, r := range c.Regions() {
		lvl := p.Get(r.ID)
		mark := "○"
		if lvl != engine.LevelNever {
			mark = fmt.Sprint(int(lvl))
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(m.pal.LevelColor(lvl)).Render(mark+" "+r.NameJP))
	}
	return lines
}

func (m model) renderAltMap(w, h int) string {
	mapW := max(10, w-sidebarWidth)
	var graphic string
	if m.overview.available() {
		graphic = m.overview.render(mapW-4, max(1, h-2))
	} else {
		graphic = fallbackGrid(m.session.Catalog(), m.session.Progress(), m.pal)
	}
	lines := m.sidebarLines()
	start := min(m.session.State().SidebarScroll, len(lines))
	end := min(len(lines), start+engine.SidebarVisible)
	side := m.title("Prefectures") + "\n" + strings.Join(lines[start:end], "\n")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel(mapW, h).Render(graphic),
		m.panel(sidebarWidth, h).Render(side),
	)
}

// Detail popup ---------------------------------------------------------------

func (m model) renderDetail() string {
	r := m.session.Selected()
	lvl := m.session.Progress().Get(r.ID)
	var b strings.Builder
	b.WriteString(m.title("PREFECTURE DETAILS") + "\n\n")
	fmt.Fprintf(&b, "Name: %s (%s)\n", r.ID, r.NameJP)
	fmt.Fprintf(&b, "Region: %s\n", r.Zone)
	fmt.Fprintf(&b, "Capital: %s\n", r.Capital)
	fmt.Fprintf(&b, "Population: %s\n", humanize.Comma(int64(r.Population)))
	fmt.Fprintf(&b, "Area: %s km²\n", humanize.Comma(int64(r.AreaKm2)))
	fmt.Fprintf(&b, "Population density: %s people/km²\n\n", humanize.CommafWithDigits(r.Density(), 1))
	b.WriteString("Travel experience:\n")
	fmt.Fprintf(&b, "%s Level %d: %s\n\n", m.square(lvl), int(lvl), lvl)
	b.WriteString(lipgloss.NewStyle().Foreground(m.pal.Muted).Render("esc close • 0-5 change level"))
	return m.panel(detailWidth, detailHeight).
		Background(m.pal.Background).
		BorderForeground(m.pal.LevelColor(lvl)).
		Render(b.String())
}
