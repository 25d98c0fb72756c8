package text

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"

	"github.com/DaanHessen/jterm/internal/engine"
)

// Renderer turns markdown into terminal text.
type Renderer interface {
	Render(md string) (string, error)
}

// NewGlamour returns a glamour renderer wrapping at width.
func NewGlamour(style string, width int) (Renderer, error) {
	if style == "" {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	return r, nil
}

// plainRenderer strips the markdown markers used by this package. It is the
// offline fallback when glamour cannot render.
type plainRenderer struct{}

func NewPlain() Renderer { return plainRenderer{} }

var (
	headingRe = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphRe    = regexp.MustCompile("\\*\\*|`")
	tableRule = regexp.MustCompile(`(?m)^\|[-| :]+\|\n`)
)

func (plainRenderer) Render(md string) (string, error) {
	out := headingRe.ReplaceAllString(md, "")
	out = tableRule.ReplaceAllString(out, "")
	out = emphRe.ReplaceAllString(out, "")
	return out, nil
}

// WithFallback returns a renderer that prefers primary and falls back on error.
func WithFallback(primary, fallback Renderer) Renderer { return &fallbackRenderer{p: primary, f: fallback} }

type fallbackRenderer struct{ p, f Renderer }

func (r *fallbackRenderer) Render(md string) (string, error) {
	if r.p == nil {
		return r.f.Render(md)
	}
	if s, err := r.p.Render(md); err == nil {
		return s, nil
	}
	return r.f.Render(md)
}

var levelLegend = "- `0` Never been there\n- `1` Passed there\n- `2` Alighted there\n- `3` Visited there\n- `4` Stayed there\n- `5` Lived there\n"

// HelpMarkdown returns the controls for a mode.
func HelpMarkdown(m engine.Mode) string {
	var b strings.Builder
	switch m {
	case engine.ModeMap:
		b.WriteString("# Map view\n\n")
		b.WriteString("- `↑/↓` `j/k` scroll the map\n- `←/→` select prefecture\n- `enter` details\n- `0-5` set level\n- `m` back to list\n- `s` stats\n")
	case engine.ModeStats:
		b.WriteString("# Stats view\n\n")
		b.WriteString("- `↑/↓` `j/k` scroll regions\n- `0-5` set level of the list selection\n- `s` back to list\n- `m` map\n- `e` export JSON\n- `x` export CSV\n- `r` markdown report\n")
		b.WriteString("\nExports are written to your home directory. Progress is saved after every change.\n")
	case engine.ModeAltMap:
		b.WriteString("# Overview\n\n")
		b.WriteString("- `↑/↓` `j/k` scroll the sidebar\n- `0-5` set level of the list selection\n- `w` back to list\n")
	default:
		b.WriteString("# Controls\n\n")
		b.WriteString("- `↑/↓` `j/k` navigate\n- `enter` details\n- `0-5` set level\n- `m` map\n- `w` overview\n- `s` stats\n")
	}
	b.WriteString("- `t` cycle theme\n- `h` `F1` toggle help\n- `esc` close overlays\n- `q` quit\n\n## Levels\n\n")
	b.WriteString(levelLegend)
	return b.String()
}

// ReportMarkdown renders a human readable summary of progress.
func ReportMarkdown(c *engine.Catalog, p engine.Progress, s engine.Stats, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# jterm report\n\n_Generated %s_\n\n", now.UTC().Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "- **Visited:** %d / %d (%d%%)\n", s.Visited(), s.Total, s.Completion())
	fmt.Fprintf(&b, "- **Score:** %d / %d\n", s.Score, s.MaxScore())
	fmt.Fprintf(&b, "- **Most common level:** %s\n\n", s.MostCommonLevel())

	b.WriteString("## Levels\n\n| Level | Regions |\n|---|---|\n")
	for _, l := range engine.AllLevels {
		fmt.Fprintf(&b, "| %d %s | %d |\n", int(l), l, s.LevelCounts[l])
	}

	b.WriteString("\n## Zones\n\n| Zone | Visited | Total | % |\n|---|---|---|---|\n")
	for _, z := range s.Zones {
		fmt.Fprintf(&b, "| %s | %d | %d | %d%% |\n", z.Zone, z.Visited, z.Total, z.Percent())
	}

	b.WriteString("\n## Visited prefectures\n\n")
	visited := 0
	for _, r := range c.Regions() {
		lvl := p.Get(r.ID)
		if lvl == engine.LevelNever {
			continue
		}
		visited++
		fmt.Fprintf(&b, "- **%s** (%s) %s, capital %s, pop. %s\n", r.ID, r.NameJP, lvl, r.Capital, humanize.Comma(int64(r.Population)))
	}
	if visited == 0 {
		b.WriteString("Nothing yet.\n")
	}
	return b.String()
}
