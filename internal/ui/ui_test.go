package ui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/jterm/internal/engine"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func testModel(t *testing.T) model {
	t.Helper()
	s := engine.NewSession(engine.DefaultCatalog(), engine.Progress{"Tokyo": engine.LevelLived}, nil, nil, nil)
	return newModel(context.Background(), s, Options{MapImage: filepath.Join(t.TempDir(), "missing.png")})
}

func press(t *testing.T, m model, msgs ...tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func TestDecodeKeys(t *testing.T) {
	k := defaultKeyMap()
	cases := []struct {
		msg  tea.KeyMsg
		want engine.Command
	}{
		{runes("q"), engine.CommandQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, engine.CommandQuit},
		{runes("h"), engine.CommandToggleHelp},
		{tea.KeyMsg{Type: tea.KeyF1}, engine.CommandToggleHelp},
		{runes("m"), engine.CommandToggleMap},
		{runes("s"), engine.CommandToggleStats},
		{runes("w"), engine.CommandToggleAltMap},
		{runes("k"), engine.CommandUp},
		{tea.KeyMsg{Type: tea.KeyDown}, engine.CommandDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, engine.CommandLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, engine.CommandRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, engine.CommandToggleDetail},
		{tea.KeyMsg{Type: tea.KeyEsc}, engine.CommandCloseDetail},
		{runes("0"), engine.CommandSetLevel0},
		{runes("3"), engine.CommandSetLevel3},
		{runes("e"), engine.CommandExportJSON},
		{runes("x"), engine.CommandExportCSV},
		{runes("z"), engine.CommandNone},
		{runes("M"), engine.CommandNone},
	}
	for _, tc := range cases {
		if got := k.Decode(tc.msg); got != tc.want {
			t.Fatalf("Decode(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestMapLinesMatchLayout(t *testing.T) {
	m := testModel(t)
	lines := m.mapLines()
	if len(lines) != m.layout.TotalLines() {
		t.Fatalf("rendered %d lines, layout expects %d", len(lines), m.layout.TotalLines())
	}
	c := engine.DefaultCatalog()
	for i, r := range c.Regions() {
		if !strings.Contains(lines[m.layout.LineOf(i)], r.ID) {
			t.Fatalf("line %d should show %s: %q", m.layout.LineOf(i), r.ID, lines[m.layout.LineOf(i)])
		}
	}
}

func TestUpdateTogglesAndQuits(t *testing.T) {
	m := testModel(t)
	m, _ = press(t, m, runes("m"))
	if m.session.State().Mode != engine.ModeMap {
		t.Fatalf("mode = %v", m.session.State().Mode)
	}
	m, _ = press(t, m, runes("m"))
	if m.session.State().Mode != engine.ModeList {
		t.Fatalf("second toggle should return to list, got %v", m.session.State().Mode)
	}
	_, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
}

func TestViewShowsOverlays(t *testing.T) {
	m := testModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "PREFECTURE DETAILS") {
		t.Fatal("detail popup missing from view")
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("s"), runes("w"))
	if v := m.View(); !strings.Contains(v, "東京都") {
		t.Fatal("overview sidebar should list prefectures")
	}
}

func TestThemeCycle(t *testing.T) {
	m := testModel(t)
	before := m.theme
	m, _ = press(t, m, runes("t"))
	if m.theme == before || m.theme != nextThemeName(before, 1) {
		t.Fatalf("theme %s -> %s", before, m.theme)
	}
	if nextThemeName("dracula", len(themeNames())) != "dracula" {
		t.Fatal("cycling through every theme should wrap around")
	}
}

func TestFallbackGridPlacesEveryRegion(t *testing.T) {
	c := engine.DefaultCatalog()
	out := fallbackGrid(c, engine.Progress{}, paletteFor(defaultTheme))
	if n := strings.Count(out, "■"); n != c.Len() {
		t.Fatalf("grid shows %d squares, want %d", n, c.Len())
	}
	if n := strings.Count(out, "\n") + 1; n != gridRows {
		t.Fatalf("grid has %d rows", n)
	}
}

func TestOverviewRendersImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "japan.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	o := loadOverview(path)
	if !o.available() {
		t.Fatalf("image not loaded: %v", o.err)
	}
	out := o.render(8, 4)
	if strings.Count(out, "\n")+1 != 4 || !strings.Contains(out, "▀") {
		t.Fatalf("unexpected rendering:\n%s", out)
	}
	if loadOverview(filepath.Join(t.TempDir(), "none.png")).available() {
		t.Fatal("missing image should not be available")
	}
}

func TestComposeOverlayKeepsHeight(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 20)+"\n", 9) + strings.Repeat(".", 20)
	out := composeOverlay(base, "ab\ncd", 20, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("overlay changed height to %d", len(lines))
	}
	if lines[4] != ".........ab........." {
		t.Fatalf("popup misplaced: %q", lines[4])
	}
}
