package text

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DaanHessen/jterm/internal/engine"
)

type brokenRenderer struct{}

func (brokenRenderer) Render(string) (string, error) { return "", errors.New("boom") }

func TestFallbackRendererUsesBackupOnError(t *testing.T) {
	r := WithFallback(brokenRenderer{}, NewPlain())
	out, err := r.Render("# Title\n\n**bold** `code`")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "#") || strings.Contains(out, "**") || strings.Contains(out, "`") {
		t.Fatalf("markers not stripped: %q", out)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "bold") {
		t.Fatalf("content lost: %q", out)
	}
}

func TestHelpMarkdownPerMode(t *testing.T) {
	if !strings.Contains(HelpMarkdown(engine.ModeMap), "select prefecture") {
		t.Fatal("map help should describe selection")
	}
	if !strings.Contains(HelpMarkdown(engine.ModeStats), "export CSV") {
		t.Fatal("stats help should describe exports")
	}
	for _, m := range []engine.Mode{engine.ModeList, engine.ModeMap, engine.ModeStats, engine.ModeAltMap} {
		if !strings.Contains(HelpMarkdown(m), "Lived there") {
			t.Fatalf("%s help is missing the level legend", m)
		}
	}
}

func TestReportMarkdown(t *testing.T) {
	c := engine.DefaultCatalog()
	p := engine.Progress{"Tokyo": engine.LevelLived}
	md := ReportMarkdown(c, p, engine.ComputeStats(c, p), time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC))
	for _, want := range []string{"2024-01-02 03:04 UTC", "1 / 47 (2%)", "**Tokyo**", "14,047,594", "| Kanto | 1 | 7 | 14% |"} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}
}
