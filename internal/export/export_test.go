package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DaanHessen/jterm/internal/engine"
)

func fixedWriter(dir string) *Writer {
	return &Writer{Dir: dir, Now: func() time.Time { return time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC) }}
}

func TestCSVHeaderAndRows(t *testing.T) {
	c := engine.DefaultCatalog()
	b, err := CSV(c, engine.Progress{"Tokyo": engine.LevelLived})
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	recs, err := csv.NewReader(strings.NewReader(string(b))).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 48 {
		t.Fatalf("expected header + 47 rows, got %d", len(recs))
	}
	if strings.Join(recs[0], ",") != "Prefecture_EN,Prefecture_JP,Region,Level,Experience,Capital,Population,Area_km2" {
		t.Fatalf("header = %v", recs[0])
	}
	for _, rec := range recs[1:] {
		if rec[0] == "Tokyo" {
			if rec[3] != "5" || rec[4] != "Lived there" || rec[2] != "Kanto" {
				t.Fatalf("tokyo row = %v", rec)
			}
			return
		}
	}
	t.Fatal("Tokyo row missing")
}

func TestJSONDocumentMatchesStats(t *testing.T) {
	c := engine.DefaultCatalog()
	p := engine.Progress{"Tokyo": 5, "Osaka": 3}
	s := engine.ComputeStats(c, p)
	w := fixedWriter(t.TempDir())
	b, err := w.Encode(engine.FormatJSON, c, p, s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.TotalPrefectures != 47 || d.VisitedCount != 2 || d.TotalScore != 8 || d.CompletionPercentage != 4 {
		t.Fatalf("summary mismatch: %+v", d)
	}
	if d.ExportDate != "2024-03-09 12:30:00 UTC" || d.ExportID == "" {
		t.Fatalf("metadata = %q %q", d.ExportDate, d.ExportID)
	}
	if d.LevelBreakdown["never_been"] != 45 || d.LevelBreakdown["lived"] != 1 || d.LevelBreakdown["visited"] != 1 {
		t.Fatalf("breakdown = %v", d.LevelBreakdown)
	}
	if d.RegionalProgress[engine.ZoneKansai] != [2]int{1, 7} {
		t.Fatalf("kansai = %v", d.RegionalProgress[engine.ZoneKansai])
	}
	if len(d.PrefectureDetails) != 47 || d.PrefectureDetails[0].NameEN != "Hokkaido" {
		t.Fatalf("details = %d first=%+v", len(d.PrefectureDetails), d.PrefectureDetails[0])
	}
}

func TestExportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	c := engine.DefaultCatalog()
	p := engine.Progress{"Hokkaido": 1}
	s := engine.ComputeStats(c, p)
	w := fixedWriter(dir)
	for f, name := range map[engine.Format]string{
		engine.FormatJSON:     "jterm_export.json",
		engine.FormatCSV:      "jterm_export.csv",
		engine.FormatMarkdown: "jterm_report.md",
	} {
		path, err := w.Export(context.Background(), f, c, p, s)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if path != filepath.Join(dir, name) {
			t.Fatalf("%s written to %s", f, path)
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Fatalf("%s missing or empty: %v", path, err)
		}
	}
	if _, err := w.Export(context.Background(), engine.Format("xml"), c, p, s); err == nil {
		t.Fatal("unknown format should fail")
	}
}
