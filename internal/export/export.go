// Package export serializes progress to interchange files.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/DaanHessen/jterm/internal/engine"
	"github.com/DaanHessen/jterm/internal/text"
)

const dateLayout = "2006-01-02 15:04:05 UTC"

var fileNames = map[engine.Format]string{
	engine.FormatJSON:     "jterm_export.json",
	engine.FormatCSV:      "jterm_export.csv",
	engine.FormatMarkdown: "jterm_report.md",
}

var csvHeader = []string{"Prefecture_EN", "Prefecture_JP", "Region", "Level", "Experience", "Capital", "Population", "Area_km2"}

type Document struct {
	ExportID             string                 `json:"export_id"`
	ExportDate           string                 `json:"export_date"`
	TotalPrefectures     int                    `json:"total_prefectures"`
	VisitedCount         int                    `json:"visited_count"`
	TotalScore           int                    `json:"total_score"`
	CompletionPercentage int                    `json:"completion_percentage"`
	LevelBreakdown       map[string]int         `json:"level_breakdown"`
	RegionalProgress     map[engine.Zone][2]int `json:"regional_progress"`
	PrefectureDetails    []PrefectureDetail     `json:"prefecture_details"`
}

type PrefectureDetail struct {
	NameEN     string `json:"name_en"`
	NameJP     string `json:"name_jp"`
	Region     string `json:"region"`
	Level      int    `json:"level"`
	Capital    string `json:"capital"`
	Population int    `json:"population"`
	AreaKm2    int    `json:"area_km2"`
}

// Writer writes exports into Dir. It implements engine.Exporter.
type Writer struct {
	Dir string
	Now func() time.Time
}

func NewWriter(dir string) *Writer { return &Writer{Dir: dir, Now: time.Now} }

// Export encodes and writes one format, returning the written path.
func (w *Writer) Export(ctx context.Context, f engine.Format, c *engine.Catalog, p engine.Progress, s engine.Stats) (string, error) {
	name, ok := fileNames[f]
	if !ok {
		return "", fmt.Errorf("unknown export format %q", f)
	}
	b, err := w.Encode(f, c, p, s)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.Dir, 0o700); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// Encode renders one format without touching the filesystem.
func (w *Writer) Encode(f engine.Format, c *engine.Catalog, p engine.Progress, s engine.Stats) ([]byte, error) {
	switch f {
	case engine.FormatJSON:
		return json.MarshalIndent(w.Document(c, p, s), "", "  ")
	case engine.FormatCSV:
		return CSV(c, p)
	case engine.FormatMarkdown:
		return []byte(text.ReportMarkdown(c, p, s, w.now())), nil
	}
	return nil, fmt.Errorf("unknown export format %q", f)
}

// Document builds the JSON export.
func (w *Writer) Document(c *engine.Catalog, p engine.Progress, s engine.Stats) Document {
	d := Document{
		ExportID:             uuid.NewString(),
		ExportDate:           w.now().UTC().Format(dateLayout),
		TotalPrefectures:     s.Total,
		VisitedCount:         s.Visited(),
		TotalScore:           s.Score,
		CompletionPercentage: s.Completion(),
		LevelBreakdown:       make(map[string]int, engine.LevelCount),
		RegionalProgress:     make(map[engine.Zone][2]int, len(s.Zones)),
		PrefectureDetails:    make([]PrefectureDetail, 0, c.Len()),
	}
	for _, l := range engine.AllLevels {
		d.LevelBreakdown[l.Key()] = s.LevelCounts[l]
	}
	for _, z := range s.Zones {
		d.RegionalProgress[z.Zone] = [2]int{z.Visited, z.Total}
	}
	for _, r := range c.Regions() {
		d.PrefectureDetails = append(d.PrefectureDetails, PrefectureDetail{
			NameEN:     r.ID,
			NameJP:     r.NameJP,
			Region:     string(r.Zone),
			Level:      int(p.Get(r.ID)),
			Capital:    r.Capital,
			Population: r.Population,
			AreaKm2:    r.AreaKm2,
		})
	}
	return d
}

// CSV renders one record per region in catalog order.
func CSV(c *engine.Catalog, p engine.Progress) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range c.Regions() {
		lvl := p.Get(r.ID)
		rec := []string{
			r.ID,
			r.NameJP,
			string(r.Zone),
			strconv.Itoa(int(lvl)),
			lvl.String(),
			r.Capital,
			strconv.Itoa(r.Population),
			strconv.Itoa(r.AreaKm2),
		}
		if err := cw.Write(rec); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

func (w *Writer) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}
