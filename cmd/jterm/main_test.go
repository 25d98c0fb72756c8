package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setup writes a config pointing every path into temp dirs and seeds a
// progress file.
func setup(t *testing.T) (cfgPath, exportDir string) {
	t.Helper()
	dataDir := t.TempDir()
	exportDir = t.TempDir()
	cfgPath = filepath.Join(t.TempDir(), "config.yaml")
	yml := "data_dir: " + dataDir + "\nexport_dir: " + exportDir + "\nbackend: json\n"
	if err := os.WriteFile(cfgPath, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	progress := `{"prefecture_levels":{"Tokyo":5,"Osaka":3}}`
	if err := os.WriteFile(filepath.Join(dataDir, "progress.json"), []byte(progress), 0o600); err != nil {
		t.Fatal(err)
	}
	return cfgPath, exportDir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Fatalf("version output %q", out)
	}
}

func TestExportCSV(t *testing.T) {
	cfg, dir := setup(t)
	out, err := run(t, "--config", cfg, "export", "--format", "csv")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := filepath.Join(dir, "jterm_export.csv")
	if strings.TrimSpace(out) != want {
		t.Fatalf("printed %q, want %q", out, want)
	}
	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "Tokyo") {
		t.Fatalf("csv missing Tokyo row:\n%s", b)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	cfg, _ := setup(t)
	if _, err := run(t, "--config", cfg, "export", "--format", "xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}

func TestStatsPlain(t *testing.T) {
	cfg, _ := setup(t)
	out, err := run(t, "--config", cfg, "stats", "--plain")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Tokyo", "Osaka", "Kanto"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestBackendFlagOverridesConfig(t *testing.T) {
	cfg, _ := setup(t)
	if _, err := run(t, "--config", cfg, "--backend", "mongo", "stats"); err == nil {
		t.Fatal("invalid --backend should fail config resolution")
	}
}

func TestMigrateNeedsAction(t *testing.T) {
	if _, err := run(t, "migrate"); err == nil {
		t.Fatal("migrate without action should fail")
	}
}
