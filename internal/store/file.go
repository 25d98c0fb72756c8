package store

import (
	"context"
	"encoding/json"
	errs "errors"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/DaanHessen/jterm/internal/engine"
)

// progressFile is the on-disk shape of progress.json.
type progressFile struct {
	PrefectureLevels map[string]int `json:"prefecture_levels"`
}

// FileStore keeps progress in a pretty-printed JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (s *FileStore) Path() string { return s.path }

// Load returns empty progress when the file does not exist yet.
func (s *FileStore) Load(ctx context.Context) (engine.Progress, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errs.Is(err, os.ErrNotExist) {
			return engine.Progress{}, nil
		}
		return nil, wrap(err, "read progress")
	}
	var pf progressFile
	if err := json.Unmarshal(b, &pf); err != nil {
		return nil, errors.Wrapf(engine.ErrCorruptProgress, "%s: %v", s.path, err)
	}
	p := make(engine.Progress, len(pf.PrefectureLevels))
	for id, v := range pf.PrefectureLevels {
		lvl, err := engine.ParseLevel(v)
		if err != nil {
			return nil, errors.Wrapf(engine.ErrCorruptProgress, "%s: region %s: %v", s.path, id, err)
		}
		if lvl != engine.LevelNever {
			p[id] = lvl
		}
	}
	return p, nil
}

// Save writes the whole mapping through a temp file and rename so a failed
// write never leaves a truncated file behind.
func (s *FileStore) Save(ctx context.Context, p engine.Progress) error {
	pf := progressFile{PrefectureLevels: make(map[string]int, len(p))}
	for id, lvl := range p {
		pf.PrefectureLevels[id] = int(lvl)
	}
	b, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return wrap(err, "encode progress")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return wrap(err, "create data dir")
	}
	tmp, err := os.CreateTemp(dir, ".progress-*.json")
	if err != nil {
		return wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return wrap(err, "write progress")
	}
	if err := tmp.Close(); err != nil {
		return wrap(err, "close progress")
	}
	return wrap(os.Rename(tmp.Name(), s.path), "replace progress")
}

func (s *FileStore) Close() error { return nil }
