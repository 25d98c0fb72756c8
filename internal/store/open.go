package store

import (
	"context"
	errs "errors"

	"github.com/charmbracelet/log"

	"github.com/DaanHessen/jterm/internal/engine"
	"github.com/DaanHessen/jterm/internal/util"
)

// Backend is a progress store that holds resources until closed.
type Backend interface {
	engine.ProgressStore
	Close() error
}

// Open returns the backend selected by cfg. The Postgres schema must have
// been migrated with `jterm migrate up`.
func Open(ctx context.Context, cfg util.Config) (Backend, error) {
	switch cfg.Backend {
	case util.BackendSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		return s, nil
	case util.BackendPostgres:
		db, err := OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(db), nil
	default:
		return NewFileStore(cfg.ProgressPath()), nil
	}
}

// LoadProgress applies the configured load-error policy: with
// util.LoadErrorEmpty a failed load is logged and empty progress returned.
func LoadProgress(ctx context.Context, st engine.ProgressStore, policy string, logger *log.Logger) (engine.Progress, error) {
	p, err := st.Load(ctx)
	if err == nil {
		return p, nil
	}
	if policy != util.LoadErrorEmpty {
		return nil, err
	}
	if logger != nil {
		logger.Warn("progress unreadable, starting empty", "corrupt", errs.Is(err, engine.ErrCorruptProgress), "err", err)
	}
	return engine.Progress{}, nil
}
