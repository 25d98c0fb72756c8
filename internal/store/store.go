package store

import (
	"context"
	"database/sql"
	errs "errors"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DaanHessen/jterm/internal/engine"
)

var ErrNoChange = errs.New("no change")

// DB wraps gorm.DB for the Postgres backend and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error   { return d.sql.Close() }
func (d *DB) Gorm() *gorm.DB { return d.gorm }

// OpenPostgres connects to the database named by dsn.
func OpenPostgres(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, wrap(err, "open postgres")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, wrap(err, "postgres handle")
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(2)
	sdb.SetMaxIdleConns(1)
	if err := sdb.PingContext(ctx); err != nil {
		sdb.Close()
		return nil, wrap(err, "ping postgres")
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

// regionProgress is one row of region_progress.
type regionProgress struct {
	Region string `db:"region" gorm:"primaryKey"`
	Level  int    `db:"level"`
}

func (regionProgress) TableName() string { return "region_progress" }

// PostgresStore keeps progress in the region_progress table.
type PostgresStore struct{ db *DB }

func NewPostgresStore(db *DB) *PostgresStore { return &PostgresStore{db: db} }

func (s *PostgresStore) Load(ctx context.Context) (engine.Progress, error) {
	var rows []regionProgress
	if err := s.db.gorm.WithContext(ctx).Raw(`SELECT region, level FROM region_progress`).Scan(&rows).Error; err != nil {
		return nil, wrap(err, "load progress")
	}
	return progressFromRows(rows)
}

// Save replaces all rows in one transaction.
func (s *PostgresStore) Save(ctx context.Context, p engine.Progress) error {
	rows := rowsFromProgress(p)
	return wrap(s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM region_progress`).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	}), "save progress")
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func progressFromRows(rows []regionProgress) (engine.Progress, error) {
	p := make(engine.Progress, len(rows))
	for _, r := range rows {
		lvl, err := engine.ParseLevel(r.Level)
		if err != nil {
			return nil, errors.Wrapf(engine.ErrCorruptProgress, "region %s: %v", r.Region, err)
		}
		if lvl != engine.LevelNever {
			p[r.Region] = lvl
		}
	}
	return p, nil
}

func rowsFromProgress(p engine.Progress) []regionProgress {
	rows := make([]regionProgress, 0, len(p))
	for id, lvl := range p {
		if lvl == engine.LevelNever {
			continue
		}
		rows = append(rows, regionProgress{Region: id, Level: int(lvl)})
	}
	return rows
}

// Helper error wrap
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
