// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an optional SQLite ledger of finished batch runs
// and the outcome of every file in them.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdfclean/pkg/types"
)

const defaultLimit = 20

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// RunSummary is one row of the run ledger.
type RunSummary struct {
	ID         int64         `json:"id" yaml:"id"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time     `json:"finished_at" yaml:"finished_at"`
	InputDir   string        `json:"input" yaml:"input"`
	OutputDir  string        `json:"output" yaml:"output"`
	Margins    types.Margins `json:"margins" yaml:"margins"`
	Backend    string        `json:"backend" yaml:"backend"`
	Converted  int           `json:"converted" yaml:"converted"`
	Empty      int           `json:"empty" yaml:"empty"`
	Failed     int           `json:"failed" yaml:"failed"`
}

// Open opens or creates the history database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			input_dir TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			top_margin INTEGER NOT NULL,
			bottom_margin INTEGER NOT NULL,
			backend TEXT,
			converted INTEGER NOT NULL,
			empty INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			source TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			pages INTEGER,
			text_pages INTEGER,
			error TEXT,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_status ON files(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores rep and returns the new run ID.
func (s *Store) Record(ctx context.Context, rep types.RunReport) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, input_dir, output_dir, top_margin, bottom_margin,
			backend, converted, empty, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.StartedAt.UTC().Format(time.RFC3339Nano),
		rep.FinishedAt.UTC().Format(time.RFC3339Nano),
		rep.Config.InputDir,
		rep.Config.OutputDir,
		rep.Config.Margins.Top,
		rep.Config.Margins.Bottom,
		string(rep.Config.Backend),
		rep.Converted,
		rep.Empty,
		rep.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for i, f := range rep.Files {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO files (run_id, seq, source, output, status, pages, text_pages, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, f.Source, f.Output, string(f.Status), f.Pages, f.TextPages, f.Error,
		); err != nil {
			return 0, fmt.Errorf("inserting file %s: %w", f.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Recent returns up to limit runs, newest first. A non-positive limit
// uses the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, input_dir, output_dir, top_margin, bottom_margin,
			COALESCE(backend, ''), converted, empty, failed
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			r                 RunSummary
			started, finished string
		)
		if err := rows.Scan(&r.ID, &started, &finished, &r.InputDir, &r.OutputDir,
			&r.Margins.Top, &r.Margins.Bottom, &r.Backend, &r.Converted, &r.Empty, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Files returns the per-file outcomes of run runID in processing order.
func (s *Store) Files(ctx context.Context, runID int64) ([]types.FileResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, COALESCE(output, ''), status, COALESCE(pages, 0), COALESCE(text_pages, 0),
			COALESCE(error, '')
		FROM files WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var files []types.FileResult
	for rows.Next() {
		var (
			f      types.FileResult
			status string
		)
		if err := rows.Scan(&f.Source, &f.Output, &status, &f.Pages, &f.TextPages, &f.Error); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		f.Status = types.ConversionStatus(status)
		files = append(files, f)
	}
	return files, rows.Err()
}
