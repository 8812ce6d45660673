package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"outreach/internal/domain/outreach"
	_ "modernc.org/sqlite"
)

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(dbPath string) (*RunRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA busy_timeout = 5000;")

	schema := `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    source TEXT,
    started_at INTEGER,
    finished_at INTEGER,
    total INTEGER,
    succeeded INTEGER,
    failed INTEGER
);
CREATE TABLE IF NOT EXISTS run_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES runs(id),
    position INTEGER,
    contact TEXT,
    email_address TEXT,
    subject TEXT,
    status TEXT,
    error TEXT
);
CREATE INDEX IF NOT EXISTS idx_run_entries_run_id ON run_entries(run_id);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &RunRepository{db: db}, nil
}

func (r *RunRepository) Save(ctx context.Context, run *outreach.Run) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs
         (id, kind, source, started_at, finished_at, total, succeeded, failed)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), run.Source,
		run.StartedAt.Unix(), run.FinishedAt.Unix(),
		run.Total, run.Succeeded, run.Failed,
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_entries WHERE run_id = ?`, run.ID); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	for _, e := range run.Entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_entries
             (run_id, position, contact, email_address, subject, status, error)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, e.Position, e.Contact, e.EmailAddress, e.Subject, string(e.Status), e.Error,
		)
		if err != nil {
			return fmt.Errorf("save entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *RunRepository) GetByID(ctx context.Context, id string) (*outreach.Run, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx,
		`SELECT id, kind, source, started_at, finished_at, total, succeeded, failed
		 FROM runs WHERE id = ?`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT position, contact, email_address, subject, status, error
		 FROM run_entries WHERE run_id = ? ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e outreach.RunEntry
		var status string
		if err := rows.Scan(&e.Position, &e.Contact, &e.EmailAddress, &e.Subject, &status, &e.Error); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Status = outreach.EntryStatus(status)
		run.Entries = append(run.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return run, nil
}

// ListRecent returns run headers, newest first, without entries.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]*outreach.Run, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, source, started_at, finished_at, total, succeeded, failed
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*outreach.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *RunRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*outreach.Run, error) {
	var run outreach.Run
	var kind string
	var started, finished int64
	if err := s.Scan(&run.ID, &kind, &run.Source, &started, &finished, &run.Total, &run.Succeeded, &run.Failed); err != nil {
		return nil, err
	}
	run.Kind = outreach.RunKind(kind)
	run.StartedAt = time.Unix(started, 0)
	run.FinishedAt = time.Unix(finished, 0)
	return &run, nil
}
