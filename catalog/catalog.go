// Package catalog persists a history of outline-extraction runs in a
// SQLite database. The batch processor records one row per input file;
// the runs table keeps the recovered title, the heading count, timing,
// and the error message when extraction failed.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;

CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    input_file TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    heading_count INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    error TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_input_file ON runs(input_file);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// timeLayout is RFC 3339 with fixed-width nanoseconds so stored
// timestamps sort chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one recorded extraction: which file was processed, what came
// out of it, and how long it took. Error is empty for successful runs.
type Run struct {
	ID           int64
	InputFile    string
	Title        string
	HeadingCount int
	Duration     time.Duration
	Error        string
	CreatedAt    time.Time
}

// Catalog wraps a SQLite database holding the runs table.
type Catalog struct {
	*sql.DB
	path string
}

// Open opens (creating if necessary) the catalog database at path and
// makes sure the schema exists.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog: enabling foreign keys: %w", err)
	}

	c := &Catalog{DB: db, path: path}
	if err := c.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog: initializing schema: %w", err)
	}
	return c, nil
}

// Path returns the database file path this catalog was opened with.
func (c *Catalog) Path() string {
	return c.path
}

// ensureSchema checks for the runs table and creates the schema when
// it is missing.
func (c *Catalog) ensureSchema() error {
	var name string
	err := c.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for runs table: %w", err)
	}
	if _, err := c.Exec(schema); err != nil {
		return fmt.Errorf("creating runs table: %w", err)
	}
	return nil
}

// RecordRun inserts one run and returns its run_id. A zero CreatedAt
// is stamped with the current UTC time.
func (c *Catalog) RecordRun(run Run) (int64, error) {
	created := run.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	result, err := c.Exec(`
		INSERT INTO runs (input_file, title, heading_count, duration_ms, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.InputFile, run.Title, run.HeadingCount, run.Duration.Milliseconds(), run.Error,
		created.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("catalog: recording run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("catalog: reading run id: %w", err)
	}
	return id, nil
}

// ListRuns returns recorded runs, newest first. A limit of zero or
// less returns every run.
func (c *Catalog) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, input_file, title, heading_count, duration_ms, error, created_at
		FROM runs
		ORDER BY created_at DESC, run_id DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = c.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = c.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: listing runs: %w", err)
	}
	return runs, nil
}

// RunsForFile returns every recorded run for one input file, newest
// first.
func (c *Catalog) RunsForFile(inputFile string) ([]Run, error) {
	rows, err := c.Query(`
		SELECT run_id, input_file, title, heading_count, duration_ms, error, created_at
		FROM runs
		WHERE input_file = ?
		ORDER BY created_at DESC, run_id DESC
	`, inputFile)
	if err != nil {
		return nil, fmt.Errorf("catalog: listing runs for %s: %w", inputFile, err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: listing runs for %s: %w", inputFile, err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var durationMS int64
	var created string
	err := rows.Scan(&run.ID, &run.InputFile, &run.Title, &run.HeadingCount,
		&durationMS, &run.Error, &created)
	if err != nil {
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Run{}, fmt.Errorf("parsing run timestamp: %w", err)
	}
	return run, nil
}
