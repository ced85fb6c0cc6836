// Package history records finished runs in a SQLite database so later
// runs can tell a recovery from a repeat and users can review trends.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abdul-hamid-achik/bddrun/packages/report"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	exit_code   INTEGER NOT NULL,
	browser     TEXT NOT NULL,
	headless    INTEGER NOT NULL,
	report      TEXT NOT NULL,
	base_url    TEXT NOT NULL,
	markers     TEXT NOT NULL DEFAULT '',
	total       INTEGER NOT NULL DEFAULT 0,
	passed      INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0,
	broken      INTEGER NOT NULL DEFAULT 0,
	skipped     INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs (started_at);
`

const columns = `id, started_at, duration_ms, exit_code, browser, headless, report,
	base_url, markers, total, passed, failed, broken, skipped`

// Run is one recorded invocation
type Run struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	ExitCode  int           `json:"exitCode"`
	Browser   string        `json:"browser"`
	Headless  bool          `json:"headless"`
	Report    string        `json:"report"`
	BaseURL   string        `json:"baseUrl"`
	Markers   string        `json:"markers,omitempty"`
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Broken    int           `json:"broken"`
	Skipped   int           `json:"skipped"`
}

// Succeeded reports whether the engine exited successfully
func (r *Run) Succeeded() bool {
	return r.ExitCode == 0
}

// FromSummary converts a run summary into a history row
func FromSummary(s *report.Summary) Run {
	r := Run{
		ID:        s.RunID,
		StartedAt: s.StartedAt,
		Duration:  s.Duration,
		ExitCode:  s.ExitCode,
		Browser:   string(s.Config.Browser),
		Headless:  s.Config.Headless,
		Report:    string(s.Config.Report),
		BaseURL:   s.Config.BaseURL,
		Markers:   s.Config.Markers,
	}
	if st := s.Stats; st != nil {
		r.Total = st.Total
		r.Passed = st.Passed
		r.Failed = st.Failed
		r.Broken = st.Broken
		r.Skipped = st.Skipped
	}
	return r
}

// Store is the run history database
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores a finished run
func (s *Store) Record(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UnixNano(), r.Duration.Milliseconds(), r.ExitCode,
		r.Browser, r.Headless, r.Report, r.BaseURL, r.Markers,
		r.Total, r.Passed, r.Failed, r.Broken, r.Skipped,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Last returns the most recent run, or nil when nothing is recorded
func (s *Store) Last(ctx context.Context) (*Run, error) {
	runs, err := s.Recent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// Recent returns up to limit runs, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+columns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			startedAt int64
			duration  int64
		)
		if err := rows.Scan(&r.ID, &startedAt, &duration, &r.ExitCode, &r.Browser, &r.Headless,
			&r.Report, &r.BaseURL, &r.Markers, &r.Total, &r.Passed, &r.Failed, &r.Broken, &r.Skipped); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		r.StartedAt = time.Unix(0, startedAt).UTC()
		r.Duration = time.Duration(duration) * time.Millisecond
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return runs, nil
}
