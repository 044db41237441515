// Package storage keeps the run ledger: every suite run, the outcome of each
// test in it and the artifacts captured for failed tests.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contact-list-e2e/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// ErrNoRuns is returned by LatestRun on an empty ledger.
var ErrNoRuns = errors.New("no runs recorded")

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a ledger and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" ledgers on one database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			base_url TEXT NOT NULL,
			started_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			test TEXT NOT NULL,
			marker TEXT NOT NULL,
			outcome TEXT NOT NULL,
			duration_ns INTEGER NOT NULL,
			finished_at DATETIME NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS attachments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			test TEXT NOT NULL,
			label TEXT NOT NULL,
			path TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_attachments_run ON attachments(run_id, test)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migrate ledger: %w", err)
		}
	}
	return nil
}

// StartRun records a new run against baseURL.
func (db *DB) StartRun(baseURL string) (*models.Run, error) {
	run := &models.Run{ID: uuid.NewString(), BaseURL: baseURL, StartedAt: time.Now()}
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, base_url, started_at) VALUES (?, ?, ?)",
		run.ID, run.BaseURL, run.StartedAt,
	)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetRun retrieves a run by ID.
func (db *DB) GetRun(id string) (*models.Run, error) {
	row := db.conn.QueryRow("SELECT id, base_url, started_at FROM runs WHERE id = ?", id)

	var r models.Run
	if err := row.Scan(&r.ID, &r.BaseURL, &r.StartedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// LatestRun retrieves the most recently started run.
func (db *DB) LatestRun() (*models.Run, error) {
	row := db.conn.QueryRow("SELECT id, base_url, started_at FROM runs ORDER BY started_at DESC LIMIT 1")

	var r models.Run
	if err := row.Scan(&r.ID, &r.BaseURL, &r.StartedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRuns
		}
		return nil, err
	}
	return &r, nil
}

// RecordResult inserts the outcome of one test and sets its ID.
func (db *DB) RecordResult(r *models.Result) error {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	result, err := db.conn.Exec(
		"INSERT INTO results (run_id, test, marker, outcome, duration_ns, finished_at) VALUES (?, ?, ?, ?, ?, ?)",
		r.RunID, r.Test, string(r.Marker), string(r.Outcome), int64(r.Duration), r.FinishedAt,
	)
	if err != nil {
		return err
	}
	r.ID, err = result.LastInsertId()
	return err
}

// ListResults retrieves the results of a run in recording order.
func (db *DB) ListResults(runID string) ([]models.Result, error) {
	rows, err := db.conn.Query(
		"SELECT id, run_id, test, marker, outcome, duration_ns, finished_at FROM results WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.Result
	for rows.Next() {
		var (
			r       models.Result
			marker  string
			outcome string
			nanos   int64
		)
		if err := rows.Scan(&r.ID, &r.RunID, &r.Test, &marker, &outcome, &nanos, &r.FinishedAt); err != nil {
			return nil, err
		}
		r.Marker = models.Marker(marker)
		r.Outcome = models.Outcome(outcome)
		r.Duration = time.Duration(nanos)
		results = append(results, r)
	}

	return results, rows.Err()
}

// CountOutcomes returns how many tests of a run ended in each outcome.
func (db *DB) CountOutcomes(runID string) (map[models.Outcome]int, error) {
	rows, err := db.conn.Query("SELECT outcome, COUNT(*) FROM results WHERE run_id = ? GROUP BY outcome", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[models.Outcome]int{}
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		counts[models.Outcome(outcome)] = n
	}
	return counts, rows.Err()
}

// AddAttachment inserts an artifact record and sets its ID.
func (db *DB) AddAttachment(a *models.Attachment) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	result, err := db.conn.Exec(
		"INSERT INTO attachments (run_id, test, label, path, created_at) VALUES (?, ?, ?, ?, ?)",
		a.RunID, a.Test, a.Label, a.Path, a.CreatedAt,
	)
	if err != nil {
		return err
	}
	a.ID, err = result.LastInsertId()
	return err
}

// ListAttachments retrieves the artifacts of a run, restricted to one test
// unless test is empty.
func (db *DB) ListAttachments(runID, test string) ([]models.Attachment, error) {
	query := "SELECT id, run_id, test, label, path, created_at FROM attachments WHERE run_id = ?"
	args := []any{runID}
	if test != "" {
		query += " AND test = ?"
		args = append(args, test)
	}
	rows, err := db.conn.Query(query+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.RunID, &a.Test, &a.Label, &a.Path, &a.CreatedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}

	return attachments, rows.Err()
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
