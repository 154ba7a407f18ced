// Package store tracks pipeline runs and push history in a local SQLite
// database.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// RunStatus is the lifecycle state of a pipeline run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run records one invocation of a pipeline stage.
type Run struct {
	ID         string
	Stage      string
	Status     RunStatus
	Total      int
	Succeeded  int
	Failed     int
	StartedAt  time.Time
	FinishedAt *time.Time
}

// PushLogRow is one persisted push attempt.
type PushLogRow struct {
	RunID      string
	Email      string
	CampaignID string
	Success    bool
	Error      string
	PushedAt   time.Time
}

// SQLiteStore implements run tracking using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	stage       TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	total       INTEGER NOT NULL DEFAULT 0,
	succeeded   INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0,
	started_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	finished_at DATETIME
);

CREATE TABLE IF NOT EXISTS push_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL REFERENCES runs(id),
	email       TEXT NOT NULL,
	campaign_id TEXT,
	success     INTEGER NOT NULL DEFAULT 0,
	error       TEXT,
	pushed_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_stage ON runs(stage);
CREATE INDEX IF NOT EXISTS idx_push_log_run_id ON push_log(run_id);
CREATE INDEX IF NOT EXISTS idx_push_log_email ON push_log(email);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateRun starts tracking a pipeline stage invocation.
func (s *SQLiteStore) CreateRun(ctx context.Context, stage string) (*Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, stage, status, started_at) VALUES (?, ?, ?, ?)`,
		id, stage, string(RunStatusRunning), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &Run{
		ID:        id,
		Stage:     stage,
		Status:    RunStatusRunning,
		StartedAt: now,
	}, nil
}

// FinishRun records the outcome counters and closes the run.
func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, status RunStatus, total, succeeded, failed int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, total = ?, succeeded = ?, failed = ?, finished_at = ? WHERE id = ?`,
		string(status), total, succeeded, failed, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", runID)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: run %s not found", runID)
	}
	return nil
}

// GetRun loads one run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	var (
		run      Run
		status   string
		finished sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, stage, status, total, succeeded, failed, started_at, finished_at FROM runs WHERE id = ?`,
		runID,
	).Scan(&run.ID, &run.Stage, &status, &run.Total, &run.Succeeded, &run.Failed, &run.StartedAt, &finished)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: run %s not found", runID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}

	run.Status = RunStatus(status)
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return &run, nil
}

// AppendPushLog persists the outcome of each push attempt for a run.
func (s *SQLiteStore) AppendPushLog(ctx context.Context, rows []PushLogRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, row := range rows {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO push_log (run_id, email, campaign_id, success, error, pushed_at) VALUES (?, ?, ?, ?, ?, ?)`,
			row.RunID, row.Email, row.CampaignID, row.Success, row.Error, row.PushedAt,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert push log for %s", row.Email)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: commit push log")
	}
	return nil
}

// PushHistory returns the push log rows for one run, oldest first.
func (s *SQLiteStore) PushHistory(ctx context.Context, runID string) ([]PushLogRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, email, campaign_id, success, error, pushed_at FROM push_log WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query push log %s", runID)
	}
	defer rows.Close() //nolint:errcheck

	var out []PushLogRow
	for rows.Next() {
		var row PushLogRow
		if err := rows.Scan(&row.RunID, &row.Email, &row.CampaignID, &row.Success, &row.Error, &row.PushedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan push log row")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
